package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.ProductRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), u.ID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductEnvelope{Message: "Product created successfully", Product: out})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	out, err := h.uc.GetByID(c.UserContext(), u.ID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Product ID"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.ProductRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), u.ID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProductEnvelope{Message: "Product updated successfully", Product: out})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	out, err := h.uc.Delete(c.UserContext(), u.ID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProductEnvelope{Message: "Product deleted successfully", Product: out})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (máx 100)"
// @Success      200    {object}  dto.ProductListResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	list, err := h.uc.List(c.UserContext(), u.ID, pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
