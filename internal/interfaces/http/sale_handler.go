package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// SaleHandler maneja ventas: alta, edición, borrado, consulta y comprobante (protegido).
// Las ventas se devuelven sin sobre {message}.
type SaleHandler struct {
	uc  *sales.SaleUseCase
	log *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida stock de cada línea, descuenta inventario y guarda la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Cliente y productos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /sales/add [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.SaleRequest
	if ok, err := bindAndValidate(c, &in, msgInvalidData); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), u.ID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        saleId  path  string  true  "Sale ID"
// @Success      200     {object}  dto.SaleResponse
// @Failure      404     {object}  dto.MessageResponse
// @Router       /sales/{saleId} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	out, err := h.uc.Get(c.UserContext(), u.ID, c.Params("saleId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        saleId  path  string  true  "Sale ID"
// @Success      200     {file}  binary
// @Failure      404     {object}  dto.MessageResponse
// @Router       /sales/{saleId}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	saleID := c.Params("saleId")
	pdf, err := h.uc.Receipt(c.UserContext(), u.ID, u.Name, saleID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="sale-`+saleID+`.pdf"`)
	return c.Send(pdf)
}

// Update godoc
// @Summary      Editar venta
// @Description  Reemplaza los ítems: repone el stock anterior y aplica el nuevo, todo o nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        saleId  path  string           true  "Sale ID"
// @Param        body    body  dto.SaleRequest  true  "Cliente y productos"
// @Success      200     {object}  dto.SaleResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.MessageResponse
// @Router       /sales/{saleId} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.SaleRequest
	if ok, err := bindAndValidate(c, &in, msgInvalidData); !ok {
		return err
	}
	out, err := h.uc.Edit(c.UserContext(), u.ID, c.Params("saleId"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Repone el stock de cada ítem y borra la venta.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        saleId  path  string  true  "Sale ID"
// @Success      200     {object}  dto.SaleResponse
// @Failure      404     {object}  dto.MessageResponse
// @Router       /sales/{saleId} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	out, err := h.uc.Delete(c.UserContext(), u.ID, c.Params("saleId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (máx 100)"
// @Success      200    {object}  dto.SaleListResponse
// @Router       /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
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
