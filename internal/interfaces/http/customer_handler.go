package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc  *usecase.CustomerUseCase
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /customers/add [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.CustomerRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), u.ID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CustomerEnvelope{Message: "Customer created successfully", Customer: out})
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Customer ID"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	var in dto.CustomerRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), u.ID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CustomerEnvelope{Message: "Customer updated successfully", Customer: out})
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	if err := h.uc.Delete(c.UserContext(), u.ID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Customer deleted successfully"})
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (máx 100)"
// @Success      200    {object}  dto.CustomerListResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
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

// pageQuery lee page/limit; valores inválidos caen en los defaults.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Page: c.QueryInt("page", dto.DefaultPage), Limit: c.QueryInt("limit", dto.DefaultLimit)}
	p.Normalize()
	return p
}
