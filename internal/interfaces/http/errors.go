package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/pkg/logger"
)

const (
	msgUnauthorized = "Unauthorized"
	msgInternal     = "Internal server error"
)

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MessageResponse{Message: msg})
}

// writeError traduce errores de dominio a status + {"message"}. Lo no reconocido es 500
// y se registra; el detalle interno nunca llega al cliente.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var ref *domain.RefError
	if errors.As(err, &ref) {
		switch {
		case errors.Is(ref.Err, domain.ErrInsufficientStock):
			return message(c, fiber.StatusBadRequest, "Not enough stock for product "+ref.Name)
		case errors.Is(ref.Err, domain.ErrProductNotFound):
			return message(c, fiber.StatusBadRequest, "Product "+ref.ID+" not found")
		case errors.Is(ref.Err, domain.ErrCustomerNotFound):
			return message(c, fiber.StatusBadRequest, "Customer "+ref.ID+" not found")
		}
	}
	switch {
	case errors.Is(err, domain.ErrSaleNotFound):
		return message(c, fiber.StatusNotFound, "Sale not found")
	case errors.Is(err, domain.ErrProductNotFound):
		return message(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrCustomerNotFound):
		return message(c, fiber.StatusNotFound, "Customer not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return message(c, fiber.StatusBadRequest, "User already exists")
	case errors.Is(err, domain.ErrUserNotFound):
		return message(c, fiber.StatusUnauthorized, "User not found")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, domain.ErrConflict):
		return message(c, fiber.StatusBadRequest, "Resource is referenced by existing sales")
	case errors.Is(err, domain.ErrInsufficientStock):
		return message(c, fiber.StatusBadRequest, "Not enough stock")
	case errors.Is(err, domain.ErrInvalidInput):
		return message(c, fiber.StatusBadRequest, msgInvalidData)
	case errors.Is(err, sales.ErrReceiptUnavailable):
		return message(c, fiber.StatusServiceUnavailable, "Receipt generation unavailable")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return message(c, fiber.StatusInternalServerError, msgInternal)
}

// ErrorHandler para fiber.Config: mismo sobre JSON para errores no manejados por los handlers.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("fiber error")
				return message(c, fe.Code, msgInternal)
			}
			return message(c, fe.Code, fe.Message)
		}
		return writeError(c, log, err)
	}
}
