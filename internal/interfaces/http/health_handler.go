package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// HealthCheck verifica una dependencia (DB, Redis...). nil = sana.
type HealthCheck func(ctx context.Context) error

// HealthResponse salida de GET /health. Cada check vale "ok" o "down"; el detalle va al log.
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func Health(service string, checks map[string]HealthCheck, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		out := HealthResponse{Status: "ok", Service: service}
		for name, check := range checks {
			if out.Checks == nil {
				out.Checks = make(map[string]string, len(checks))
			}
			if err := check(ctx); err != nil {
				log.Error().Err(err).Str("check", name).Msg("health check fallido")
				out.Status = "degraded"
				out.Checks[name] = "down"
				continue
			}
			out.Checks[name] = "ok"
		}
		if out.Status != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		return c.JSON(out)
	}
}
