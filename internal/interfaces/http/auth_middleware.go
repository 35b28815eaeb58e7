package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/auth"
	"github.com/jhoicas/retail-api/internal/application/identity"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// Nombre de la cookie y del header alterno que transportan el JWT.
const (
	tokenCookie = "token"
	tokenHeader = "token"
)

// Authenticator lo que el middleware necesita del caso de uso de auth.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.User, error)
}

// AuthMiddleware resuelve el token (cookie, header "token" o Bearer) a un usuario existente
// y lo deja en c.UserContext() como identity.User.
func AuthMiddleware(authn Authenticator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return message(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		user, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			if auth.IsAuthError(err) {
				return message(c, fiber.StatusUnauthorized, msgUnauthorized)
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("authenticate")
			return message(c, fiber.StatusInternalServerError, msgInternal)
		}
		c.SetUserContext(identity.WithUser(c.UserContext(), user))
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if t := strings.TrimSpace(c.Cookies(tokenCookie)); t != "" {
		return t
	}
	if t := strings.TrimSpace(c.Get(tokenHeader)); t != "" {
		return t
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// currentUser identidad del request (después de AuthMiddleware).
func currentUser(c *fiber.Ctx) (identity.User, bool) {
	return identity.FromContext(c.UserContext())
}

// RequestLogger registra método, ruta, status, latencia y usuario de cada request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// escribe la respuesta ahora para registrar el status real
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		if u, ok := currentUser(c); ok {
			ev = ev.Str("user_id", u.ID)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
