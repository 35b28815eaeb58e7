package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/auth"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// CookieConfig atributos de la cookie de sesión.
type CookieConfig struct {
	Secure   bool
	Lifetime time.Duration
}

// AuthHandler maneja registro, login, logout y la cuenta actual.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	users  *usecase.UserUseCase
	cookie CookieConfig
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase, cookie CookieConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, users: users, cookie: cookie, log: log}
}

// Signup godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Message: "User registered successfully", User: user})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y lo deja además en la cookie "token".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindAndValidate(c, &in, msgValidationFailed); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return message(c, fiber.StatusUnauthorized, "Invalid password")
		}
		return writeError(c, h.log, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    out.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.Lifetime.Seconds()),
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.LoginResponse{Message: "User logged in successfully", Token: out.Token})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Limpia la cookie y revoca el token si venía uno válido.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), extractToken(c)); err != nil {
		// la sesión del cliente se cierra igual
		h.log.Warn().Err(err).Msg("logout: no se pudo revocar el token")
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.MessageResponse{Message: "User logged out successfully"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.MessageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return message(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	user, err := h.users.GetByID(c.UserContext(), u.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return message(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(user)
}
