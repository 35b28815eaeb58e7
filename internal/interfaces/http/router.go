package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-api/internal/application/auth"
	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *usecase.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	SaleUC     *sales.SaleUseCase
	Cookie     CookieConfig
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	// Auth (público salvo /me)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.Cookie, log)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	requireAuth := AuthMiddleware(deps.AuthUC, log)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Customers (protegido)
	customers := app.Group("/customers", requireAuth)
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Post("/add", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (protegido)
	products := app.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido)
	salesGroup := app.Group("/sales", requireAuth)
	saleHandler := NewSaleHandler(deps.SaleUC, log)
	salesGroup.Post("/add", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:saleId", saleHandler.GetByID)
	salesGroup.Get("/:saleId/receipt", saleHandler.Receipt)
	salesGroup.Put("/:saleId", saleHandler.Update)
	salesGroup.Delete("/:saleId", saleHandler.Delete)
}
