package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest body para POST /products y PATCH /products/:id.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price" validate:"gte=1,lt=1000000000000"`
	Stock       *int            `json:"stock" validate:"required,gte=0,max=2147483647"`
	Image       string          `json:"image" validate:"required,min=1"`
	Description string          `json:"description" validate:"required,min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductEnvelope respuesta de alta/edición/borrado.
type ProductEnvelope struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products      []ProductResponse `json:"products"`
	TotalProducts int               `json:"totalProducts"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
}
