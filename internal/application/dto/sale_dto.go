package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest body para POST /sales/add y PUT /sales/:saleId.
// El orden de Products se respeta al validar.
type SaleRequest struct {
	CustomerID string            `json:"customerId" validate:"required"`
	Products   []SaleLineRequest `json:"products" validate:"required,min=1,dive"`
}

// SaleLineRequest línea pedida: producto y cantidad entera positiva.
type SaleLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SaleItemResponse ítem de venta con el precio capturado.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"saleId"`
	ProductID   string          `json:"productId"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
}

// SaleResponse venta con sus ítems.
type SaleResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	CustomerID string             `json:"customerId"`
	Total      decimal.Decimal    `json:"total"`
	Items      []SaleItemResponse `json:"items"`
	Customer   *CustomerResponse  `json:"customer,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Sales       []SaleResponse `json:"sales"`
	TotalSales  int            `json:"totalSales"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}
