package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Total se calcula una sola vez al crearla
// a partir de los precios capturados en sus ítems.
type Sale struct {
	ID         string
	UserID     string
	CustomerID string
	Total      decimal.Decimal
	Items      []SaleItem
	Customer   *Customer // opcional, solo en listados
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleItem línea de venta. PriceAtSale es el precio del producto en el momento de la venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Quantity    int
	PriceAtSale decimal.Decimal
}

// Subtotal cantidad × precio capturado.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal suma los subtotales de los ítems.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
