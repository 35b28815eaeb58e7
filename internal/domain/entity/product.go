package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del usuario.
// Stock nunca es negativo: solo lo modifican las ventas (dentro de una transacción) o la edición directa.
type Product struct {
	ID          string
	UserID      string
	Name        string
	Price       decimal.Decimal
	Stock       int
	Image       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasStock indica si hay unidades suficientes para vender qty.
func (p *Product) HasStock(qty int) bool {
	return qty <= p.Stock
}
