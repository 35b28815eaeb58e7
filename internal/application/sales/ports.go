package sales

import (
	"context"
	"time"

	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error todo se deshace (stock, cabecera e ítems).
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		products repository.ProductRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
	) error) error
}

// Tipos de evento publicados tras cada cambio confirmado.
const (
	EventSaleCreated = "sale.created"
	EventSaleUpdated = "sale.updated"
	EventSaleDeleted = "sale.deleted"
)

// SaleEvent sobre publicado al bus de eventos.
type SaleEvent struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	UserID     string           `json:"userId"`
	OccurredAt time.Time        `json:"occurredAt"`
	Sale       dto.SaleResponse `json:"sale"`
}

// EventPublisher publica eventos de venta. Debe ser no bloqueante o rápido.
type EventPublisher interface {
	Publish(ctx context.Context, ev SaleEvent) error
}

// NopPublisher descarta los eventos (sin Kafka configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SaleEvent) error { return nil }

// ReceiptLine línea del comprobante.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Receipt datos necesarios para renderizar el comprobante de una venta.
type Receipt struct {
	Sale     *entity.Sale
	Customer *entity.Customer
	Seller   string
	Lines    []ReceiptLine
}

// ReceiptGenerator renderiza el comprobante en PDF.
type ReceiptGenerator interface {
	Generate(r Receipt) ([]byte, error)
}
