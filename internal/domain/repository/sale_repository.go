package repository

import (
	"context"

	"github.com/jhoicas/retail-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	// Create persiste cabecera e ítems. Usar dentro de una transacción.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus ítems, o nil si no existe para ese usuario.
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	// Delete borra primero los ítems y luego la cabecera.
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Sale, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
