package repository

import (
	"context"

	"github.com/jhoicas/retail-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina y devuelve el producto borrado.
	Delete(ctx context.Context, userID, id string) (*entity.Product, error)

	// GetByIDsForUpdate carga en un solo query los productos pedidos y bloquea sus filas
	// (SELECT ... FOR UPDATE). Solo tiene efecto dentro de una transacción.
	GetByIDsForUpdate(ctx context.Context, userID string, ids []string) (map[string]*entity.Product, error)
	// DecrementStock resta qty solo si el stock resultante es >= 0; si no, ErrInsufficientStock.
	DecrementStock(ctx context.Context, userID, id string, qty int) error
	IncrementStock(ctx context.Context, userID, id string, qty int) error
}
