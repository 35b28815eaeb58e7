package repository

import (
	"context"

	"github.com/jhoicas/retail-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las lecturas y escrituras van filtradas por el usuario dueño.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, userID, id string) (*entity.Customer, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Customer, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// Update devuelve domain.ErrCustomerNotFound si no hay fila del usuario con ese ID.
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, userID, id string) error
}
