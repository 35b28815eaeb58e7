package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, name, price, stock, image, description, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, price, stock, image, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.UserID, product.Name, product.Price, product.Stock,
		product.Image, product.Description, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del usuario; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByUser lista productos del usuario con paginación.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByUser total de productos del usuario.
func (r *ProductRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Update reemplaza los campos editables (incluido el stock). ErrProductNotFound si no es del usuario.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if !validID(product.ID) {
		return domain.ErrProductNotFound
	}
	query := `
		UPDATE products SET name = $3, price = $4, stock = $5, image = $6, description = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.UserID, product.Name, product.Price, product.Stock,
		product.Image, product.Description, product.UpdatedAt,
	).Scan(&product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el producto y lo devuelve. Si alguna venta lo referencia -> domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, domain.ErrProductNotFound
	}
	query := `DELETE FROM products WHERE id = $1 AND user_id = $2 RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}

// GetByIDsForUpdate carga los productos pedidos en un solo query y bloquea sus filas.
// Los IDs ausentes (o de otro usuario) simplemente no aparecen en el mapa.
// Las filas se bloquean ordenadas por id para que dos ventas concurrentes no se bloqueen mutuamente.
func (r *ProductRepo) GetByIDsForUpdate(ctx context.Context, userID string, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE user_id = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, userID, valid)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// DecrementStock resta qty en una sola sentencia condicional: si el stock quedaría negativo
// no se modifica la fila y se devuelve domain.ErrInsufficientStock.
func (r *ProductRepo) DecrementStock(ctx context.Context, userID, id string, qty int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND stock >= $3`,
		id, userID, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock devuelve qty unidades al producto (reversión de una venta).
func (r *ProductRepo) IncrementStock(ctx context.Context, userID, id string, qty int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock + $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		id, userID, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
