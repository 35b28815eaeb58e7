package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y luego cada ítem en el orden recibido.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, user_id, customer_id, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, sale.UserID, sale.CustomerID, sale.Total, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewCustomerNotFound(sale.CustomerID)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range sale.Items {
		it := &sale.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SaleID = sale.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, position, quantity, price_at_sale)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.SaleID, it.ProductID, i, it.Quantity, it.PriceAtSale,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewProductNotFound(it.ProductID)
			}
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta del usuario con sus ítems y su cliente; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	query := saleSelect + ` WHERE s.id = $1 AND s.user_id = $2`
	s, err := scanSale(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete borra los ítems y luego la cabecera. ErrSaleNotFound si no es del usuario.
func (r *SaleRepo) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return domain.ErrSaleNotFound
	}
	if _, err := r.q.Exec(ctx, `
		DELETE FROM sale_items
		WHERE sale_id = (SELECT id FROM sales WHERE id = $1 AND user_id = $2)`, id, userID); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// ListByUser lista las ventas del usuario (más recientes primero) con cliente e ítems.
func (r *SaleRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Sale, error) {
	query := saleSelect + ` WHERE s.user_id = $1 ORDER BY s.created_at DESC, s.id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// CountByUser total de ventas del usuario.
func (r *SaleRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

const saleSelect = `
	SELECT s.id, s.user_id, s.customer_id, s.total, s.created_at, s.updated_at,
	       c.id, c.user_id, c.name, c.email, c.phone, c.address, c.created_at, c.updated_at
	FROM sales s
	JOIN customers c ON c.id = s.customer_id`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var c entity.Customer
	if err := row.Scan(
		&s.ID, &s.UserID, &s.CustomerID, &s.Total, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Customer = &c
	s.Items = make([]entity.SaleItem, 0)
	return &s, nil
}

// loadItems carga en un solo query los ítems de todas las ventas dadas, en su orden original.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, price_at_sale
		FROM sale_items WHERE sale_id = ANY($1::uuid[])
		ORDER BY sale_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.PriceAtSale); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}
