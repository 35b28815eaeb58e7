package memory

import (
	"context"

	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
)

type productRepo struct {
	s    *Store
	with access
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.with(func(st *state) error {
		if p.Stock < 0 {
			return domain.ErrInvalidInput
		}
		st.products[p.ID] = *p
		st.stamp(p.ID)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok && p.UserID == userID {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.with(func(st *state) error {
		ids := make([]string, 0)
		for id, p := range st.products {
			if p.UserID == userID {
				ids = append(ids, id)
			}
		}
		for _, id := range page(st.newestFirst(ids), limit, offset) {
			p := st.products[id]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *productRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if p.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.with(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok || cur.UserID != p.UserID {
			return domain.ErrProductNotFound
		}
		if p.Stock < 0 {
			return domain.ErrInvalidInput
		}
		p.CreatedAt = cur.CreatedAt
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) Delete(_ context.Context, userID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		cur, ok := st.products[id]
		if !ok || cur.UserID != userID {
			return domain.ErrProductNotFound
		}
		for _, s := range st.sales {
			for _, it := range s.Items {
				if it.ProductID == id {
					return domain.ErrConflict
				}
			}
		}
		delete(st.products, id)
		out = &cur
		return nil
	})
	return out, err
}

func (r *productRepo) GetByIDsForUpdate(_ context.Context, userID string, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	err := r.with(func(st *state) error {
		for _, id := range ids {
			if p, ok := st.products[id]; ok && p.UserID == userID {
				out[id] = &p
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) DecrementStock(_ context.Context, userID, id string, qty int) error {
	return r.with(func(st *state) error {
		if err := r.s.faultLocked(OpStockDecrement); err != nil {
			return err
		}
		p, ok := st.products[id]
		if !ok || p.UserID != userID || p.Stock < qty {
			return domain.ErrInsufficientStock
		}
		p.Stock -= qty
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) IncrementStock(_ context.Context, userID, id string, qty int) error {
	return r.with(func(st *state) error {
		if err := r.s.faultLocked(OpStockIncrement); err != nil {
			return err
		}
		p, ok := st.products[id]
		if !ok || p.UserID != userID {
			return domain.ErrProductNotFound
		}
		p.Stock += qty
		st.products[id] = p
		return nil
	})
}
