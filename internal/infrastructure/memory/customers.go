package memory

import (
	"context"

	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
)

type customerRepo struct {
	with access
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.with(func(st *state) error {
		st.customers[c.ID] = *c
		st.stamp(c.ID)
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, userID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.with(func(st *state) error {
		if c, ok := st.customers[id]; ok && c.UserID == userID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0)
	err := r.with(func(st *state) error {
		ids := make([]string, 0)
		for id, c := range st.customers {
			if c.UserID == userID {
				ids = append(ids, id)
			}
		}
		for _, id := range page(st.newestFirst(ids), limit, offset) {
			c := st.customers[id]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, c := range st.customers {
			if c.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.with(func(st *state) error {
		cur, ok := st.customers[c.ID]
		if !ok || cur.UserID != c.UserID {
			return domain.ErrCustomerNotFound
		}
		c.CreatedAt = cur.CreatedAt
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) Delete(_ context.Context, userID, id string) error {
	return r.with(func(st *state) error {
		cur, ok := st.customers[id]
		if !ok || cur.UserID != userID {
			return domain.ErrCustomerNotFound
		}
		for _, s := range st.sales {
			if s.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(st.customers, id)
		return nil
	})
}
