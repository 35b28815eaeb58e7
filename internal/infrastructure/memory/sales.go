package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
)

type saleRepo struct {
	s    *Store
	with access
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.with(func(st *state) error {
		if err := r.s.faultLocked(OpSaleCreate); err != nil {
			return err
		}
		if c, ok := st.customers[sale.CustomerID]; !ok || c.UserID != sale.UserID {
			return domain.NewCustomerNotFound(sale.CustomerID)
		}
		for _, it := range sale.Items {
			if _, ok := st.products[it.ProductID]; !ok {
				return domain.NewProductNotFound(it.ProductID)
			}
		}
		stored := *sale
		stored.Customer = nil
		stored.Items = append([]entity.SaleItem(nil), sale.Items...)
		for i := range stored.Items {
			stored.Items[i].SaleID = sale.ID
		}
		st.sales[sale.ID] = stored
		st.stamp(sale.ID)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, userID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.with(func(st *state) error {
		if s, ok := st.sales[id]; ok && s.UserID == userID {
			out = st.hydrate(s)
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) Delete(_ context.Context, userID, id string) error {
	return r.with(func(st *state) error {
		if err := r.s.faultLocked(OpSaleDelete); err != nil {
			return err
		}
		s, ok := st.sales[id]
		if !ok || s.UserID != userID {
			return domain.ErrSaleNotFound
		}
		// seq se conserva: una venta recreada con el mismo ID mantiene su posición
		delete(st.sales, id)
		return nil
	})
}

func (r *saleRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	err := r.with(func(st *state) error {
		ids := make([]string, 0)
		for id, s := range st.sales {
			if s.UserID == userID {
				ids = append(ids, id)
			}
		}
		for _, id := range page(st.newestFirst(ids), limit, offset) {
			out = append(out, st.hydrate(st.sales[id]))
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, s := range st.sales {
			if s.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (st *state) hydrate(s entity.Sale) *entity.Sale {
	s.Items = append(make([]entity.SaleItem, 0, len(s.Items)), s.Items...)
	if c, ok := st.customers[s.CustomerID]; ok {
		s.Customer = &c
	}
	return &s
}

// newestFirst ordena por inserción descendente (equivalente a created_at DESC).
func (st *state) newestFirst(ids []string) []string {
	sort.Slice(ids, func(i, j int) bool { return st.seq[ids[i]] > st.seq[ids[j]] })
	return ids
}

func page(ids []string, limit, offset int) []string {
	if offset >= len(ids) {
		return nil
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return ids[offset:end]
}
