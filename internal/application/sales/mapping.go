package sales

import (
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/domain/entity"
)

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		CustomerID: s.CustomerID,
		Total:      s.Total,
		Items:      make([]dto.SaleItemResponse, 0, len(s.Items)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:          it.ID,
			SaleID:      it.SaleID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
		})
	}
	if c := s.Customer; c != nil {
		out.Customer = &dto.CustomerResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Address:   c.Address,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return out
}
