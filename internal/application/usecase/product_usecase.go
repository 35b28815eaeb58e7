package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Límites de las columnas: price NUMERIC(14,2) y stock INTEGER.
var maxPrice = decimal.New(1, 12)

const maxStock = math.MaxInt32

// ProductUseCase casos de uso CRUD para productos del usuario.
// El stock se fija aquí y luego solo lo mueven las ventas.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	price, err := checkProduct(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Price:       price,
		Stock:       *in.Stock,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del usuario. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update reemplaza los campos del producto (incluido el stock).
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	price, err := checkProduct(in)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:          id,
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Price:       price,
		Stock:       *in.Stock,
		Image:       in.Image,
		Description: in.Description,
		UpdatedAt:   uc.now(),
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del usuario con paginación.
func (uc *ProductUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByUser(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:      items,
		TotalProducts: total,
		TotalPages:    dto.TotalPages(total, page.Limit),
		CurrentPage:   page.Page,
	}, nil
}

// Delete elimina un producto y devuelve lo borrado.
// ErrConflict si alguna venta lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// checkProduct valida stock y precio contra los límites de la tabla.
// El precio se redondea a 2 decimales antes de comparar.
func checkProduct(in dto.ProductRequest) (decimal.Decimal, error) {
	if in.Stock == nil || *in.Stock < 0 || *in.Stock > maxStock {
		return decimal.Decimal{}, domain.ErrInvalidInput
	}
	price := in.Price.Round(2)
	if price.IsNegative() || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, domain.ErrInvalidInput
	}
	return price, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
