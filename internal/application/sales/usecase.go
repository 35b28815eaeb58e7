package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/domain/repository"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// ErrReceiptUnavailable no hay generador de comprobantes configurado.
var ErrReceiptUnavailable = errors.New("receipt generator not configured")

// SaleUseCase crea, reemplaza, elimina y consulta ventas manteniendo el stock consistente.
type SaleUseCase struct {
	tx        TxRunner
	saleRepo  repository.SaleRepository
	products  repository.ProductRepository
	publisher EventPublisher
	receipts  ReceiptGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso. publisher nil equivale a NopPublisher.
func NewSaleUseCase(
	tx TxRunner,
	saleRepo repository.SaleRepository,
	products repository.ProductRepository,
	publisher EventPublisher,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *SaleUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		tx:        tx,
		saleRepo:  saleRepo,
		products:  products,
		publisher: publisher,
		receipts:  receipts,
		log:       log,
		now:       time.Now,
	}
}

// Create valida cliente y líneas, crea la venta con sus ítems y descuenta stock; todo en una transacción.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var sale *entity.Sale
	err := uc.tx.RunSales(ctx, func(products repository.ProductRepository, customers repository.CustomerRepository, sales repository.SaleRepository) error {
		now := uc.now()
		var err error
		sale, err = placeSale(ctx, products, customers, sales, userID, uuid.New().String(), now, now, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	uc.publish(ctx, EventSaleCreated, userID, out)
	return out, nil
}

// Edit reemplaza la venta en sitio: restaura el stock de los ítems actuales, borra la venta,
// valida las nuevas líneas contra el stock restaurado y la recrea con el mismo ID.
// Todo ocurre en una sola transacción: si las nuevas líneas fallan la venta original queda intacta.
func (uc *SaleUseCase) Edit(ctx context.Context, userID, saleID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var sale *entity.Sale
	err := uc.tx.RunSales(ctx, func(products repository.ProductRepository, customers repository.CustomerRepository, sales repository.SaleRepository) error {
		existing, err := sales.GetByID(ctx, userID, saleID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrSaleNotFound
		}
		// bloquear de una vez viejos y nuevos productos, en orden estable
		ids := make([]string, 0, len(existing.Items)+len(in.Products))
		for _, it := range existing.Items {
			ids = append(ids, it.ProductID)
		}
		for _, l := range in.Products {
			ids = append(ids, l.ProductID)
		}
		if _, err := products.GetByIDsForUpdate(ctx, userID, uniqueSorted(ids)); err != nil {
			return err
		}
		if err := restoreStock(ctx, products, userID, existing); err != nil {
			return err
		}
		if err := sales.Delete(ctx, userID, existing.ID); err != nil {
			return err
		}
		sale, err = placeSale(ctx, products, customers, sales, userID, existing.ID, existing.CreatedAt, uc.now(), in)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	uc.publish(ctx, EventSaleUpdated, userID, out)
	return out, nil
}

// Delete devuelve al stock lo que la venta descontó y la elimina (ítems primero).
func (uc *SaleUseCase) Delete(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	err := uc.tx.RunSales(ctx, func(products repository.ProductRepository, _ repository.CustomerRepository, sales repository.SaleRepository) error {
		var err error
		sale, err = sales.GetByID(ctx, userID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if err := restoreStock(ctx, products, userID, sale); err != nil {
			return err
		}
		return sales.Delete(ctx, userID, sale.ID)
	})
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	uc.publish(ctx, EventSaleDeleted, userID, out)
	return out, nil
}

// Get devuelve una venta del usuario con sus ítems.
func (uc *SaleUseCase) Get(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista las ventas del usuario paginadas; el total también se limita al usuario.
func (uc *SaleUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.Normalize()
	list, err := uc.saleRepo.ListByUser(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Sales:       make([]dto.SaleResponse, 0, len(list)),
		TotalSales:  total,
		TotalPages:  dto.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}
	for _, s := range list {
		out.Sales = append(out.Sales, *toSaleResponse(s))
	}
	return out, nil
}

// Receipt genera el comprobante PDF de una venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, userID, sellerName, saleID string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, ErrReceiptUnavailable
	}
	sale, err := uc.saleRepo.GetByID(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	rc := Receipt{Sale: sale, Customer: sale.Customer, Seller: sellerName}
	names := make(map[string]string, len(sale.Items))
	for _, it := range sale.Items {
		if _, ok := names[it.ProductID]; !ok {
			p, err := uc.products.GetByID(ctx, userID, it.ProductID)
			if err != nil {
				return nil, err
			}
			names[it.ProductID] = it.ProductID
			if p != nil {
				names[it.ProductID] = p.Name
			}
		}
		rc.Lines = append(rc.Lines, ReceiptLine{
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.PriceAtSale,
			Subtotal:    it.Subtotal(),
		})
	}
	pdf, err := uc.receipts.Generate(rc)
	if err != nil {
		return nil, fmt.Errorf("generate receipt: %w", err)
	}
	return pdf, nil
}

// placeSale valida cliente y líneas (en orden de entrada) contra el stock actual,
// persiste la venta y descuenta el stock con un UPDATE condicional por línea.
func placeSale(
	ctx context.Context,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	userID, saleID string,
	createdAt, now time.Time,
	in dto.SaleRequest,
) (*entity.Sale, error) {
	customer, err := customers.GetByID(ctx, userID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewCustomerNotFound(in.CustomerID)
	}

	ids := make([]string, 0, len(in.Products))
	for _, l := range in.Products {
		ids = append(ids, l.ProductID)
	}
	byID, err := products.GetByIDsForUpdate(ctx, userID, uniqueSorted(ids))
	if err != nil {
		return nil, err
	}

	// remaining acumula lo pedido cuando un producto aparece en varias líneas
	remaining := make(map[string]int, len(byID))
	for id, p := range byID {
		remaining[id] = p.Stock
	}
	sale := &entity.Sale{
		ID:         saleID,
		UserID:     userID,
		CustomerID: customer.ID,
		Customer:   customer,
		Items:      make([]entity.SaleItem, 0, len(in.Products)),
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}
	for _, l := range in.Products {
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, domain.NewProductNotFound(l.ProductID)
		}
		if l.Quantity > remaining[p.ID] {
			return nil, domain.NewInsufficientStock(p.ID, p.Name)
		}
		remaining[p.ID] -= l.Quantity
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			ProductID:   p.ID,
			Quantity:    l.Quantity,
			PriceAtSale: p.Price,
		})
	}
	sale.Total = sale.ComputeTotal()

	if err := sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	for _, it := range sale.Items {
		if err := products.DecrementStock(ctx, userID, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, domain.NewInsufficientStock(it.ProductID, byID[it.ProductID].Name)
			}
			return nil, err
		}
	}
	return sale, nil
}

func restoreStock(ctx context.Context, products repository.ProductRepository, userID string, sale *entity.Sale) error {
	for _, it := range sale.Items {
		if err := products.IncrementStock(ctx, userID, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("restore stock %s: %w", it.ProductID, err)
		}
	}
	return nil
}

func (uc *SaleUseCase) publish(ctx context.Context, typ, userID string, sale *dto.SaleResponse) {
	ev := SaleEvent{
		ID:         uuid.New().String(),
		Type:       typ,
		UserID:     userID,
		OccurredAt: uc.now().UTC(),
		Sale:       *sale,
	}
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", typ).Str("sale_id", sale.ID).Msg("publish sale event")
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
