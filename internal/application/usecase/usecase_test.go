package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/domain/entity"
	"github.com/jhoicas/retail-api/internal/infrastructure/memory"
)

const (
	owner    = "11111111-1111-1111-1111-111111111111"
	stranger = "22222222-2222-2222-2222-222222222222"
)

func intPtr(n int) *int { return &n }

func productReq(name string, price int64, stock int) dto.ProductRequest {
	return dto.ProductRequest{
		Name: name, Price: decimal.NewFromInt(price), Stock: intPtr(stock),
		Image: "https://img.example/p.png", Description: "descripción",
	}
}

func customerReq(name string) dto.CustomerRequest {
	return dto.CustomerRequest{Name: name, Email: "cliente@example.com", Phone: "3001234567", Address: "Calle 10 # 5-20"}
}

func TestProductUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, owner, productReq("Café", 12, 5))
	require.NoError(t, err)
	assert.Equal(t, owner, created.UserID)
	assert.Equal(t, 5, created.Stock)

	got, err := uc.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café", got.Name)

	_, err = uc.GetByID(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "otro usuario no ve el producto")

	updated, err := uc.Update(ctx, owner, created.ID, productReq("Café molido", 15, 9))
	require.NoError(t, err)
	assert.Equal(t, "Café molido", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = uc.Update(ctx, stranger, created.ID, productReq("x", 1, 1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	deleted, err := uc.Delete(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café molido", deleted.Name)

	_, err = uc.Delete(ctx, owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_StockNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	_, err := uc.Create(context.Background(), owner, productReq("x", 1, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := productReq("x", 1, 1)
	in.Stock = nil
	_, err = uc.Create(context.Background(), owner, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_LimitesDePrecioYStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	_, err := uc.Create(ctx, owner, productReq("x", 1, 3000000000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := productReq("x", 1, 1)
	in.Price = decimal.RequireFromString("999999999999.995")
	_, err = uc.Create(ctx, owner, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "redondeado llega a 1e12")

	in.Price = decimal.RequireFromString("999999999999.994")
	p, err := uc.Create(ctx, owner, in)
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", p.Price.String())

	in.Price = decimal.RequireFromString("5.555")
	p, err = uc.Create(ctx, owner, in)
	require.NoError(t, err)
	assert.Equal(t, "5.56", p.Price.String())

	in.Price = decimal.RequireFromString("2.345")
	p, err = uc.Update(ctx, owner, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "2.35", p.Price.String())
}

func TestProductUseCase_List(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := uc.Create(ctx, owner, productReq("p", 1, 1))
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, stranger, productReq("ajeno", 1, 1))
	require.NoError(t, err)

	first, err := uc.List(ctx, owner, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, first.Products, dto.DefaultLimit)
	assert.Equal(t, 12, first.TotalProducts)
	assert.Equal(t, 2, first.TotalPages)

	second, err := uc.List(ctx, owner, dto.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, second.Products, 2)
	assert.Equal(t, 2, second.CurrentPage)
}

func TestProductUseCase_DeleteReferenciadoPorVenta(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	products := usecase.NewProductUseCase(store.Products())
	customers := usecase.NewCustomerUseCase(store.Customers())
	saleUC := sales.NewSaleUseCase(store, store.Sales(), store.Products(), nil, nil, nil)

	p, err := products.Create(ctx, owner, productReq("p", 1, 5))
	require.NoError(t, err)
	c, err := customers.Create(ctx, owner, customerReq("Ana"))
	require.NoError(t, err)
	_, err = saleUC.Create(ctx, owner, dto.SaleRequest{CustomerID: c.ID, Products: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = products.Delete(ctx, owner, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, customers.Delete(ctx, owner, c.ID), domain.ErrConflict)
}

func TestCustomerUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	created, err := uc.Create(ctx, owner, customerReq("  Ana  "))
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)

	updated, err := uc.Update(ctx, owner, created.ID, customerReq("Ana María"))
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = uc.Update(ctx, stranger, created.ID, customerReq("x"))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, stranger, created.ID), domain.ErrCustomerNotFound)

	list, err := uc.List(ctx, owner, dto.PageRequest{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCustomers)
	assert.Equal(t, 1, list.TotalPages)

	require.NoError(t, uc.Delete(ctx, owner, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, owner, created.ID), domain.ErrCustomerNotFound)
}

func TestUserUseCase_GetByID(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	id := uuid.New().String()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{ID: id, Name: "Ana", Email: "ana@example.com", CreatedAt: now, UpdatedAt: now}))
	uc := usecase.NewUserUseCase(store.Users())

	u, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	_, err = uc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
