package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-api/internal/application/auth"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/internal/infrastructure/memory"
	"github.com/jhoicas/retail-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/retail-api/internal/interfaces/http"
	"github.com/jhoicas/retail-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "retail-api-test"
	testExpMin    = 60
)

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

// newTestAPI arma la API completa sobre el store en memoria.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	app.Get("/health", apphttp.Health("retail-api", nil, log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.Users(), nil, jwtCfg),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers()),
		ProductUC:  usecase.NewProductUseCase(store.Products()),
		SaleUC: sales.NewSaleUseCase(store, store.Sales(), store.Products(), nil,
			pdf.NewReceiptGenerator("retail-api"), log),
		Cookie: apphttp.CookieConfig{Lifetime: jwtCfg.Lifetime()},
		Log:    log,
	})
	return &testAPI{app: app, store: store}
}

// do lanza la petición; token vacío = sin credenciales.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func messageOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var m dto.ErrorResponse
	decode(t, resp, &m)
	return m.Message
}

// signupAndLogin registra un usuario y devuelve su token.
func (a *testAPI) signupAndLogin(t *testing.T, email string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/auth/signup", "", fiber.Map{"name": "Ana", "email": email, "password": "secreto1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = a.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": "secreto1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (a *testAPI) createCustomer(t *testing.T, token string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/customers/add", token, fiber.Map{
		"name": "Cliente", "email": "cliente@x.co", "phone": "3001234567", "address": "Calle 1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.CustomerEnvelope
	decode(t, resp, &out)
	return out.Customer.ID
}

func (a *testAPI) createProduct(t *testing.T, token, name string, price, stock int) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/products", token, fiber.Map{
		"name": name, "price": price, "stock": stock, "image": "img.png", "description": "desc",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.ProductEnvelope
	decode(t, resp, &out)
	return out.Product.ID
}

func (a *testAPI) stockOf(t *testing.T, token, productID string) int {
	t.Helper()
	resp := a.do(t, http.MethodGet, "/products/"+productID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	return p.Stock
}

func saleBody(customerID string, lines ...any) fiber.Map {
	products := make([]fiber.Map, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		products = append(products, fiber.Map{"productId": lines[i], "quantity": lines[i+1]})
	}
	return fiber.Map{"customerId": customerID, "products": products}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_DuplicadoDevuelve400(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/auth/signup", "", fiber.Map{"name": "Ana", "email": "ana@x.co", "password": "secreto1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", messageOf(t, resp))
}

func TestSignup_ValidacionDevuelveErroresPorCampo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/auth/signup", "", fiber.Map{"name": "", "email": "no-email", "password": "123"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "Validation failed", out.Message)
	fields := make([]string, 0, len(out.Errors))
	for _, fe := range out.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestLogin_Errores(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "nadie@x.co", "password": "secreto1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User not found", messageOf(t, resp))

	resp = api.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "ana@x.co", "password": "otraclave"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid password", messageOf(t, resp))
}

func TestLogin_CookieDeSesion(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "ana@x.co", "password": "secreto1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, testExpMin*60, cookie.MaxAge)

	// la cookie sola autentica
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: cookie.Value})
	me, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, me.StatusCode)
}

func TestAuthMiddleware_RutasProtegidas(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")

	t.Run("sin token", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/products", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", messageOf(t, resp))
	})
	t.Run("token inválido", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/products", "abc.def.ghi", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("token", token)
		resp, err := api.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("bearer", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/products", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAuthMiddleware_UsuarioBorrado(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)

	api.store.DeleteUser(me.ID)
	resp = api.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_LimpiaCookie(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "token" && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared)
	assert.Equal(t, "User logged out successfully", messageOf(t, resp))

	// sin token también es 200
	resp = api.do(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Customers / Products
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	id := api.createCustomer(t, token)

	resp := api.do(t, http.MethodPatch, "/customers/"+id, token, fiber.Map{
		"name": "Nuevo", "email": "nuevo@x.co", "phone": "3009999999", "address": "Calle 2",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var env dto.CustomerEnvelope
	decode(t, resp, &env)
	assert.Equal(t, "Customer updated successfully", env.Message)
	assert.Equal(t, "Nuevo", env.Customer.Name)

	resp = api.do(t, http.MethodGet, "/customers?page=1&limit=5", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.CustomerListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.TotalCustomers)
	assert.Equal(t, 1, list.TotalPages)

	resp = api.do(t, http.MethodDelete, "/customers/"+id, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = api.do(t, http.MethodDelete, "/customers/"+id, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Customer not found", messageOf(t, resp))
}

func TestCustomers_ValidacionTelefono(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/customers/add", token, fiber.Map{
		"name": "Cliente", "email": "cliente@x.co", "phone": "123", "address": "Calle 1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "phone", out.Errors[0].Field)
}

func TestProducts_AisladosPorUsuario(t *testing.T) {
	api := newTestAPI(t)
	tokenA := api.signupAndLogin(t, "ana@x.co")
	tokenB := api.signupAndLogin(t, "beto@x.co")
	id := api.createProduct(t, tokenA, "Café", 5, 10)

	resp := api.do(t, http.MethodGet, "/products/"+id, tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = api.do(t, http.MethodDelete, "/products/"+id, tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = api.do(t, http.MethodGet, "/products/no-es-uuid", tokenA, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/products/"+id, tokenA, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var env dto.ProductEnvelope
	decode(t, resp, &env)
	assert.Equal(t, "Product deleted successfully", env.Message)
	assert.Equal(t, id, env.Product.ID)
}

func TestProducts_PrecioMinimo(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")

	resp := api.do(t, http.MethodPost, "/products", token, fiber.Map{
		"name": "Café", "price": 0.5, "stock": 1, "image": "img.png", "description": "desc",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_LimitesDeColumnas(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	id := api.createProduct(t, token, "Café", 5, 10)

	body := func(price any, stock int) fiber.Map {
		return fiber.Map{"name": "Café", "price": price, "stock": stock, "image": "img.png", "description": "desc"}
	}
	cases := []struct {
		name  string
		body  fiber.Map
		field string
	}{
		{"stock mayor que INTEGER", body(5, 3000000000), "stock"},
		{"precio de 13 dígitos", body("1000000000000", 1), "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, req := range []struct{ method, path string }{
				{http.MethodPost, "/products"},
				{http.MethodPatch, "/products/" + id},
			} {
				resp := api.do(t, req.method, req.path, token, tc.body)
				require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, req.method)
				var out dto.ErrorResponse
				decode(t, resp, &out)
				require.NotEmpty(t, out.Errors)
				assert.Equal(t, tc.field, out.Errors[0].Field)
			}
		})
	}
	assert.Equal(t, 10, api.stockOf(t, token, id))
}

func TestProducts_PrecioRedondeadoADosDecimales(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	want := decimal.RequireFromString("5.56")

	resp := api.do(t, http.MethodPost, "/products", token, fiber.Map{
		"name": "Café", "price": "5.555", "stock": 1, "image": "img.png", "description": "desc",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var env dto.ProductEnvelope
	decode(t, resp, &env)
	assert.True(t, want.Equal(env.Product.Price), env.Product.Price.String())

	resp = api.do(t, http.MethodGet, "/products/"+env.Product.ID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.ProductResponse
	decode(t, resp, &got)
	assert.True(t, want.Equal(got.Price), got.Price.String())

	resp = api.do(t, http.MethodPatch, "/products/"+env.Product.ID, token, fiber.Map{
		"name": "Café", "price": "7.004", "stock": 1, "image": "img.png", "description": "desc",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &env)
	assert.True(t, decimal.RequireFromString("7").Equal(env.Product.Price), env.Product.Price.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Sales
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_CrearDescuentaStock(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 10)

	resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 3))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.True(t, decimal.NewFromInt(15).Equal(sale.Total))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Equal(t, 7, api.stockOf(t, token, p))
}

func TestSales_StockInsuficiente(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 7)

	resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 9))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Not enough stock for product P", messageOf(t, resp))
	assert.Equal(t, 7, api.stockOf(t, token, p))
}

func TestSales_ProductoInexistente(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 7)
	missing := "99999999-9999-9999-9999-999999999999"

	resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 1, missing, 1))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product "+missing+" not found", messageOf(t, resp))
	assert.Equal(t, 7, api.stockOf(t, token, p))
}

func TestSales_ValidacionInvalidData(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)

	resp := api.do(t, http.MethodPost, "/sales/add", token, fiber.Map{"customerId": customer, "products": []fiber.Map{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid data", messageOf(t, resp))

	resp = api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, "x", 0))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Errors)
	assert.Equal(t, "products[0].quantity", out.Errors[0].Field)
}

func TestSales_EditarYBorrar(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 10)
	q := api.createProduct(t, token, "Q", 2, 10)

	resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 4))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)

	// edición fallida: la venta original sigue intacta
	resp = api.do(t, http.MethodPut, "/sales/"+sale.ID, token, saleBody(customer, q, 50))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 6, api.stockOf(t, token, p))
	assert.Equal(t, 10, api.stockOf(t, token, q))

	resp = api.do(t, http.MethodPut, "/sales/"+sale.ID, token, saleBody(customer, q, 3))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var edited dto.SaleResponse
	decode(t, resp, &edited)
	assert.Equal(t, sale.ID, edited.ID)
	assert.True(t, decimal.NewFromInt(6).Equal(edited.Total))
	assert.Equal(t, 10, api.stockOf(t, token, p))
	assert.Equal(t, 7, api.stockOf(t, token, q))

	resp = api.do(t, http.MethodDelete, "/sales/"+sale.ID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, api.stockOf(t, token, q))

	resp = api.do(t, http.MethodDelete, "/sales/"+sale.ID, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Sale not found", messageOf(t, resp))
	assert.Equal(t, 10, api.stockOf(t, token, q))
}

func TestSales_ListadoYComprobante(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 10)

	var last dto.SaleResponse
	for i := 0; i < 3; i++ {
		resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 1))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		decode(t, resp, &last)
	}

	resp := api.do(t, http.MethodGet, "/sales?limit=2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.SaleListResponse
	decode(t, resp, &list)
	assert.Equal(t, 3, list.TotalSales)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 1, list.CurrentPage)
	assert.Len(t, list.Sales, 2)

	resp = api.do(t, http.MethodGet, "/sales/"+last.ID+"/receipt", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = api.do(t, http.MethodGet, "/sales/99999999-9999-9999-9999-999999999999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSales_ErrorInternoNoSeExpone(t *testing.T) {
	api := newTestAPI(t)
	token := api.signupAndLogin(t, "ana@x.co")
	customer := api.createCustomer(t, token)
	p := api.createProduct(t, token, "P", 5, 10)

	api.store.FailOn(memory.OpSaleCreate, errors.New("conexión perdida"))
	resp := api.do(t, http.MethodPost, "/sales/add", token, saleBody(customer, p, 1))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", messageOf(t, resp))
	assert.Equal(t, 10, api.stockOf(t, token, p))
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out apphttp.HealthResponse
	decode(t, resp, &out)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "retail-api", out.Service)
}

func TestHealth_CheckCaidoNoExponeElError(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("retail-api", map[string]apphttp.HealthCheck{
		"postgres": func(context.Context) error {
			return errors.New("dial tcp 10.0.0.5:5432: connection refused")
		},
	}, logger.Nop()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "10.0.0.5")

	var out apphttp.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, map[string]string{"postgres": "down"}, out.Checks)
}
