package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/billing"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/ordering/orderingtest"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000003"

// ── Helpers ─────────────────────────────────────────────────────────────────

type orderAPI struct {
	app       *fiber.App
	store     *orderingtest.Store
	customer  *entity.Customer
	warehouse *entity.Warehouse
	p1, p2    *entity.Product
}

func newOrderAPI(t *testing.T) *orderAPI {
	t.Helper()
	store := orderingtest.NewStore()
	m := metrics.NewOrderMetrics("almacen_test")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CreateOrder: ordering.NewCreateOrderUseCase(store, ordering.NewIdentifierGenerator(0), m, zerolog.Nop()),
		OrderUC:     ordering.NewOrderUseCase(store, store.Orders(), store.OrderItems(), store.Invoices()),
		ProductUC:   usecase.NewProductUseCase(store.Products()),
		InvoiceUC:   billing.NewInvoiceUseCase(store.Invoices(), store.OrderItems(), store.Orders()),
		JWT:         testJWT,
		Metrics:     m.Handler(),
	})
	return &orderAPI{
		app:       app,
		store:     store,
		customer:  store.AddCustomer(testCompanyID),
		warehouse: store.AddWarehouse(testCompanyID),
		p1:        store.AddProduct(testCompanyID),
		p2:        store.AddProduct(testCompanyID),
	}
}

func (a *orderAPI) request(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *orderAPI) orderBody(number string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Number:      number,
		Type:        "sales",
		CustomerID:  a.customer.ID,
		WarehouseID: a.warehouse.ID,
		Items: []dto.CreateOrderItemRequest{
			{ProductID: a.p1.ID, Quantity: 2, Price: "10.50"},
			{ProductID: a.p2.ID, Quantity: 1, Price: "3.00"},
		},
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── POST /api/orders ────────────────────────────────────────────────────────

func TestCreateOrder_201ConLineasYFactura(t *testing.T) {
	api := newOrderAPI(t)
	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OPERATOR"), api.orderBody(""))
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.OrderResponse](t, resp)
	assert.True(t, strings.HasPrefix(out.Number, "ORD-"), out.Number)
	assert.Len(t, out.Items, 2)
	require.NotNil(t, out.Invoice)
	assert.True(t, strings.HasPrefix(out.Invoice.Number, "INV-"), out.Invoice.Number)
	assert.Equal(t, "pending", out.Invoice.Status)

	c := api.store.Counts()
	assert.Equal(t, 1, c.Orders)
	assert.Equal(t, 2, c.Items)
	assert.Equal(t, 1, c.Invoices)
}

func TestCreateOrder_PedidoVacio400(t *testing.T) {
	api := newOrderAPI(t)
	body := api.orderBody("")
	body.Items = nil

	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OWNER"), body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_ORDER", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, api.store.Counts().Orders)
}

func TestCreateOrder_PrecioConTresDecimales400(t *testing.T) {
	api := newOrderAPI(t)
	body := api.orderBody("")
	body.Items[0].Price = "1.005"

	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OWNER"), body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateOrder_SinClienteEsErrorDeValidacion(t *testing.T) {
	api := newOrderAPI(t)
	body := api.orderBody("")
	body.CustomerID = ""

	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OWNER"), body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[apphttp.ValidationErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "required", out.Fields["CustomerID"])
}

func TestCreateOrder_NumeroDuplicado409YLuegoOtroNumero(t *testing.T) {
	api := newOrderAPI(t)
	tok := tokenFor(t, testCompanyID, "OPERATOR")

	first := api.request(t, http.MethodPost, "/api/orders", tok, api.orderBody("PED-001"))
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	dup := api.request(t, http.MethodPost, "/api/orders", tok, api.orderBody("PED-001"))
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTIFIER", decode[dto.ErrorResponse](t, dup).Code)

	retry := api.request(t, http.MethodPost, "/api/orders", tok, api.orderBody("PED-002"))
	retry.Body.Close()
	assert.Equal(t, http.StatusCreated, retry.StatusCode)
	assert.Equal(t, 2, api.store.Counts().Orders)
}

func TestCreateOrder_ClienteDeOtraEmpresa(t *testing.T) {
	api := newOrderAPI(t)
	body := api.orderBody("")
	body.CustomerID = api.store.AddCustomer(otherCompanyID).ID

	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OWNER"), body)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, api.store.Counts().Orders)
}

func TestCreateOrder_ViewerNoPuedeCrear(t *testing.T) {
	api := newOrderAPI(t)
	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "VIEWER"), api.orderBody(""))
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, api.store.Counts().Orders)
}

// ── Lectura y borrado ───────────────────────────────────────────────────────

func createViaAPI(t *testing.T, api *orderAPI) dto.OrderResponse {
	t.Helper()
	resp := api.request(t, http.MethodPost, "/api/orders", tokenFor(t, testCompanyID, "OWNER"), api.orderBody(""))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.OrderResponse](t, resp)
}

func TestGetOrder_OtraEmpresaEs404(t *testing.T) {
	api := newOrderAPI(t)
	created := createViaAPI(t, api)

	own := api.request(t, http.MethodGet, "/api/orders/"+created.ID, tokenFor(t, testCompanyID, "VIEWER"), nil)
	own.Body.Close()
	assert.Equal(t, http.StatusOK, own.StatusCode)

	foreign := api.request(t, http.MethodGet, "/api/orders/"+created.ID, tokenFor(t, otherCompanyID, "OWNER"), nil)
	foreign.Body.Close()
	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
}

func TestListOrders_ConTotal(t *testing.T) {
	api := newOrderAPI(t)
	createViaAPI(t, api)
	createViaAPI(t, api)

	resp := api.request(t, http.MethodGet, "/api/orders?limit=1", tokenFor(t, testCompanyID, "VIEWER"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.OrderListResponse](t, resp)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Page.Total)
}

func TestOrderItems_ListaLineas(t *testing.T) {
	api := newOrderAPI(t)
	created := createViaAPI(t, api)

	resp := api.request(t, http.MethodGet, "/api/orders/"+created.ID+"/items", tokenFor(t, testCompanyID, "VIEWER"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.OrderItemResponse](t, resp), 2)
}

func TestHardDelete_SoloOwnerYBloqueadoPorFactura(t *testing.T) {
	api := newOrderAPI(t)
	created := createViaAPI(t, api)
	path := "/api/orders/" + created.ID + "/hard"

	operator := api.request(t, http.MethodDelete, path, tokenFor(t, testCompanyID, "OPERATOR"), nil)
	operator.Body.Close()
	assert.Equal(t, http.StatusForbidden, operator.StatusCode)

	owner := api.request(t, http.MethodDelete, path, tokenFor(t, testCompanyID, "OWNER"), nil)
	defer owner.Body.Close()
	assert.Equal(t, http.StatusConflict, owner.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, owner).Code)
	assert.Equal(t, 1, api.store.Counts().Orders)
}

func TestHardDeleteProducto_ReferenciadoPorLinea409(t *testing.T) {
	api := newOrderAPI(t)
	createViaAPI(t, api)
	path := "/api/products/" + api.p1.ID + "/hard"

	operator := api.request(t, http.MethodDelete, path, tokenFor(t, testCompanyID, "OPERATOR"), nil)
	operator.Body.Close()
	assert.Equal(t, http.StatusForbidden, operator.StatusCode)

	owner := api.request(t, http.MethodDelete, path, tokenFor(t, testCompanyID, "OWNER"), nil)
	defer owner.Body.Close()
	assert.Equal(t, http.StatusConflict, owner.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, owner).Code)

	get := api.request(t, http.MethodGet, "/api/products/"+api.p1.ID, tokenFor(t, testCompanyID, "VIEWER"), nil)
	get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)
}

func TestDeleteFactura_PedidoVigente409(t *testing.T) {
	api := newOrderAPI(t)
	created := createViaAPI(t, api)
	require.NotNil(t, created.Invoice)
	tok := tokenFor(t, testCompanyID, "OWNER")

	soft := api.request(t, http.MethodDelete, "/api/invoices/"+created.Invoice.ID, tok, nil)
	soft.Body.Close()
	assert.Equal(t, http.StatusConflict, soft.StatusCode)

	hard := api.request(t, http.MethodDelete, "/api/invoices/"+created.Invoice.ID+"/hard", tok, nil)
	hard.Body.Close()
	assert.Equal(t, http.StatusConflict, hard.StatusCode)
	assert.Equal(t, 1, api.store.Counts().Invoices)
}

func TestSoftDelete_204YLuego404(t *testing.T) {
	api := newOrderAPI(t)
	created := createViaAPI(t, api)
	tok := tokenFor(t, testCompanyID, "OPERATOR")

	del := api.request(t, http.MethodDelete, "/api/orders/"+created.ID, tok, nil)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	get := api.request(t, http.MethodGet, "/api/orders/"+created.ID, tok, nil)
	get.Body.Close()
	assert.Equal(t, http.StatusNotFound, get.StatusCode)
}

// ── Observabilidad ──────────────────────────────────────────────────────────

func TestMetrics_ExponeContadorDePedidos(t *testing.T) {
	api := newOrderAPI(t)
	createViaAPI(t, api)

	resp := api.request(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), `almacen_test_orders_created_total{type="sales"} 1`)
}

func TestHealth(t *testing.T) {
	api := newOrderAPI(t)
	resp := api.request(t, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
