package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
	"campusstore/pkg/infrastructure/event"
	"campusstore/pkg/infrastructure/memory"
)

type testServer struct {
	handler  http.Handler
	products []model.Product
}

func newTestServer(t *testing.T) *testServer {
	logger, _ := test.NewNullLogger()
	dispatcher := event.NewLogDispatcher(logger)
	pricer := service.NewPrintPricer(service.DefaultPrintRates)
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	printOrderRepo := memory.NewPrintOrderRepository()

	services := Services{
		Catalog: service.NewCatalogService(productRepo, dispatcher),
		Cart: service.NewCartService(service.CartDependencies{
			Carts:       memory.NewCartRepository(),
			Products:    productRepo,
			Orders:      orderRepo,
			PrintOrders: printOrderRepo,
			Pricer:      pricer,
			Dispatcher:  dispatcher,
		}),
		Orders:      service.NewOrderService(orderRepo),
		PrintOrders: service.NewPrintOrderService(printOrderRepo, dispatcher),
		ShopStatus:  service.NewShopStatusService(memory.NewSlotStore(), dispatcher),
		Pricer:      pricer,
	}

	_, err := service.SeedCatalog(context.Background(), services.Catalog, service.DefaultCatalog())
	require.NoError(t, err)
	products, err := services.Catalog.List(context.Background())
	require.NoError(t, err)

	return &testServer{handler: Router(services), products: products}
}

func (s *testServer) product(t *testing.T, name string) model.Product {
	for _, p := range s.products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no product %q", name)
	return model.Product{}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(userIDHeader, "student-1")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductsEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("List by category", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/products?category=Beverages", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var products []productResponse
		decode(t, rec, &products)
		require.Len(t, products, 2)
		assert.Equal(t, "Maaza Mango Drink", products[0].Name)
		assert.Equal(t, json.Number("25.00"), products[0].Price)
	})

	t.Run("Stock level", func(t *testing.T) {
		highlighters := s.product(t, "Highlighters (Set of 4)")
		rec := s.do(t, http.MethodGet, "/api/v1/products/"+highlighters.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var product productResponse
		decode(t, rec, &product)
		assert.Equal(t, model.OutOfStock, product.StockLevel)
	})

	t.Run("Unknown product", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Malformed id", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Create and remove", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{"name": "Glue Stick", "price": "45", "stock": 12, "category": "Stationery"})
		require.Equal(t, http.StatusCreated, rec.Code)
		var created productResponse
		decode(t, rec, &created)
		assert.Equal(t, model.LowStock, created.StockLevel)

		rec = s.do(t, http.MethodDelete, "/api/v1/products/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Categories", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/categories", nil)
		var categories []string
		decode(t, rec, &categories)
		assert.Equal(t, "All", categories[0])
	})
}

func TestEstimateEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/print-estimates", map[string]interface{}{
		"fileName": "thesis.pdf", "copies": 3, "paperSize": "A4", "color": "Color", "twoSided": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"estimatedPrice":84.00}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/print-estimates", map[string]interface{}{"fileName": "", "copies": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"estimatedPrice":null}`, rec.Body.String())
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	notebook := s.product(t, "Spiral Notebook - A4")

	rec := s.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"type": "product", "productId": notebook.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"type":     "print",
		"printJob": map[string]interface{}{"fileName": "lab.pdf", "copies": 1, "paperSize": "A4", "color": "Color"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cart cartResponse
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, json.Number("404.00"), cart.Subtotal)
	assert.Equal(t, "lab.pdf (Print)", cart.Items[1].Name)

	rec = s.do(t, http.MethodPatch, "/api/v1/cart/items/"+cart.Items[1].ID.String(), map[string]int{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/orders", nil, idempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code)
	var order orderResponse
	decode(t, rec, &order)
	assert.Equal(t, "CAMPUS-001", order.OrderNumber)
	assert.Equal(t, json.Number("404.00"), order.TotalAmount)

	rec = s.do(t, http.MethodPost, "/api/v1/orders", nil, idempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code)
	var replay orderResponse
	decode(t, rec, &replay)
	assert.Equal(t, order.ID, replay.ID)

	rec = s.do(t, http.MethodPost, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "cart is empty after checkout")

	rec = s.do(t, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []orderResponse
	decode(t, rec, &history)
	require.Len(t, history, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/print-orders?status=Pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue []printOrderResponse
	decode(t, rec, &queue)
	require.Len(t, queue, 1)
	job := queue[0]
	assert.Equal(t, []model.PrintOrderStatus{model.PrintPrinting, model.PrintCancelled}, job.NextStatuses)

	t.Run("Skip is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/print-orders/"+job.ID.String(), map[string]interface{}{"status": "Completed"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Stale version is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/print-orders/"+job.ID.String(), map[string]interface{}{"status": "Printing", "version": job.Version + 1})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Unknown status", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/print-orders/"+job.ID.String(), map[string]interface{}{"status": "Lost"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Advance", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/print-orders/"+job.ID.String(), map[string]interface{}{"status": "Printing", "version": job.Version})
		require.Equal(t, http.StatusOK, rec.Code)
		var updated printOrderResponse
		decode(t, rec, &updated)
		assert.Equal(t, model.PrintPrinting, updated.Status)
		assert.Equal(t, job.Version+1, updated.Version)
	})
}

func TestAddProductQuantity(t *testing.T) {
	s := newTestServer(t)
	notebook := s.product(t, "Spiral Notebook - A4")

	t.Run("Missing quantity adds one", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"type": "product", "productId": notebook.ID})
		require.Equal(t, http.StatusCreated, rec.Code)
		var cart cartResponse
		decode(t, rec, &cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("Explicit zero is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"type": "product", "productId": notebook.ID, "quantity": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodGet, "/api/v1/cart", nil)
		var cart cartResponse
		decode(t, rec, &cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})
}

func TestOrdersRequireUser(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/orders", nil, userIDHeader, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShopStatusEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/shop-status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isOpen":true}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/v1/shop-status", map[string]interface{}{"isOpen": false, "message": "Closed for exams"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/shop-status", nil)
	assert.JSONEq(t, `{"isOpen":false,"message":"Closed for exams"}`, rec.Body.String())
}
