package main

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"vibecart/internal/config"
	"vibecart/internal/models"
	"vibecart/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func testConfig(t *testing.T, driver, dsn string) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("STORE_DRIVER", driver)
	v.Set("DATABASE_DSN", dsn)
	v.Set("CATALOG_BASE_URL", "http://127.0.0.1:1")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func newTestApp(t *testing.T, driver, dsn string) *App {
	t.Helper()
	app, err := NewApp(testConfig(t, driver, dsn))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, app.Close())
	})
	return app
}

func send(t *testing.T, app *App, method, target string, body any, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func TestServerHealthCheck(t *testing.T) {
	app := newTestApp(t, config.DriverMemory, "")

	resp, body := send(t, app, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["store"])

	resp, body = send(t, app, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "Welcome")
}

func TestCheckoutFlowOnSQLite(t *testing.T) {
	app := newTestApp(t, config.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")

	resp, _ := send(t, app, http.MethodPost, "/api/cart", map[string]any{
		"productId":   1,
		"quantity":    2,
		"productData": map[string]any{"price": 12.5, "title": "Mug"},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := send(t, app, http.MethodPost, "/api/checkout", map[string]any{
		"customerName":  "Ann",
		"customerEmail": "a@x.com",
		"cartItems":     []map[string]any{{"id": 1, "title": "Mug", "price": 12.5, "quantity": 2}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := body["data"].(map[string]any)
	assert.Equal(t, float64(25), receipt["totalAmount"])
	assert.Equal(t, 2.5, receipt["tax"])
	assert.Equal(t, 33.49, receipt["grandTotal"])

	_, body = send(t, app, http.MethodGet, "/api/cart", nil, nil)
	assert.Empty(t, body["data"].(map[string]any)["items"])

	resp, _ = send(t, app, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIdempotencyKeyReplaysAdd(t *testing.T) {
	app := newTestApp(t, config.DriverMemory, "")
	key := map[string]string{"X-Idempotency-Key": uuid.NewString()}
	add := map[string]any{"productId": "p1", "productData": map[string]any{"price": 4}}

	for i := 0; i < 2; i++ {
		resp, _ := send(t, app, http.MethodPost, "/api/cart", add, key)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	_, body := send(t, app, http.MethodGet, "/api/cart", nil, nil)
	items := body["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(1), items[0].(map[string]any)["quantity"])
}

func TestHandleOrderEvent(t *testing.T) {
	err := handleOrderEvent(amqp.Delivery{
		Type: "order.placed",
		Body: []byte(`{"orderNumber":"VC1","userId":"guest","grandTotal":38.99,"itemCount":1}`),
	})
	assert.NoError(t, err)

	err = handleOrderEvent(amqp.Delivery{Type: "order.placed", Body: []byte("not json")})
	assert.Error(t, err)
}

// failingCartRepository fails Save while armed.
type failingCartRepository struct {
	*repositories.MemoryCartRepository
	failSave atomic.Bool
}

func (r *failingCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if r.failSave.Load() {
		return errors.New("connection reset")
	}
	return r.MemoryCartRepository.Save(ctx, cart)
}

func TestIdempotencyKey_RetryAfterFailedWriteIsApplied(t *testing.T) {
	carts := &failingCartRepository{MemoryCartRepository: repositories.NewMemoryCartRepository()}
	app := &App{}
	require.NoError(t, app.wire(testConfig(t, config.DriverMemory, ""), stores{
		carts:  carts,
		orders: repositories.NewMemoryOrderRepository(),
	}))
	t.Cleanup(func() { app.Close() })

	key := map[string]string{"X-Idempotency-Key": uuid.NewString()}
	item := map[string]any{"productId": 1, "productData": map[string]any{"title": "Backpack", "price": 109.95}}

	carts.failSave.Store(true)
	resp, body := send(t, app, http.MethodPost, "/api/cart", item, key)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Error adding item to cart", body["message"])

	carts.failSave.Store(false)
	resp, body = send(t, app, http.MethodPost, "/api/cart", item, key)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// replay of the stored success
	resp, _ = send(t, app, http.MethodPost, "/api/cart", item, key)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = send(t, app, http.MethodGet, "/api/cart", nil, nil)
	items := body["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(1), items[0].(map[string]any)["quantity"])
}
