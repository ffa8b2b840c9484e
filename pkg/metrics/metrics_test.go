package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibecart/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerMetrics(t *testing.T) {
	m := metrics.NewServerMetrics("api")
	// a second instance must not collide with the first
	_ = metrics.NewServerMetrics("api")

	m.Requests.WithLabelValues("GET", "/api/cart", "200").Inc()
	m.CheckoutOutcomes.WithLabelValues(metrics.OutcomeCompleted).Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/api/cart", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues(metrics.OutcomeCompleted)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vibecart_api_checkouts_total")
}
