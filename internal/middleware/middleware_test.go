package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"vibecart/internal/middleware"
	"vibecart/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.OwnerIdentity())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(middleware.OwnerID(c, c.Query("body")))
	})
	return app
}

func TestOwnerIdentity(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"guest by default", "/whoami", "", "guest"},
		{"header", "/whoami", "u-header", "u-header"},
		{"query beats header", "/whoami?userId=u-query", "u-header", "u-query"},
		{"body beats query", "/whoami?userId=u-query&body=u-body", "", "u-body"},
		{"blank query falls through", "/whoami?userId=%20", "u-header", "u-header"},
	}

	app := ownerApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set(middleware.OwnerHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestRequestMetrics(t *testing.T) {
	m := metrics.NewServerMetrics("test")
	app := fiber.New()
	app.Use(middleware.RequestMetrics(m))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/items/:id", "204")))
}
