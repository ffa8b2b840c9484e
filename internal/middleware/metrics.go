package middleware

import (
	"strconv"
	"time"

	"vibecart/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// RequestMetrics records a request counter and latency per method and route pattern.
func RequestMetrics(m *metrics.ServerMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		method := c.Method()
		m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.LatencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}
