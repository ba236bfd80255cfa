package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPMetricsMiddleware tracks HTTP request metrics
func HTTPMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		method := c.Method()
		path := sanitizePath(c.Path())

		HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()

		return err
	}
}

// sanitizePath collapses dynamic segments to avoid high cardinality.
func sanitizePath(path string) string {
	if strings.HasPrefix(path, "/uploads/") {
		return "/uploads/:file"
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/:file"
	}

	switch path {
	case "/", "/login", "/register", "/welcome", "/logout",
		"/process_login", "/process_register", "/process_upload-image",
		"/auth", "/auth/callback", "/metrics":
		return path
	default:
		return "/other"
	}
}
