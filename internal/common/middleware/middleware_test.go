package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketch-constraints/internal/common/metrics"
)

func TestMetrics(t *testing.T) {
	collector := metrics.NewCollector("test")

	app := fiber.New()
	app.Use(Metrics(collector))
	app.Get("/scenes/:id", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/missing", func(c fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	for _, path := range []string{"/scenes/a", "/scenes/b"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("GET", "/scenes/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("GET", "/missing", "404")))
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(nil))
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLoggerSkipsProbes(t *testing.T) {
	app := fiber.New()

	var skipped []bool
	app.Use(func(c fiber.Ctx) error {
		skipped = append(skipped, quiet(c))
		return c.Next()
	})
	app.Use(Logger())
	app.Get("/*", func(c fiber.Ctx) error { return c.SendString("ok") })

	for _, path := range []string{"/health/live", "/metrics", "/scenes"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, []bool{true, true, false}, skipped)
}
