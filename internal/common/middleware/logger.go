package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// quietPrefixes are polled by probes and scrapers and stay out of the access log.
var quietPrefixes = []string{"/health/", "/metrics"}

// Logger writes one access log line per request.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Next:       quiet,
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | ${bytesSent}B ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

func quiet(c fiber.Ctx) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(c.Path(), p) {
			return true
		}
	}
	return false
}
