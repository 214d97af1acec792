package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// ============================================================
// Request Logging
// ============================================================

// RequestID tags every request with an X-Request-ID, keeping one sent by the client.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// Logger writes one line per request. Mount it after RequestID so the
// line carries the request id that is also returned to the client.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} [HTTP] ${respHeader:X-Request-ID} ${status} ${method} ${path}?${queryParams} ${latency} ${bytesSent}B\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	})
}
