// Package middleware holds the gin middleware chain for the HTTP API:
// request IDs, request logging, Prometheus instrumentation and client rate
// limiting.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the canonical request ID header.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key under which the request ID is stored.
const requestIDKey = "request_id"

// RequestID ensures every request carries an ID: an inbound X-Request-ID is
// trusted and propagated, otherwise a fresh UUID is generated. The ID is
// stored on the gin context and echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
