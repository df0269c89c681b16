package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header carrying the request identifier
	RequestIDHeader = "X-Request-ID"

	// requestIDKey stores the request identifier in the gin context
	requestIDKey = "request_id"
)

// RequestID tags every request with a unique identifier for tracing. A
// caller-supplied X-Request-ID is honored; otherwise one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID returns the request identifier set by RequestID, or "" when
// the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
