package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// Logger tags each request with an ID (reusing the caller's X-Request-ID
// when present) and logs one line when it completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Printf("[API] %s %s -> %d (%s) id=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), id)
	}
}
