package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "trace_id"

// Trace propagates or generates an X-Trace-Id header per request.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Trace-Id", traceID)
		c.Set(traceIDKey, traceID)
		c.Next()
	}
}

// GetTraceID returns the request's trace id, if any.
func GetTraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}
