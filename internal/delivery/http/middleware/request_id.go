package middleware

import (
	"portfolio-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates a caller-supplied request ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
