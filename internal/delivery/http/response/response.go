package response

import (
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the RequestID middleware writes
const RequestIDKey = string(domain.KeyRequestID)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// Failure reports an unsuccessful outcome that still carries data,
// such as a contact state that ended in failure
func Failure(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}
