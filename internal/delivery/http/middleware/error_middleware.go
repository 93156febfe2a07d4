package middleware

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warnw("Request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", c.GetString(response.RequestIDKey),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Internal details stay in the log, never in the response body
		logger.Log.Errorw("Internal server error",
			"path", c.FullPath(),
			"request_id", c.GetString(response.RequestIDKey),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
