package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mes-platform/production-tracker/pkg/errors"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

// APIErrorResponse is the JSON body returned for every error.
type APIErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// ErrorHandler renders errors attached to the gin context as a uniform JSON
// envelope. Handlers report failures via AbortWithAppError.
func ErrorHandler(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.ErrInternal("internal server error", err)
		}

		if appErr.HTTPStatus >= 500 {
			logger.WithContext(c.Request.Context()).WithError(err).Error("request failed",
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}

		requestID := c.GetString(ContextKeyRequestID)
		c.JSON(appErr.HTTPStatus, APIErrorResponse{
			Code:      appErr.Code,
			Message:   appErr.Message,
			Details:   appErr.Details,
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
	}
}

// AbortWithAppError records the error on the context and stops the handler
// chain. The ErrorHandler middleware writes the response.
func AbortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	_ = c.Error(appErr)
	c.Abort()
}
