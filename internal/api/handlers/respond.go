// Package handlers implements the HTTP handlers of the service.
package handlers

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/auth"
	"github.com/mes-platform/production-tracker/internal/domain"
	apperrors "github.com/mes-platform/production-tracker/pkg/errors"
	"github.com/mes-platform/production-tracker/pkg/middleware"
)

var barcodePattern = regexp.MustCompile(`^\d{16}$`)

// abortWithError maps domain and auth errors onto the API error taxonomy.
func abortWithError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		dupStageErr   *domain.AlreadyInStageError
		predErr       *domain.PredecessorMissingError
	)

	switch {
	case errors.As(err, &validationErr):
		middleware.AbortWithAppError(c, apperrors.ErrValidation(validationErr.Reason))
	case errors.Is(err, domain.ErrBarcodeOverflow):
		middleware.AbortWithAppError(c, apperrors.ErrValidation(err.Error()))
	case errors.As(err, &dupStageErr):
		middleware.AbortWithAppError(c, apperrors.ErrStageConflict(dupStageErr.Error()))
	case errors.As(err, &predErr):
		middleware.AbortWithAppError(c, apperrors.ErrStageNotReached(predErr.Error()))
	case errors.Is(err, domain.ErrNotFound):
		middleware.AbortWithAppError(c, apperrors.ErrNotFound("resource not found"))
	case errors.Is(err, domain.ErrOrderExists), errors.Is(err, domain.ErrUserExists):
		middleware.AbortWithAppError(c, apperrors.ErrConflict(err.Error()))
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.AbortWithAppError(c, apperrors.ErrUnauthorized("invalid username or password"))
	case errors.Is(err, auth.ErrInvalidToken):
		middleware.AbortWithAppError(c, apperrors.ErrUnauthorized("invalid or expired token"))
	default:
		middleware.AbortWithAppError(c, apperrors.ErrInternal("internal server error", err))
	}
}

func abortBadRequest(c *gin.Context, err error) {
	middleware.AbortWithAppError(c, apperrors.ErrValidation("invalid request body").WithDetails(err.Error()))
}

// requireBarcodeParam validates the :barcode path parameter.
func requireBarcodeParam(c *gin.Context) (string, bool) {
	barcode := c.Param("barcode")
	if !barcodePattern.MatchString(barcode) {
		middleware.AbortWithAppError(c, apperrors.ErrValidation("barcode must be 16 digits"))
		return "", false
	}
	return barcode, true
}
