// Package middleware provides the gin middleware chain shared by all HTTP
// surfaces of the service.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mes-platform/production-tracker/pkg/errors"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

// Setup applies the standard middleware chain to the router.
func Setup(router *gin.Engine, logger *logging.Logger) {
	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(CorrelationID())
	router.Use(Logger(logger))
	router.Use(CORS())
	router.Use(ErrorHandler(logger))
}

// CORS sets permissive cross-origin headers.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Correlation-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// HealthCheck returns a liveness handler.
func HealthCheck(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC(),
		})
	}
}

// DependencyCheck reports the health of a named dependency.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ReadinessCheck returns a readiness handler probing the given dependencies.
func ReadinessCheck(serviceName string, checks ...DependencyCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				results[check.Name] = "unavailable: " + err.Error()
				ready = false
				continue
			}
			results[check.Name] = "ok"
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not ready"
		}
		c.JSON(status, gin.H{
			"status":       state,
			"service":      serviceName,
			"dependencies": results,
			"timestamp":    time.Now().UTC(),
		})
	}
}

// NoRoute handles unmatched paths.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithAppError(c, apperrors.ErrNotFound("route not found"))
	}
}

// NoMethod handles unsupported methods on matched paths.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithAppError(c, &apperrors.AppError{
			Code:       "METHOD_NOT_ALLOWED",
			Message:    "method not allowed",
			HTTPStatus: http.StatusMethodNotAllowed,
		})
	}
}
