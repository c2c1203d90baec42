package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/api/dto"
	"github.com/mes-platform/production-tracker/internal/auth"
	"github.com/mes-platform/production-tracker/pkg/metrics"
)

// Register creates an operator account.
func Register(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}

		user, err := svc.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, dto.RegisteredResponse{
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		})
	}
}

// Login exchanges credentials for a signed token.
func Login(svc *auth.Service, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}

		token, expiresAt, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if m != nil {
				m.RecordLoginAttempt("failure")
			}
			abortWithError(c, err)
			return
		}

		if m != nil {
			m.RecordLoginAttempt("success")
		}
		c.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
	}
}
