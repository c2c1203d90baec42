package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/api/dto"
	"github.com/mes-platform/production-tracker/internal/application"
	"github.com/mes-platform/production-tracker/pkg/metrics"
)

// SubmitOrder accepts a new production order.
func SubmitOrder(svc *application.OrderService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SubmitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}

		order, err := svc.SubmitOrder(c.Request.Context(), req.ToParams())
		if err != nil {
			abortWithError(c, err)
			return
		}

		if m != nil {
			m.RecordOrderCreated()
		}
		c.JSON(http.StatusCreated, order)
	}
}

// ListOrders returns all orders.
func ListOrders(svc *application.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
	}
}

// GetOrder fetches one order by number.
func GetOrder(svc *application.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.GetOrder(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetOrderByBarcode resolves a unit barcode to its full order.
func GetOrderByBarcode(svc *application.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		barcode, ok := requireBarcodeParam(c)
		if !ok {
			return
		}

		order, doc, err := svc.GetOrderByBarcode(c.Request.Context(), barcode)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "barcode_number": doc.BarcodeNumber})
	}
}

// GetOrderReport returns the completion report for an order.
func GetOrderReport(svc *application.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.Report(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
