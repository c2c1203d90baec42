package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/api/dto"
	"github.com/mes-platform/production-tracker/internal/application"
	"github.com/mes-platform/production-tracker/pkg/metrics"
)

// GenerateLabels issues the order's unit barcodes and returns the printable
// PDF sheet.
func GenerateLabels(svc *application.BarcodeService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		sheet, count, err := svc.GenerateLabels(c.Request.Context(), orderNumber)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if m != nil {
			m.RecordBarcodesIssued(count)
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=labels-%s.pdf", orderNumber))
		c.Header("X-Label-Count", fmt.Sprintf("%d", count))
		c.Data(http.StatusOK, "application/pdf", sheet)
	}
}

// ListBarcodes returns an order's issued barcodes without image payloads.
func ListBarcodes(svc *application.BarcodeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := svc.ListBarcodes(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		summaries := dto.NewBarcodeSummaries(docs)
		c.JSON(http.StatusOK, gin.H{"barcodes": summaries, "count": len(summaries)})
	}
}

// GetBarcodeImage returns one barcode's base64 PNG.
func GetBarcodeImage(svc *application.BarcodeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		barcode, ok := requireBarcodeParam(c)
		if !ok {
			return
		}

		doc, err := svc.GetBarcode(c.Request.Context(), barcode)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.BarcodeImageResponse{
			BarcodeNumber: doc.BarcodeNumber,
			Image:         doc.Image,
		})
	}
}
