package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/api/dto"
	"github.com/mes-platform/production-tracker/internal/application"
	"github.com/mes-platform/production-tracker/internal/auth"
	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/metrics"
)

// AdvanceUnit records a unit entering a stage. The principal comes from the
// auth middleware.
func AdvanceUnit(svc *application.PipelineService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		barcode, ok := requireBarcodeParam(c)
		if !ok {
			return
		}

		var req dto.AdvanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}

		stage, err := domain.ParseStage(req.Stage)
		if err != nil {
			abortWithError(c, err)
			return
		}

		record, err := svc.Advance(c.Request.Context(), application.AdvanceCommand{
			BarcodeNumber: barcode,
			Stage:         stage,
			RecordedBy:    auth.Principal(c),
		})
		if err != nil {
			abortWithError(c, err)
			return
		}

		if m != nil {
			m.RecordStageTransition(record.Stage.String(), record.Verdict())
		}
		c.JSON(http.StatusCreated, record)
	}
}

// GetUnit resolves a barcode to its identity and stage history.
func GetUnit(svc *application.PipelineService) gin.HandlerFunc {
	return func(c *gin.Context) {
		barcode, ok := requireBarcodeParam(c)
		if !ok {
			return
		}

		doc, records, err := svc.History(c.Request.Context(), barcode)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.UnitResponse{
			OrderNumber: doc.OrderNumber,
			Barcode: &dto.BarcodeSummary{
				BarcodeNumber: doc.BarcodeNumber,
				ShoeSize:      doc.ShoeSize,
				SerialNumber:  doc.SerialNumber,
				CreatedAt:     doc.CreatedAt,
			},
			Records: records,
		})
	}
}
