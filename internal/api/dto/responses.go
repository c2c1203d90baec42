package dto

import (
	"time"

	"github.com/mes-platform/production-tracker/internal/domain"
)

// TokenResponse carries a freshly minted token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisteredResponse confirms account creation.
type RegisteredResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// BarcodeSummary lists an issued identity without its image payload.
type BarcodeSummary struct {
	BarcodeNumber string    `json:"barcode_number"`
	ShoeSize      string    `json:"shoe_size"`
	SerialNumber  int       `json:"serial_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBarcodeSummaries strips image payloads from identity documents.
func NewBarcodeSummaries(docs []*domain.Barcode) []BarcodeSummary {
	out := make([]BarcodeSummary, len(docs))
	for i, doc := range docs {
		out[i] = BarcodeSummary{
			BarcodeNumber: doc.BarcodeNumber,
			ShoeSize:      doc.ShoeSize,
			SerialNumber:  doc.SerialNumber,
			CreatedAt:     doc.CreatedAt,
		}
	}
	return out
}

// BarcodeImageResponse carries one barcode's rendered image.
type BarcodeImageResponse struct {
	BarcodeNumber string `json:"barcode_number"`
	Image         string `json:"image"`
}

// UnitResponse resolves a barcode to its order and stage history.
type UnitResponse struct {
	OrderNumber string                `json:"order_number"`
	Barcode     *BarcodeSummary       `json:"barcode"`
	Records     []*domain.StageRecord `json:"records"`
}
