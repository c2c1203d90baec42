package application

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

// Label is one rendered unit label destined for the printed sheet.
type Label struct {
	BarcodeNumber string
	ShoeSize      string
	PNG           []byte
}

// LabelRenderer renders barcode images and assembles printable label sheets.
type LabelRenderer interface {
	EncodePNG(barcodeNumber string) ([]byte, error)
	BuildSheet(labels []Label) ([]byte, error)
}

// BarcodeService issues unit identities for an order and renders their
// printable labels.
type BarcodeService struct {
	orders    domain.OrderRepository
	barcodes  domain.BarcodeRepository
	renderer  LabelRenderer
	publisher EventPublisher
	logger    *logging.Logger
	now       func() time.Time
}

// NewBarcodeService creates a BarcodeService. publisher may be nil.
func NewBarcodeService(
	orders domain.OrderRepository,
	barcodes domain.BarcodeRepository,
	renderer LabelRenderer,
	publisher EventPublisher,
	logger *logging.Logger,
) *BarcodeService {
	return &BarcodeService{
		orders:    orders,
		barcodes:  barcodes,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger.WithComponent("barcode-service"),
		now:       time.Now,
	}
}

// GenerateLabels mints one barcode per ordered pair (serial 1..quantity
// within each size), persists the identity documents and returns the
// printable PDF sheet. Calling it again for the same order rebuilds the
// sheet from the already-issued identities instead of minting duplicates.
func (s *BarcodeService) GenerateLabels(ctx context.Context, orderNumber string) ([]byte, int, error) {
	normalized, err := domain.NormalizeOrderNumber(orderNumber)
	if err != nil {
		return nil, 0, err
	}

	order, err := s.orders.FindByNumber(ctx, normalized)
	if err != nil {
		return nil, 0, err
	}

	existing, err := s.barcodes.FindByOrder(ctx, normalized)
	if err != nil {
		return nil, 0, err
	}
	if len(existing) > 0 {
		sheet, err := s.sheetFromDocuments(existing)
		if err != nil {
			return nil, 0, err
		}
		return sheet, len(existing), nil
	}

	now := s.now().UTC()
	var (
		docs   []*domain.Barcode
		labels []Label
	)
	for _, sq := range order.Sizes {
		for serial := 1; serial <= sq.Quantity; serial++ {
			number, err := domain.GenerateBarcode(normalized, sq.Size, serial)
			if err != nil {
				return nil, 0, err
			}

			png, err := s.renderer.EncodePNG(number)
			if err != nil {
				return nil, 0, err
			}

			doc, err := domain.NewBarcode(normalized, sq.Size, serial, base64.StdEncoding.EncodeToString(png), now)
			if err != nil {
				return nil, 0, err
			}
			docs = append(docs, doc)
			labels = append(labels, Label{BarcodeNumber: number, ShoeSize: sq.Size, PNG: png})
		}
	}

	if err := s.barcodes.SaveAll(ctx, docs); err != nil {
		return nil, 0, err
	}

	sheet, err := s.renderer.BuildSheet(labels)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("barcodes issued",
		"order_number", normalized,
		"count", len(docs),
	)

	if s.publisher != nil {
		event := domain.BarcodesIssuedEvent{OrderNumber: normalized, Count: len(docs), At: now}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("publishing barcodes event failed",
				"order_number", normalized,
			)
		}
	}

	return sheet, len(docs), nil
}

// ListBarcodes returns an order's issued identity documents.
func (s *BarcodeService) ListBarcodes(ctx context.Context, orderNumber string) ([]*domain.Barcode, error) {
	normalized, err := domain.NormalizeOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.FindByNumber(ctx, normalized); err != nil {
		return nil, err
	}
	return s.barcodes.FindByOrder(ctx, normalized)
}

// GetBarcode fetches a single identity document.
func (s *BarcodeService) GetBarcode(ctx context.Context, barcodeNumber string) (*domain.Barcode, error) {
	return s.barcodes.FindByNumber(ctx, barcodeNumber)
}

func (s *BarcodeService) sheetFromDocuments(docs []*domain.Barcode) ([]byte, error) {
	labels := make([]Label, 0, len(docs))
	for _, doc := range docs {
		png, err := base64.StdEncoding.DecodeString(doc.Image)
		if err != nil {
			return nil, err
		}
		labels = append(labels, Label{BarcodeNumber: doc.BarcodeNumber, ShoeSize: doc.ShoeSize, PNG: png})
	}
	return s.renderer.BuildSheet(labels)
}
