package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mes-platform/production-tracker/internal/domain"
)

func barcodeServiceAt(orders *mockOrderRepository, barcodes *mockBarcodeRepository, renderer LabelRenderer, at time.Time) *BarcodeService {
	svc := NewBarcodeService(orders, barcodes, renderer, nil, testLogger())
	svc.now = func() time.Time { return at }
	return svc
}

func TestGenerateLabels(t *testing.T) {
	orders := newMockOrderRepository()
	barcodes := newMockBarcodeRepository()
	seedOrder(t, orders, "123", []domain.SizeQuantity{
		{Size: "8", Quantity: 2},
		{Size: "10.5", Quantity: 1},
	})

	svc := barcodeServiceAt(orders, barcodes, &mockRenderer{}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	sheet, count, err := svc.GenerateLabels(context.Background(), "123")
	if err != nil {
		t.Fatalf("GenerateLabels() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if string(sheet) != "sheet:3" {
		t.Errorf("sheet = %q, want sheet:3", sheet)
	}

	// One identity per (size, serial) pair.
	for _, want := range []string{"0000000123080001", "0000000123080002", "0000000123105001"} {
		if _, ok := barcodes.barcodes[want]; !ok {
			t.Errorf("missing issued barcode %s", want)
		}
	}
}

func TestGenerateLabelsIdempotent(t *testing.T) {
	orders := newMockOrderRepository()
	barcodes := newMockBarcodeRepository()
	seedOrder(t, orders, "123", []domain.SizeQuantity{{Size: "8", Quantity: 2}})

	svc := barcodeServiceAt(orders, barcodes, &mockRenderer{}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if _, _, err := svc.GenerateLabels(context.Background(), "123"); err != nil {
		t.Fatalf("first GenerateLabels() error = %v", err)
	}

	_, count, err := svc.GenerateLabels(context.Background(), "123")
	if err != nil {
		t.Fatalf("second GenerateLabels() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 existing identities", count)
	}
	if len(barcodes.barcodes) != 2 {
		t.Errorf("stored %d barcodes, want 2 (no duplicates)", len(barcodes.barcodes))
	}
}

func TestGenerateLabelsUnknownOrder(t *testing.T) {
	svc := barcodeServiceAt(newMockOrderRepository(), newMockBarcodeRepository(), &mockRenderer{}, time.Now())

	_, _, err := svc.GenerateLabels(context.Background(), "999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GenerateLabels() error = %v, want ErrNotFound", err)
	}
}

func TestGenerateLabelsRendererFailure(t *testing.T) {
	orders := newMockOrderRepository()
	seedOrder(t, orders, "123", []domain.SizeQuantity{{Size: "8", Quantity: 1}})

	renderFail := errors.New("render failed")
	svc := barcodeServiceAt(orders, newMockBarcodeRepository(), &mockRenderer{encodeErr: renderFail}, time.Now())

	_, _, err := svc.GenerateLabels(context.Background(), "123")
	if !errors.Is(err, renderFail) {
		t.Fatalf("GenerateLabels() error = %v, want renderer failure", err)
	}
}

func TestListBarcodes(t *testing.T) {
	orders := newMockOrderRepository()
	barcodes := newMockBarcodeRepository()
	seedOrder(t, orders, "123", []domain.SizeQuantity{{Size: "8", Quantity: 2}})

	svc := barcodeServiceAt(orders, barcodes, &mockRenderer{}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if _, _, err := svc.GenerateLabels(context.Background(), "123"); err != nil {
		t.Fatalf("GenerateLabels() error = %v", err)
	}

	docs, err := svc.ListBarcodes(context.Background(), "123")
	if err != nil {
		t.Fatalf("ListBarcodes() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("ListBarcodes() = %d docs, want 2", len(docs))
	}

	if _, err := svc.ListBarcodes(context.Background(), "999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListBarcodes(999) error = %v, want ErrNotFound", err)
	}
}
