package domain

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateBarcode(t *testing.T) {
	tests := []struct {
		name        string
		orderNumber string
		shoeSize    string
		serial      int
		want        string
		wantErr     bool
	}{
		{
			name:        "order 123 size 10.5 serial 1",
			orderNumber: "123",
			shoeSize:    "10.5",
			serial:      1,
			want:        "0000000123105001",
		},
		{
			name:        "whole size pads to three digits",
			orderNumber: "42",
			shoeSize:    "8",
			serial:      12,
			want:        "0000000042080012",
		},
		{
			name:        "already padded order number",
			orderNumber: "0000000123",
			shoeSize:    "10.5",
			serial:      1,
			want:        "0000000123105001",
		},
		{
			name:        "max serial",
			orderNumber: "9999999999",
			shoeSize:    "13",
			serial:      999,
			want:        "9999999999130999",
		},
		{
			name:        "serial beyond three digits overflows",
			orderNumber: "123",
			shoeSize:    "8",
			serial:      1000,
			wantErr:     true,
		},
		{
			name:        "order number too long",
			orderNumber: "12345678901",
			shoeSize:    "8",
			serial:      1,
			wantErr:     true,
		},
		{
			name:        "non numeric order number",
			orderNumber: "12a",
			shoeSize:    "8",
			serial:      1,
			wantErr:     true,
		},
		{
			name:        "invalid shoe size",
			orderNumber: "123",
			shoeSize:    "big",
			serial:      1,
			wantErr:     true,
		},
		{
			name:        "zero serial",
			orderNumber: "123",
			shoeSize:    "8",
			serial:      0,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateBarcode(tt.orderNumber, tt.shoeSize, tt.serial)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("GenerateBarcode() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateBarcode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GenerateBarcode() = %q, want %q", got, tt.want)
			}
			if len(got) != BarcodeLength {
				t.Errorf("GenerateBarcode() length = %d, want %d", len(got), BarcodeLength)
			}
		})
	}
}

func TestGenerateBarcodeOverflowSentinel(t *testing.T) {
	// A four digit size segment makes the segments alone exceed the fixed
	// length.
	_, err := GenerateBarcode("9999999999", "99.9", 1)
	if !errors.Is(err, ErrBarcodeOverflow) {
		t.Errorf("GenerateBarcode() error = %v, want ErrBarcodeOverflow", err)
	}
}

func TestNormalizeOrderNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "short number padded", in: "123", want: "0000000123"},
		{name: "full width unchanged", in: "1234567890", want: "1234567890"},
		{name: "empty", in: "", wantErr: true},
		{name: "too long", in: "12345678901", wantErr: true},
		{name: "letters", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOrderNumber(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeOrderNumber(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeOrderNumber(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeOrderNumber(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewBarcode(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	b, err := NewBarcode("123", "10.5", 1, "aW1hZ2U=", now)
	if err != nil {
		t.Fatalf("NewBarcode() error = %v", err)
	}
	if b.BarcodeNumber != "0000000123105001" {
		t.Errorf("BarcodeNumber = %q, want %q", b.BarcodeNumber, "0000000123105001")
	}
	if b.OrderNumber != "0000000123" {
		t.Errorf("OrderNumber = %q, want normalized %q", b.OrderNumber, "0000000123")
	}
	if b.ShoeSize != "10.5" || b.SerialNumber != 1 {
		t.Errorf("identity fields = (%q, %d), want (%q, %d)", b.ShoeSize, b.SerialNumber, "10.5", 1)
	}
	if !b.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", b.CreatedAt, now)
	}
}
