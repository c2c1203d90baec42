// Package rendering renders unit barcodes and printable label sheets.
package rendering

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Barcode image dimensions in pixels.
const (
	imageWidth  = 400
	imageHeight = 120
)

// EncodePNG renders the barcode number as a Code128 PNG.
func (r *Renderer) EncodePNG(barcodeNumber string) ([]byte, error) {
	code, err := code128.Encode(barcodeNumber)
	if err != nil {
		return nil, fmt.Errorf("encoding code128: %w", err)
	}

	scaled, err := barcode.Scale(code, imageWidth, imageHeight)
	if err != nil {
		return nil, fmt.Errorf("scaling barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
