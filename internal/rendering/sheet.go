package rendering

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/mes-platform/production-tracker/internal/application"
)

// Label sheet layout: 3 columns by 6 rows per A4 page, dimensions in mm.
const (
	columns    = 3
	rows       = 6
	marginX    = 10.0
	marginY    = 12.0
	cellWidth  = 64.0
	cellHeight = 45.0
	imgWidth   = 56.0
	imgHeight  = 22.0
)

// Renderer implements the label rendering used by the barcode service.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// BuildSheet lays the labels out on paginated A4, three columns by six rows,
// each label showing the barcode image with its number and size beneath.
func (r *Renderer) BuildSheet(labels []application.Label) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 8)

	perPage := columns * rows
	for i, label := range labels {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		slot := i % perPage
		x := marginX + float64(slot%columns)*cellWidth
		y := marginY + float64(slot/columns)*cellHeight

		name := fmt.Sprintf("label-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(label.PNG))
		pdf.ImageOptions(name, x, y, imgWidth, imgHeight, false, opts, 0, "")

		pdf.Text(x, y+imgHeight+4, label.BarcodeNumber)
		pdf.Text(x, y+imgHeight+8, "Size "+label.ShoeSize)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing label sheet: %w", err)
	}
	return buf.Bytes(), nil
}
