package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BarcodeLength is the fixed length of a unit identity.
const BarcodeLength = 16

// GenerateBarcode mints the 16 digit identity of a single pair: the order
// number left-padded to 10 digits, the shoe size times ten padded to 3
// digits (10.5 becomes "105"), and the serial padded to 3 digits. The result
// is right-padded with zeros to the fixed length. If the three segments
// alone already exceed the fixed length the configuration is unusable and
// ErrBarcodeOverflow is returned.
func GenerateBarcode(orderNumber, shoeSize string, serial int) (string, error) {
	orderSeg, err := NormalizeOrderNumber(orderNumber)
	if err != nil {
		return "", err
	}

	size, err := strconv.ParseFloat(shoeSize, 64)
	if err != nil || size <= 0 {
		return "", NewValidationError("invalid shoe size %q", shoeSize)
	}
	if serial <= 0 {
		return "", NewValidationError("invalid serial number %d", serial)
	}

	sizeSeg := pad3(int(math.Round(size * 10)))
	serialSeg := pad3(serial)

	raw := orderSeg + sizeSeg + serialSeg
	if len(raw) > BarcodeLength {
		return "", ErrBarcodeOverflow
	}
	if len(raw) < BarcodeLength {
		raw += strings.Repeat("0", BarcodeLength-len(raw))
	}
	return raw, nil
}

// NormalizeOrderNumber canonicalizes an order number to 10 digits,
// left-padded with zeros.
func NormalizeOrderNumber(orderNumber string) (string, error) {
	if orderNumber == "" || len(orderNumber) > 10 {
		return "", NewValidationError("order number must be 1 to 10 digits, got %q", orderNumber)
	}
	for _, r := range orderNumber {
		if r < '0' || r > '9' {
			return "", NewValidationError("order number must be digits only, got %q", orderNumber)
		}
	}
	return strings.Repeat("0", 10-len(orderNumber)) + orderNumber, nil
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// Barcode is the persisted identity document of one manufactured pair.
type Barcode struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BarcodeNumber string             `bson:"barcodeNumber" json:"barcode_number"`
	OrderNumber   string             `bson:"orderNumber" json:"order_number"`
	ShoeSize      string             `bson:"shoeSize" json:"shoe_size"`
	SerialNumber  int                `bson:"serialNumber" json:"serial_number"`
	Image         string             `bson:"image" json:"image,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// NewBarcode mints the identity and builds the persisted document. image is
// the base64-encoded Code128 PNG.
func NewBarcode(orderNumber, shoeSize string, serial int, image string, now time.Time) (*Barcode, error) {
	number, err := GenerateBarcode(orderNumber, shoeSize, serial)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	return &Barcode{
		BarcodeNumber: number,
		OrderNumber:   normalized,
		ShoeSize:      shoeSize,
		SerialNumber:  serial,
		Image:         image,
		CreatedAt:     now,
	}, nil
}
