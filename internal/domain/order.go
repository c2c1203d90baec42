package domain

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeQuantity is one size bucket of an order.
type SizeQuantity struct {
	Size     string `bson:"size" json:"size"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Order is a production order. Orders are immutable once submitted.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderNumber   string             `bson:"orderNumber" json:"order_number"`
	SerialNo      int                `bson:"serialNo" json:"serial_no"`
	ArticleNumber string             `bson:"articleNumber" json:"article_number"`
	Color         string             `bson:"color" json:"color"`
	Gender        string             `bson:"gender" json:"gender"`
	ShoeType      string             `bson:"shoeType" json:"shoe_type"`
	OrderPairs    int                `bson:"orderPairs" json:"order_pairs"`
	OEFNumber     string             `bson:"oefNumber" json:"oef_number"`
	Customer      string             `bson:"customer" json:"customer"`
	SizeType      string             `bson:"sizeType" json:"size_type"`
	Style         string             `bson:"style" json:"style"`
	Fit           string             `bson:"fit" json:"fit"`
	Season        string             `bson:"season" json:"season"`
	DeliveryDate  string             `bson:"deliveryDate" json:"delivery_date"`
	Sizes         []SizeQuantity     `bson:"sizesQuantities" json:"sizes_quantities"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// OrderParams carries the fields of an order submission.
type OrderParams struct {
	OrderNumber   string
	ArticleNumber string
	Color         string
	Gender        string
	ShoeType      string
	OrderPairs    int
	OEFNumber     string
	Customer      string
	SizeType      string
	Style         string
	Fit           string
	Season        string
	DeliveryDate  string
	Sizes         []SizeQuantity
}

// NewOrder validates a submission and builds the order. All descriptive
// fields are mandatory and the size quantities must sum to the declared pair
// count. serialNo is the 6 digit reference assigned by the service.
func NewOrder(p OrderParams, serialNo int, now time.Time) (*Order, error) {
	orderNumber, err := NormalizeOrderNumber(p.OrderNumber)
	if err != nil {
		return nil, err
	}

	required := map[string]string{
		"article_number": p.ArticleNumber,
		"color":          p.Color,
		"gender":         p.Gender,
		"shoe_type":      p.ShoeType,
		"oef_number":     p.OEFNumber,
		"customer":       p.Customer,
		"size_type":      p.SizeType,
		"style":          p.Style,
		"fit":            p.Fit,
		"season":         p.Season,
		"delivery_date":  p.DeliveryDate,
	}
	for field, value := range required {
		if value == "" {
			return nil, NewValidationError("%s is required", field)
		}
	}

	if p.OrderPairs <= 0 {
		return nil, NewValidationError("order_pairs must be positive, got %d", p.OrderPairs)
	}
	if len(p.Sizes) == 0 {
		return nil, NewValidationError("sizes_quantities must not be empty")
	}

	total := 0
	seen := make(map[string]struct{}, len(p.Sizes))
	for _, sq := range p.Sizes {
		if size, err := strconv.ParseFloat(sq.Size, 64); err != nil || size <= 0 {
			return nil, NewValidationError("invalid shoe size %q", sq.Size)
		}
		if sq.Quantity <= 0 {
			return nil, NewValidationError("quantity for size %s must be positive, got %d", sq.Size, sq.Quantity)
		}
		if _, dup := seen[sq.Size]; dup {
			return nil, NewValidationError("duplicate size %s", sq.Size)
		}
		seen[sq.Size] = struct{}{}
		total += sq.Quantity
	}
	if total != p.OrderPairs {
		return nil, NewValidationError("sizes_quantities sum to %d, expected order_pairs %d", total, p.OrderPairs)
	}

	return &Order{
		OrderNumber:   orderNumber,
		SerialNo:      serialNo,
		ArticleNumber: p.ArticleNumber,
		Color:         p.Color,
		Gender:        p.Gender,
		ShoeType:      p.ShoeType,
		OrderPairs:    p.OrderPairs,
		OEFNumber:     p.OEFNumber,
		Customer:      p.Customer,
		SizeType:      p.SizeType,
		Style:         p.Style,
		Fit:           p.Fit,
		Season:        p.Season,
		DeliveryDate:  p.DeliveryDate,
		Sizes:         p.Sizes,
		CreatedAt:     now,
	}, nil
}

// QuantityFor returns the ordered quantity for a size.
func (o *Order) QuantityFor(size string) (int, bool) {
	for _, sq := range o.Sizes {
		if sq.Size == size {
			return sq.Quantity, true
		}
	}
	return 0, false
}
