package domain

import (
	"errors"
	"testing"
	"time"
)

func validOrderParams() OrderParams {
	return OrderParams{
		OrderNumber:   "123",
		ArticleNumber: "ART-9",
		Color:         "black",
		Gender:        "men",
		ShoeType:      "derby",
		OrderPairs:    30,
		OEFNumber:     "OEF-1",
		Customer:      "Acme Footwear",
		SizeType:      "UK",
		Style:         "classic",
		Fit:           "regular",
		Season:        "SS26",
		DeliveryDate:  "2026-06-15",
		Sizes: []SizeQuantity{
			{Size: "8", Quantity: 10},
			{Size: "9", Quantity: 15},
			{Size: "10.5", Quantity: 5},
		},
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	order, err := NewOrder(validOrderParams(), 482913, now)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if order.OrderNumber != "0000000123" {
		t.Errorf("OrderNumber = %q, want normalized %q", order.OrderNumber, "0000000123")
	}
	if order.SerialNo != 482913 {
		t.Errorf("SerialNo = %d, want 482913", order.SerialNo)
	}
	if qty, ok := order.QuantityFor("10.5"); !ok || qty != 5 {
		t.Errorf("QuantityFor(10.5) = %d, %v, want 5", qty, ok)
	}
	if _, ok := order.QuantityFor("12"); ok {
		t.Error("QuantityFor(12) should be absent")
	}
}

func TestNewOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderParams)
	}{
		{name: "missing article number", mutate: func(p *OrderParams) { p.ArticleNumber = "" }},
		{name: "missing color", mutate: func(p *OrderParams) { p.Color = "" }},
		{name: "missing customer", mutate: func(p *OrderParams) { p.Customer = "" }},
		{name: "missing delivery date", mutate: func(p *OrderParams) { p.DeliveryDate = "" }},
		{name: "zero pairs", mutate: func(p *OrderParams) { p.OrderPairs = 0 }},
		{name: "no sizes", mutate: func(p *OrderParams) { p.Sizes = nil }},
		{
			name:   "quantities do not sum to pairs",
			mutate: func(p *OrderParams) { p.Sizes[0].Quantity = 11 },
		},
		{
			name:   "negative quantity",
			mutate: func(p *OrderParams) { p.Sizes[0].Quantity = -1 },
		},
		{
			name:   "invalid size",
			mutate: func(p *OrderParams) { p.Sizes[0].Size = "big" },
		},
		{
			name: "duplicate size",
			mutate: func(p *OrderParams) {
				p.Sizes = []SizeQuantity{{Size: "8", Quantity: 15}, {Size: "8", Quantity: 15}}
			},
		},
		{name: "bad order number", mutate: func(p *OrderParams) { p.OrderNumber = "12x" }},
	}

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validOrderParams()
			tt.mutate(&params)

			_, err := NewOrder(params, 482913, now)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("NewOrder() error = %v, want ValidationError", err)
			}
		})
	}
}
