// Package dto defines the HTTP request and response shapes.
package dto

import (
	"github.com/mes-platform/production-tracker/internal/domain"
)

// RegisterRequest creates an operator account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SizeQuantityRequest is one size bucket of an order submission.
type SizeQuantityRequest struct {
	Size     string `json:"size" binding:"required,shoesize"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// SubmitOrderRequest creates a production order.
type SubmitOrderRequest struct {
	OrderNumber     string                `json:"order_number" binding:"required,ordernumber"`
	ArticleNumber   string                `json:"article_number" binding:"required"`
	Color           string                `json:"color" binding:"required"`
	Gender          string                `json:"gender" binding:"required"`
	ShoeType        string                `json:"shoe_type" binding:"required"`
	OrderPairs      int                   `json:"order_pairs" binding:"required,gt=0"`
	OEFNumber       string                `json:"oef_number" binding:"required"`
	Customer        string                `json:"customer" binding:"required"`
	SizeType        string                `json:"size_type" binding:"required"`
	Style           string                `json:"style" binding:"required"`
	Fit             string                `json:"fit" binding:"required"`
	Season          string                `json:"season" binding:"required"`
	DeliveryDate    string                `json:"delivery_date" binding:"required"`
	SizesQuantities []SizeQuantityRequest `json:"sizes_quantities" binding:"required,min=1,dive"`
}

// ToParams converts the request into domain order parameters.
func (r SubmitOrderRequest) ToParams() domain.OrderParams {
	sizes := make([]domain.SizeQuantity, len(r.SizesQuantities))
	for i, sq := range r.SizesQuantities {
		sizes[i] = domain.SizeQuantity{Size: sq.Size, Quantity: sq.Quantity}
	}
	return domain.OrderParams{
		OrderNumber:   r.OrderNumber,
		ArticleNumber: r.ArticleNumber,
		Color:         r.Color,
		Gender:        r.Gender,
		ShoeType:      r.ShoeType,
		OrderPairs:    r.OrderPairs,
		OEFNumber:     r.OEFNumber,
		Customer:      r.Customer,
		SizeType:      r.SizeType,
		Style:         r.Style,
		Fit:           r.Fit,
		Season:        r.Season,
		DeliveryDate:  r.DeliveryDate,
		Sizes:         sizes,
	}
}

// AdvanceRequest records a unit entering a stage.
type AdvanceRequest struct {
	Stage string `json:"stage" binding:"required,stagename"`
}
