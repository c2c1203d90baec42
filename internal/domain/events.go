package domain

import "time"

// DomainEvent is published after a state change commits.
type DomainEvent interface {
	EventType() string
	Subject() string
	OccurredAt() time.Time
}

// OrderSubmittedEvent is published when a production order is accepted.
type OrderSubmittedEvent struct {
	Order *Order    `json:"order"`
	At    time.Time `json:"at"`
}

func (e OrderSubmittedEvent) EventType() string     { return "production.order.submitted" }
func (e OrderSubmittedEvent) Subject() string       { return e.Order.OrderNumber }
func (e OrderSubmittedEvent) OccurredAt() time.Time { return e.At }

// BarcodesIssuedEvent is published when unit labels are generated for an order.
type BarcodesIssuedEvent struct {
	OrderNumber string    `json:"order_number"`
	Count       int       `json:"count"`
	At          time.Time `json:"at"`
}

func (e BarcodesIssuedEvent) EventType() string     { return "production.barcodes.issued" }
func (e BarcodesIssuedEvent) Subject() string       { return e.OrderNumber }
func (e BarcodesIssuedEvent) OccurredAt() time.Time { return e.At }

// StageRecordedEvent is published when a unit's stage transition commits.
type StageRecordedEvent struct {
	Record *StageRecord `json:"record"`
	At     time.Time    `json:"at"`
}

func (e StageRecordedEvent) EventType() string     { return "production.stage.recorded" }
func (e StageRecordedEvent) Subject() string       { return e.Record.BarcodeNumber }
func (e StageRecordedEvent) OccurredAt() time.Time { return e.At }
