package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StageRecord is the append-only evidence that a unit entered a stage. Its
// end time is the SLA deadline for the stage; the delay fields hold the
// verdict against the predecessor's end time for the stages that track one.
type StageRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BarcodeNumber string             `bson:"barcodeNumber" json:"barcode_number"`
	OrderNumber   string             `bson:"orderNumber" json:"order_number"`
	ShoeSize      string             `bson:"shoeSize" json:"shoe_size"`
	Stage         Stage              `bson:"stage" json:"stage"`
	RecordedBy    string             `bson:"recordedBy" json:"recorded_by"`
	StartTime     time.Time          `bson:"startTime" json:"start_time"`
	EndTime       time.Time          `bson:"endTime" json:"end_time"`
	DelayStatus   string             `bson:"delayStatus,omitempty" json:"delay_status,omitempty"`
	DelayMinutes  float64            `bson:"delayMinutes,omitempty" json:"delay_minutes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// NewStageRecord computes the timing for a unit entering a stage.
//
// Charge starts at the request time. Stage1 through Stage5 start at the
// request time and carry a delay verdict against the predecessor's end time.
// Stage6 starts a fixed buffer after Stage5's end time and carries no
// verdict. The end time is always start plus the stage SLA.
func NewStageRecord(b *Barcode, stage Stage, recordedBy string, predecessor *StageRecord, now time.Time) (*StageRecord, error) {
	rule, ok := RuleFor(stage)
	if !ok {
		return nil, NewValidationError("unknown stage %q", stage.String())
	}

	if stage != StageCharge {
		pred, _ := stage.Predecessor()
		if predecessor == nil || predecessor.Stage != pred || predecessor.BarcodeNumber != b.BarcodeNumber {
			return nil, &PredecessorMissingError{BarcodeNumber: b.BarcodeNumber, Stage: stage}
		}
	}

	start := now
	if rule.StartFromPredecessorEnd {
		start = predecessor.EndTime.Add(rule.StartOffset)
	}

	record := &StageRecord{
		BarcodeNumber: b.BarcodeNumber,
		OrderNumber:   b.OrderNumber,
		ShoeSize:      b.ShoeSize,
		Stage:         stage,
		RecordedBy:    recordedBy,
		StartTime:     start,
		EndTime:       start.Add(rule.SLA),
		CreatedAt:     now,
	}

	if rule.TracksDelay {
		verdict := EvaluateDelay(now, predecessor.EndTime)
		record.DelayStatus = verdict.Status()
		record.DelayMinutes = verdict.Minutes
	}

	return record, nil
}

// Verdict returns the stored delay status, or "none" for stages that do not
// track one.
func (r *StageRecord) Verdict() string {
	if r.DelayStatus == "" {
		return "none"
	}
	return r.DelayStatus
}
