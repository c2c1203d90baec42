package domain

import (
	"errors"
	"testing"
	"time"
)

func testBarcode(t *testing.T) *Barcode {
	t.Helper()
	b, err := NewBarcode("123", "10.5", 1, "", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewBarcode() error = %v", err)
	}
	return b
}

func TestNewStageRecordCharge(t *testing.T) {
	b := testBarcode(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	rec, err := NewStageRecord(b, StageCharge, "operator1", nil, now)
	if err != nil {
		t.Fatalf("NewStageRecord() error = %v", err)
	}
	if !rec.StartTime.Equal(now) {
		t.Errorf("StartTime = %v, want %v", rec.StartTime, now)
	}
	if want := now.Add(45 * time.Minute); !rec.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", rec.EndTime, want)
	}
	if rec.DelayStatus != "" {
		t.Errorf("DelayStatus = %q, want empty for charge", rec.DelayStatus)
	}
	if rec.Verdict() != "none" {
		t.Errorf("Verdict() = %q, want none", rec.Verdict())
	}
	if rec.OrderNumber != "0000000123" || rec.ShoeSize != "10.5" {
		t.Errorf("identity = (%q, %q), want (0000000123, 10.5)", rec.OrderNumber, rec.ShoeSize)
	}
	if rec.RecordedBy != "operator1" {
		t.Errorf("RecordedBy = %q, want operator1", rec.RecordedBy)
	}
}

func TestNewStageRecordDelayVerdicts(t *testing.T) {
	b := testBarcode(t)
	predEnd := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pred := &StageRecord{
		BarcodeNumber: b.BarcodeNumber,
		Stage:         StageCharge,
		StartTime:     predEnd.Add(-45 * time.Minute),
		EndTime:       predEnd,
	}

	tests := []struct {
		name        string
		now         time.Time
		wantStatus  string
		wantMinutes float64
	}{
		{
			name:       "arrives before predecessor deadline",
			now:        predEnd.Add(-10 * time.Minute),
			wantStatus: VerdictOnTime,
		},
		{
			name:       "arrives exactly at deadline",
			now:        predEnd,
			wantStatus: VerdictOnTime,
		},
		{
			name:        "arrives late",
			now:         predEnd.Add(7*time.Minute + 30*time.Second),
			wantStatus:  VerdictDelayed,
			wantMinutes: 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewStageRecord(b, Stage1, "operator1", pred, tt.now)
			if err != nil {
				t.Fatalf("NewStageRecord() error = %v", err)
			}
			if rec.DelayStatus != tt.wantStatus {
				t.Errorf("DelayStatus = %q, want %q", rec.DelayStatus, tt.wantStatus)
			}
			if rec.DelayMinutes != tt.wantMinutes {
				t.Errorf("DelayMinutes = %v, want %v", rec.DelayMinutes, tt.wantMinutes)
			}
			if !rec.StartTime.Equal(tt.now) {
				t.Errorf("StartTime = %v, want request time %v", rec.StartTime, tt.now)
			}
			if want := tt.now.Add(45 * time.Minute); !rec.EndTime.Equal(want) {
				t.Errorf("EndTime = %v, want %v", rec.EndTime, want)
			}
		})
	}
}

func TestNewStageRecordStage3ShortWindow(t *testing.T) {
	b := testBarcode(t)
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	pred := &StageRecord{BarcodeNumber: b.BarcodeNumber, Stage: Stage2, EndTime: now.Add(10 * time.Minute)}

	rec, err := NewStageRecord(b, Stage3, "operator1", pred, now)
	if err != nil {
		t.Fatalf("NewStageRecord() error = %v", err)
	}
	if want := now.Add(5 * time.Minute); !rec.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", rec.EndTime, want)
	}
}

func TestNewStageRecordStage6Buffer(t *testing.T) {
	b := testBarcode(t)
	stage5End := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	pred := &StageRecord{BarcodeNumber: b.BarcodeNumber, Stage: Stage5, EndTime: stage5End}

	// Request arrives well after stage5's deadline; stage6 still anchors to
	// the predecessor end plus the fixed buffer and records no verdict.
	now := stage5End.Add(2 * time.Hour)
	rec, err := NewStageRecord(b, Stage6, "operator1", pred, now)
	if err != nil {
		t.Fatalf("NewStageRecord() error = %v", err)
	}
	if want := stage5End.Add(15 * time.Minute); !rec.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", rec.StartTime, want)
	}
	if want := stage5End.Add(60 * time.Minute); !rec.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", rec.EndTime, want)
	}
	if rec.DelayStatus != "" {
		t.Errorf("DelayStatus = %q, want empty for stage6", rec.DelayStatus)
	}
}

func TestNewStageRecordPredecessorRequired(t *testing.T) {
	b := testBarcode(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		stage Stage
		pred  *StageRecord
	}{
		{name: "stage1 without charge", stage: Stage1, pred: nil},
		{
			name:  "stage mismatch",
			stage: Stage3,
			pred:  &StageRecord{BarcodeNumber: b.BarcodeNumber, Stage: Stage1, EndTime: now},
		},
		{
			name:  "predecessor for different unit",
			stage: Stage1,
			pred:  &StageRecord{BarcodeNumber: "0000000999080001", Stage: StageCharge, EndTime: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStageRecord(b, tt.stage, "operator1", tt.pred, now)
			var predErr *PredecessorMissingError
			if !errors.As(err, &predErr) {
				t.Fatalf("NewStageRecord() error = %v, want PredecessorMissingError", err)
			}
		})
	}
}
