package domain

import (
	"testing"
	"time"
)

func TestEvaluateDelay(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		wantOnTime  bool
		wantMinutes float64
	}{
		{
			name:       "well before deadline",
			now:        deadline.Add(-30 * time.Minute),
			wantOnTime: true,
		},
		{
			name:       "exactly at deadline is on time",
			now:        deadline,
			wantOnTime: true,
		},
		{
			name:        "five minutes late",
			now:         deadline.Add(5 * time.Minute),
			wantMinutes: 5,
		},
		{
			name:        "fractional minutes preserved",
			now:         deadline.Add(90 * time.Second),
			wantMinutes: 1.5,
		},
		{
			name:        "one second late",
			now:         deadline.Add(time.Second),
			wantMinutes: 1.0 / 60.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateDelay(tt.now, deadline)
			if got.OnTime != tt.wantOnTime {
				t.Errorf("EvaluateDelay().OnTime = %v, want %v", got.OnTime, tt.wantOnTime)
			}
			if got.Minutes != tt.wantMinutes {
				t.Errorf("EvaluateDelay().Minutes = %v, want %v", got.Minutes, tt.wantMinutes)
			}
		})
	}
}

func TestDelayVerdictStatus(t *testing.T) {
	if got := (DelayVerdict{OnTime: true}).Status(); got != VerdictOnTime {
		t.Errorf("Status() = %q, want %q", got, VerdictOnTime)
	}
	if got := (DelayVerdict{Minutes: 2}).Status(); got != VerdictDelayed {
		t.Errorf("Status() = %q, want %q", got, VerdictDelayed)
	}
}
