package domain

import "time"

// Delay verdict statuses as stored on stage records.
const (
	VerdictOnTime  = "on_time"
	VerdictDelayed = "delayed"
)

// DelayVerdict is the outcome of comparing an arrival time to a deadline.
type DelayVerdict struct {
	OnTime  bool
	Minutes float64
}

// EvaluateDelay compares now to the deadline. Arriving exactly at the
// deadline is on time; a late arrival carries the overrun in fractional
// minutes.
func EvaluateDelay(now, deadline time.Time) DelayVerdict {
	if !now.After(deadline) {
		return DelayVerdict{OnTime: true}
	}
	return DelayVerdict{
		Minutes: float64(now.Sub(deadline)) / float64(time.Minute),
	}
}

// Status returns the stored form of the verdict.
func (v DelayVerdict) Status() string {
	if v.OnTime {
		return VerdictOnTime
	}
	return VerdictDelayed
}
