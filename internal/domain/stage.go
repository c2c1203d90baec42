package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Stage identifies a step of the production pipeline. Charge is the entry
// stage, Stage6 is terminal.
type Stage int

const (
	StageCharge Stage = iota
	Stage1
	Stage2
	Stage3
	Stage4
	Stage5
	Stage6
)

// ParseStage parses the wire form of a stage ("charge", "stage1".."stage6").
func ParseStage(s string) (Stage, error) {
	switch s {
	case "charge":
		return StageCharge, nil
	case "stage1":
		return Stage1, nil
	case "stage2":
		return Stage2, nil
	case "stage3":
		return Stage3, nil
	case "stage4":
		return Stage4, nil
	case "stage5":
		return Stage5, nil
	case "stage6":
		return Stage6, nil
	}
	return 0, NewValidationError("unknown stage %q", s)
}

func (s Stage) String() string {
	if s == StageCharge {
		return "charge"
	}
	if s.IsValid() {
		return fmt.Sprintf("stage%d", int(s))
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// IsValid reports whether the stage is part of the pipeline.
func (s Stage) IsValid() bool {
	return s >= StageCharge && s <= Stage6
}

// IsTerminal reports whether the stage is the last pipeline step.
func (s Stage) IsTerminal() bool {
	return s == Stage6
}

// Predecessor returns the stage that must be completed before this one.
// Charge has no predecessor.
func (s Stage) Predecessor() (Stage, bool) {
	if s <= StageCharge || !s.IsValid() {
		return 0, false
	}
	return s - 1, true
}

// MarshalJSON renders stages in their wire form.
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the wire form of a stage.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StageRule describes the timing behavior of one pipeline stage.
type StageRule struct {
	// SLA is the allotted processing window; a record's end time is its
	// start time plus the SLA.
	SLA time.Duration

	// StartFromPredecessorEnd makes the record start at the predecessor's
	// end time plus StartOffset instead of the request time.
	StartFromPredecessorEnd bool
	StartOffset             time.Duration

	// TracksDelay enables the delay verdict against the predecessor's end
	// time.
	TracksDelay bool
}

// The stage table drives all transition timing. Stage3 is the short quality
// gate; Stage6 starts on a fixed 15 minute buffer after Stage5 completes and
// carries no verdict.
var stageRules = map[Stage]StageRule{
	StageCharge: {SLA: 45 * time.Minute},
	Stage1:      {SLA: 45 * time.Minute, TracksDelay: true},
	Stage2:      {SLA: 45 * time.Minute, TracksDelay: true},
	Stage3:      {SLA: 5 * time.Minute, TracksDelay: true},
	Stage4:      {SLA: 45 * time.Minute, TracksDelay: true},
	Stage5:      {SLA: 45 * time.Minute, TracksDelay: true},
	Stage6:      {SLA: 45 * time.Minute, StartFromPredecessorEnd: true, StartOffset: 15 * time.Minute},
}

// RuleFor returns the timing rule for a stage.
func RuleFor(s Stage) (StageRule, bool) {
	rule, ok := stageRules[s]
	return rule, ok
}

// AllStages returns the pipeline stages in order.
func AllStages() []Stage {
	return []Stage{StageCharge, Stage1, Stage2, Stage3, Stage4, Stage5, Stage6}
}
