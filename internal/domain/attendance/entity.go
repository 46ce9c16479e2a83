package attendance

import (
	"time"
)

// Status is the classification of one calendar day. It is always derivable
// from the punch times plus the configured deadlines; the stored column is
// a denormalized display value, never the source of truth.
type Status string

const (
	StatusPresent Status = "Present"
	StatusHalfDay Status = "Half Day"
	StatusOnLeave Status = "On Leave"
)

// PunchState is the lifecycle position of a day's record.
type PunchState int

const (
	StateUnpunched PunchState = iota
	StatePunchedInOnly
	// StateComplete is terminal: once punch-out is recorded the day is
	// immutable.
	StateComplete
)

// Attendance is one owner's record for one calendar day in the fixed
// organizational timezone. PunchOut, when present, is same-day and at or
// after PunchIn; records violating that are tolerated on read (the invalid
// punch-out is ignored) but never written.
type Attendance struct {
	ID       string
	OwnerID  string
	Date     time.Time
	PunchIn  *time.Time
	PunchOut *time.Time
	// Status is the cached classification at last write.
	Status             Status
	TotalWorkedSeconds *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// State derives the lifecycle position from the punches.
func (a Attendance) State() PunchState {
	switch {
	case a.PunchIn == nil:
		return StateUnpunched
	case a.PunchOut == nil:
		return StatePunchedInOnly
	default:
		return StateComplete
	}
}
