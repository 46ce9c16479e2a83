package performance

import (
	"time"
)

// Record is one daily field report. Several may exist per owner per day;
// aggregation always sums across every record intersecting a window and
// never assumes pre-aggregated data. All numeric fields are non-negative;
// a missing field is stored as zero.
type Record struct {
	ID      string
	OwnerID string
	// Date identifies the report's day within the organizational calendar.
	Date time.Time
	// MeetingsHeld is the number of meetings (or calls) held.
	MeetingsHeld int
	// MeetingsAttended is the attended-meeting / positive-lead count.
	MeetingsAttended int
	// DurationRaw is the user-entered meeting duration ("1 hr 20 mins",
	// "01:20:00", plain seconds); parsed leniently at aggregation time.
	DurationRaw string
	// ClosingAmount is the revenue closed on this report.
	ClosingAmount float64
	// PercentageAchieved is the score the submitting client attached to
	// the report. The leaderboard trusts it as-is; the aggregator ignores
	// it and recomputes from raw metrics.
	PercentageAchieved float64
	CreatedAt          time.Time
}

// TargetConfig holds one owner's weekly numeric goals. Exactly one config
// is authoritative at query time: the most recently created match.
type TargetConfig struct {
	ID                    string
	OwnerID               string
	Email                 string
	MeetingsTarget        int
	AttendedTarget        int
	DurationTargetSeconds int
	ClosingAmountTarget   float64
	CreatedAt             time.Time
}

// DefaultTargets are the hard-coded fallback goals used when an owner has
// no stored config, or per-field when a stored config leaves a field unset.
var DefaultTargets = TargetConfig{
	MeetingsTarget:        30,
	AttendedTarget:        30,
	DurationTargetSeconds: 20 * 3600,
	ClosingAmountTarget:   50000,
}

// Weights of the four achievement components. The order and values encode
// business priority: revenue-adjacent metrics weigh more.
const (
	WeightMeetings = 0.25
	WeightAttended = 0.25
	WeightDuration = 0.20
	WeightClosing  = 0.30
)
