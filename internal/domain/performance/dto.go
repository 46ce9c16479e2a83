package performance

// AchievementScore is the weighted blend of the four component
// percentages for one owner and period. Derived, never persisted by the
// engine; callers may store it.
type AchievementScore struct {
	OwnerID     string `json:"owner_id"`
	PeriodLabel string `json:"period_label"`
	// Totals summed over every record in the window.
	TotalMeetingsHeld     int     `json:"total_meetings_held"`
	TotalMeetingsAttended int     `json:"total_meetings_attended"`
	TotalDurationSeconds  int     `json:"total_duration_seconds"`
	TotalClosingAmount    float64 `json:"total_closing_amount"`
	// Component percentages in fixed axis order: meetings, attended,
	// duration, closing. Each is individually capped at 100.
	ComponentPercentages [4]float64 `json:"component_percentages"`
	// WeightedPercentage blends the components 25/25/20/30, clamped to
	// [0,100].
	WeightedPercentage float64 `json:"weighted_percentage"`
}

// PeriodKind selects the sub-window size and count of a series.
type PeriodKind string

const (
	PeriodWeekly     PeriodKind = "weekly"
	PeriodQuarterly  PeriodKind = "quarterly"
	PeriodHalfYearly PeriodKind = "half_yearly"
)

// SeriesPoint is one labeled entry of a multi-period series.
type SeriesPoint struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

// Series is a chronological run of achievement percentages. A sub-window
// whose query failed contributes a zero entry rather than aborting the
// series.
type Series struct {
	OwnerID string        `json:"owner_id"`
	Kind    PeriodKind    `json:"kind"`
	Points  []SeriesPoint `json:"points"`
}

// TargetsResponse is the API projection of a resolved TargetConfig.
type TargetsResponse struct {
	OwnerID               string  `json:"owner_id"`
	MeetingsTarget        int     `json:"meetings_target"`
	AttendedTarget        int     `json:"attended_target"`
	DurationTargetSeconds int     `json:"duration_target_seconds"`
	ClosingAmountTarget   float64 `json:"closing_amount_target"`
}

// Summary carries the all-time aggregates shown on the profile screen.
type Summary struct {
	OwnerID           string  `json:"owner_id"`
	HighestPercentage float64 `json:"highest_percentage"`
	AveragePercentage float64 `json:"average_percentage"`
	ReportCount       int     `json:"report_count"`
}
