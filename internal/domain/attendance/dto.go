package attendance

// PunchRequest is a punch-in or punch-out action for the current moment.
type PunchRequest struct {
	OwnerID string `json:"owner_id"`
}

func (r PunchRequest) Validate() error {
	if r.OwnerID == "" {
		return ErrOwnerRequired
	}
	return nil
}

// AttendanceResponse is the API projection of one day's record. Status is
// recomputed from the punches on every read.
type AttendanceResponse struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Date         string   `json:"date"`
	PunchInTime  *string  `json:"punch_in_time,omitempty"`
	PunchOutTime *string  `json:"punch_out_time,omitempty"`
	Status       Status   `json:"status"`
	WorkedHours  *float64 `json:"worked_hours,omitempty"`
}

// BlockReason says why both punch actions are disallowed.
type BlockReason string

const (
	BlockNone           BlockReason = ""
	BlockDeadlinePassed BlockReason = "deadline_passed"
	BlockAwaitingReopen BlockReason = "awaiting_reopen"
)

// GateResponse reports whether a punch action is currently allowed. It is
// advisory state recomputed from the wall clock on every call, so a UI can
// poll it at minute granularity.
type GateResponse struct {
	CanPunchIn  bool        `json:"can_punch_in"`
	CanPunchOut bool        `json:"can_punch_out"`
	BlockedBy   BlockReason `json:"blocked_by,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

// MonthlyStats counts day classifications for one owner and month.
type MonthlyStats struct {
	Present   int `json:"present"`
	HalfDay   int `json:"half_day"`
	OnLeave   int `json:"on_leave"`
	TotalDays int `json:"total_days"`
}

// HistoryResponse is a month of records plus the derived counts.
type HistoryResponse struct {
	Records []AttendanceResponse `json:"records"`
	Stats   MonthlyStats         `json:"stats"`
}
