package attendance

import "errors"

// Attendance domain errors
var (
	// Punch gate errors
	ErrPunchInClosed      = errors.New("punch-in is closed for today")
	ErrAlreadyPunchedIn   = errors.New("you have already punched in today")
	ErrNotPunchedIn       = errors.New("you have not punched in yet")
	ErrAlreadyPunchedOut  = errors.New("you have already punched out today")
	ErrPunchesReopenLater = errors.New("punching re-opens tomorrow morning")

	// General errors
	ErrOwnerRequired      = errors.New("owner id is required")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
