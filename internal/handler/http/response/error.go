package response

import (
	"errors"
	"net/http"

	"github.com/satfield/sfa-backend-go/internal/domain/attendance"
	"github.com/satfield/sfa-backend-go/internal/domain/leaderboard"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrOwnerRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrPunchInClosed):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotPunchedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrPunchesReopenLater):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Performance domain errors
	case errors.Is(err, performance.ErrOwnerRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, performance.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, performance.ErrInvalidCount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, performance.ErrSourceUnavailable):
		ServiceUnavailable(w, "Record source unavailable, try again later")

	// Leaderboard domain errors
	case errors.Is(err, leaderboard.ErrInvalidLimit):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
