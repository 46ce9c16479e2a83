package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// PunchIn records the first punch of today, subject to the gate.
	PunchIn(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	// PunchOut completes today's record, subject to the gate.
	PunchOut(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	// Classify derives the status of a record from its punches. Pure; never
	// trusts the stored status column.
	Classify(record Attendance) Status

	// PunchGate evaluates which punch actions are allowed right now.
	PunchGate(ctx context.Context, ownerID string) (GateResponse, error)

	// GetHistory returns one month of records with derived status counts.
	GetHistory(ctx context.Context, ownerID string, month time.Time) (HistoryResponse, error)
}
