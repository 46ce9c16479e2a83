package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// backing store is an external document collection reached through simple
// predicate queries; implementations map transport failures to
// performance.ErrSourceUnavailable-style wrapped errors.
type AttendanceRepository interface {
	// Create stores the first punch of a day.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// Update records the second punch. Completed records are immutable;
	// implementations only update rows that still lack a punch-out.
	Update(ctx context.Context, record Attendance) error

	// GetByOwnerAndDate returns the record for one owner and calendar day,
	// or ErrAttendanceNotFound.
	GetByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) (Attendance, error)

	// ListByOwner returns all records for an owner whose date lies in the
	// inclusive [start, end] range, in no guaranteed order.
	ListByOwner(ctx context.Context, ownerID string, start, end time.Time) ([]Attendance, error)
}

// Transactor runs fn with a transactional context so the repository calls
// made inside fn form one atomic unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
