package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/satfield/sfa-backend-go/internal/domain/attendance"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, owner_id, date, punch_in, punch_out, status, total_worked_seconds
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.OwnerID,
		newAttendance.Date,
		newAttendance.PunchIn,
		newAttendance.PunchOut,
		newAttendance.Status,
		newAttendance.TotalWorkedSeconds,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("%w: failed to create attendance: %v", performance.ErrSourceUnavailable, err)
	}

	return newAttendance, nil
}

// Update implements attendance.AttendanceRepository. The punch_out guard
// keeps completed records immutable even under concurrent punch-outs.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_out = $2,
			status = $3,
			total_worked_seconds = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND punch_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.PunchOut,
		record.Status,
		record.TotalWorkedSeconds,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update attendance: %v", performance.ErrSourceUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByOwnerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, owner_id, date, punch_in, punch_out, status, total_worked_seconds,
			   created_at, updated_at
		FROM attendances
		WHERE owner_id = $1
		  AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, ownerID, date).Scan(
		&att.ID, &att.OwnerID, &att.Date, &att.PunchIn, &att.PunchOut, &att.Status, &att.TotalWorkedSeconds,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("%w: failed to get attendance by owner and date: %v", performance.ErrSourceUnavailable, err)
	}

	return att, nil
}

// ListByOwner implements attendance.AttendanceRepository. Bounds are
// inclusive.
func (a *attendanceRepository) ListByOwner(ctx context.Context, ownerID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, owner_id, date, punch_in, punch_out, status, total_worked_seconds,
			   created_at, updated_at
		FROM attendances
		WHERE owner_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list attendances: %v", performance.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.OwnerID, &att.Date, &att.PunchIn, &att.PunchOut, &att.Status, &att.TotalWorkedSeconds,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan attendance: %v", performance.ErrSourceUnavailable, err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate attendances: %v", performance.ErrSourceUnavailable, err)
	}

	return records, nil
}
