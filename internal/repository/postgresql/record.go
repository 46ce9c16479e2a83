package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) performance.RecordRepository {
	return &recordRepository{db: db}
}

// ListByOwner implements performance.RecordRepository. Bounds are
// inclusive. Failures surface as performance.ErrSourceUnavailable so
// callers can distinguish a broken source from an empty one.
func (r *recordRepository) ListByOwner(ctx context.Context, ownerID string, start, end time.Time) ([]performance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, date, meetings_held, meetings_attended, duration_raw,
			   closing_amount, percentage_achieved, created_at
		FROM daily_records
		WHERE owner_id = $1
		  AND date >= $2
		  AND date <= $3
	`

	rows, err := q.Query(ctx, query, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list daily records: %v", performance.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListAll implements performance.RecordRepository.
func (r *recordRepository) ListAll(ctx context.Context) ([]performance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, date, meetings_held, meetings_attended, duration_raw,
			   closing_amount, percentage_achieved, created_at
		FROM daily_records
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list daily records: %v", performance.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]performance.Record, error) {
	var records []performance.Record
	for rows.Next() {
		var rec performance.Record
		err := rows.Scan(
			&rec.ID, &rec.OwnerID, &rec.Date, &rec.MeetingsHeld, &rec.MeetingsAttended, &rec.DurationRaw,
			&rec.ClosingAmount, &rec.PercentageAchieved, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan daily record: %v", performance.ErrSourceUnavailable, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate daily records: %v", performance.ErrSourceUnavailable, err)
	}

	return records, nil
}
