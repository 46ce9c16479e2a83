package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/database"
)

type targetRepository struct {
	db *database.DB
}

func NewTargetRepository(db *database.DB) performance.TargetRepository {
	return &targetRepository{db: db}
}

// GetLatestByOwner implements performance.TargetRepository. When several
// configs exist for an owner, the most recently created one wins.
func (t *targetRepository) GetLatestByOwner(ctx context.Context, ownerID string) (performance.TargetConfig, error) {
	return t.getLatest(ctx, "owner_id", ownerID)
}

// GetLatestByEmail implements performance.TargetRepository.
func (t *targetRepository) GetLatestByEmail(ctx context.Context, email string) (performance.TargetConfig, error) {
	return t.getLatest(ctx, "email", email)
}

func (t *targetRepository) getLatest(ctx context.Context, column, value string) (performance.TargetConfig, error) {
	q := GetQuerier(ctx, t.db)

	query := fmt.Sprintf(`
		SELECT id, owner_id, email, meetings_target, attended_target,
			   duration_target_seconds, closing_amount_target, created_at
		FROM target_configs
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, column)

	var cfg performance.TargetConfig
	err := q.QueryRow(ctx, query, value).Scan(
		&cfg.ID, &cfg.OwnerID, &cfg.Email, &cfg.MeetingsTarget, &cfg.AttendedTarget,
		&cfg.DurationTargetSeconds, &cfg.ClosingAmountTarget, &cfg.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.TargetConfig{}, performance.ErrTargetNotFound
		}
		return performance.TargetConfig{}, fmt.Errorf("%w: failed to get target config: %v", performance.ErrSourceUnavailable, err)
	}

	return cfg, nil
}
