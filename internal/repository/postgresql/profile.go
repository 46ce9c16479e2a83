package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/satfield/sfa-backend-go/internal/domain/leaderboard"
	"github.com/satfield/sfa-backend-go/internal/pkg/database"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) leaderboard.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByOwnerID implements leaderboard.ProfileRepository. Profiles are
// synced from an external identity source with spotty fields, so every
// column is coalesced to empty rather than scanned as NULL.
func (p *profileRepository) GetByOwnerID(ctx context.Context, ownerID string) (leaderboard.Profile, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COALESCE(name, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
			   COALESCE(display_name, ''), COALESCE(email, ''),
			   COALESCE(avatar_url, ''), COALESCE(photo_url, ''), COALESCE(picture, '')
		FROM profiles
		WHERE owner_id = $1
		LIMIT 1
	`

	var profile leaderboard.Profile
	err := q.QueryRow(ctx, query, ownerID).Scan(
		&profile.Name, &profile.FirstName, &profile.LastName,
		&profile.DisplayName, &profile.Email,
		&profile.AvatarURL, &profile.PhotoURL, &profile.Picture,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaderboard.Profile{}, leaderboard.ErrProfileNotFound
		}
		return leaderboard.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
