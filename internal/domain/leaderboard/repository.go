package leaderboard

import "context"

// ProfileRepository resolves display identity for ranked owners. A missing
// profile is reported with ErrProfileNotFound and degrades to the
// placeholder identity; it never aborts a ranking.
type ProfileRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (Profile, error)
}

// LeaderboardService ranks owners by average achievement.
type LeaderboardService interface {
	// TopN returns at most n entries, ranked by descending average
	// percentage with ties broken by the most recent contributing report.
	TopN(ctx context.Context, n int) ([]Entry, error)
}
