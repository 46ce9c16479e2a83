package performance

import (
	"context"
	"time"
)

// RecordRepository queries daily reports from the external store. The
// contract is inclusive on both bounds, returns zero or more records with
// no ordering guarantee, and must be summed by the caller.
type RecordRepository interface {
	// ListByOwner returns the owner's records with date in [start, end].
	ListByOwner(ctx context.Context, ownerID string, start, end time.Time) ([]Record, error)

	// ListAll returns every record in the store across all owners; the
	// leaderboard aggregates them without a window.
	ListAll(ctx context.Context) ([]Record, error)
}

// TargetRepository resolves stored target configs.
type TargetRepository interface {
	// GetLatestByOwner returns the most recently created config matching
	// the employee identifier, or ErrTargetNotFound.
	GetLatestByOwner(ctx context.Context, ownerID string) (TargetConfig, error)

	// GetLatestByEmail is the fallback lookup for configs keyed by an
	// email-style identifier.
	GetLatestByEmail(ctx context.Context, email string) (TargetConfig, error)
}

// PerformanceService exposes the achievement computations.
type PerformanceService interface {
	// ComputeAchievement aggregates one owner's records over [start, end]
	// into a weighted score.
	ComputeAchievement(ctx context.Context, ownerID string, start, end time.Time) (AchievementScore, error)

	// ComputeSeries produces count chronological sub-period scores.
	ComputeSeries(ctx context.Context, ownerID string, kind PeriodKind, count int) (Series, error)

	// ResolveTargets returns the owner's applicable goals, falling back to
	// defaults per field. Never errors for a missing config.
	ResolveTargets(ctx context.Context, ownerID string) (TargetConfig, error)

	// GetSummary returns all-time highest and average percentages.
	GetSummary(ctx context.Context, ownerID string) (Summary, error)
}
