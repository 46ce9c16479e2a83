package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/satfield/sfa-backend-go/internal/domain/leaderboard"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/cache"
	"golang.org/x/sync/errgroup"
)

type LeaderboardServiceImpl struct {
	records  performance.RecordRepository
	profiles leaderboard.ProfileRepository
	results  *cache.ResultCache
	logger   *slog.Logger
}

func NewLeaderboardService(
	records performance.RecordRepository,
	profiles leaderboard.ProfileRepository,
	results *cache.ResultCache,
	logger *slog.Logger,
) leaderboard.LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardServiceImpl{
		records:  records,
		profiles: profiles,
		results:  results,
		logger:   logger,
	}
}

// TopN implements leaderboard.LeaderboardService. Ranks owners by the
// all-time average of the percentages stored on their reports. The stored
// value is trusted as submitted; the ranking does not re-run the weighted
// aggregation.
func (s *LeaderboardServiceImpl) TopN(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		return nil, leaderboard.ErrInvalidLimit
	}

	key := fmt.Sprintf("leaderboard:top:%d", n)
	return cache.GetOrCompute(ctx, s.results, key, func(ctx context.Context) ([]leaderboard.Entry, error) {
		return s.rank(ctx, n)
	})
}

func (s *LeaderboardServiceImpl) rank(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	type accumulator struct {
		entry leaderboard.Entry
		total float64
	}
	byOwner := make(map[string]*accumulator)
	for _, rec := range records {
		acc, ok := byOwner[rec.OwnerID]
		if !ok {
			acc = &accumulator{entry: leaderboard.Entry{OwnerID: rec.OwnerID}}
			byOwner[rec.OwnerID] = acc
		}
		acc.total += rec.PercentageAchieved
		acc.entry.ReportCount++
		if rec.Date.After(acc.entry.LatestReportDate) {
			acc.entry.LatestReportDate = rec.Date
		}
	}

	entries := make([]leaderboard.Entry, 0, len(byOwner))
	for _, acc := range byOwner {
		acc.entry.PercentageAchieved = acc.total / float64(acc.entry.ReportCount)
		entries = append(entries, acc.entry)
	}

	// Ties go to whoever reported most recently.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PercentageAchieved != entries[j].PercentageAchieved {
			return entries[i].PercentageAchieved > entries[j].PercentageAchieved
		}
		return entries[i].LatestReportDate.After(entries[j].LatestReportDate)
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i := range entries {
		idx := i
		g.Go(func() error {
			profile, err := s.profiles.GetByOwnerID(gCtx, entries[idx].OwnerID)
			if err != nil {
				// Identity is cosmetic; a missing or unreachable profile
				// never drops a ranked owner.
				s.logger.Warn("profile lookup failed", "owner_id", entries[idx].OwnerID, "error", err)
			}
			entries[idx].Name = displayName(profile)
			entries[idx].AvatarURL = avatarURL(profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// displayName walks the identity fields in preference order.
func displayName(p leaderboard.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	if p.FirstName != "" || p.LastName != "" {
		if p.FirstName == "" {
			return p.LastName
		}
		if p.LastName == "" {
			return p.FirstName
		}
		return p.FirstName + " " + p.LastName
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	return "Unknown User"
}

func avatarURL(p leaderboard.Profile) string {
	if p.AvatarURL != "" {
		return p.AvatarURL
	}
	if p.PhotoURL != "" {
		return p.PhotoURL
	}
	return p.Picture
}
