package performance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/cache"
	"github.com/satfield/sfa-backend-go/internal/pkg/durationparse"
	"github.com/satfield/sfa-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

type PerformanceServiceImpl struct {
	records performance.RecordRepository
	targets performance.TargetRepository
	results *cache.ResultCache
	loc     *time.Location
	// weekStartsOn anchors weekly windows (Monday in production).
	weekStartsOn time.Weekday
	now          func() time.Time
	logger       *slog.Logger
}

func NewPerformanceService(
	records performance.RecordRepository,
	targets performance.TargetRepository,
	results *cache.ResultCache,
	loc *time.Location,
	weekStartsOn time.Weekday,
	now func() time.Time,
	logger *slog.Logger,
) performance.PerformanceService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PerformanceServiceImpl{
		records:      records,
		targets:      targets,
		results:      results,
		loc:          loc,
		weekStartsOn: weekStartsOn,
		now:          now,
		logger:       logger,
	}
}

// ResolveTargets implements performance.PerformanceService. The most
// recently created config wins; an explicit owner match is preferred over
// an email-style identifier. A missing config is not an error: defaults
// apply, per field.
func (s *PerformanceServiceImpl) ResolveTargets(ctx context.Context, ownerID string) (performance.TargetConfig, error) {
	if ownerID == "" {
		return performance.TargetConfig{}, performance.ErrOwnerRequired
	}

	return cache.GetOrCompute(ctx, s.results, ownerID+":targets", func(ctx context.Context) (performance.TargetConfig, error) {
		cfg, err := s.targets.GetLatestByOwner(ctx, ownerID)
		if errors.Is(err, performance.ErrTargetNotFound) {
			cfg, err = s.targets.GetLatestByEmail(ctx, ownerID)
		}
		if err != nil {
			if errors.Is(err, performance.ErrTargetNotFound) {
				return withDefaults(performance.TargetConfig{OwnerID: ownerID}), nil
			}
			return performance.TargetConfig{}, fmt.Errorf("failed to resolve targets: %w", err)
		}
		return withDefaults(cfg), nil
	})
}

// withDefaults fills unset or invalid fields individually. A config is
// never rejected wholesale for one missing field.
func withDefaults(cfg performance.TargetConfig) performance.TargetConfig {
	if cfg.MeetingsTarget <= 0 {
		cfg.MeetingsTarget = performance.DefaultTargets.MeetingsTarget
	}
	if cfg.AttendedTarget <= 0 {
		cfg.AttendedTarget = performance.DefaultTargets.AttendedTarget
	}
	if cfg.DurationTargetSeconds <= 0 {
		cfg.DurationTargetSeconds = performance.DefaultTargets.DurationTargetSeconds
	}
	if cfg.ClosingAmountTarget <= 0 {
		cfg.ClosingAmountTarget = performance.DefaultTargets.ClosingAmountTarget
	}
	return cfg
}

// ComputeAchievement implements performance.PerformanceService.
func (s *PerformanceServiceImpl) ComputeAchievement(ctx context.Context, ownerID string, start, end time.Time) (performance.AchievementScore, error) {
	if ownerID == "" {
		return performance.AchievementScore{}, performance.ErrOwnerRequired
	}

	targets, err := s.ResolveTargets(ctx, ownerID)
	if err != nil {
		return performance.AchievementScore{}, err
	}

	window := timeutil.Window{Start: start, End: end}
	score, err := s.scoreWindow(ctx, ownerID, window, window.Label(), targets, 1)
	if err != nil {
		return performance.AchievementScore{}, err
	}
	return score, nil
}

// scoreWindow fetches and sums one window's records, then normalizes the
// four totals against the (scaled) targets. targetScale is 1 for weekly
// windows and 4 for monthly ones: monthly goals are four weekly goals.
func (s *PerformanceServiceImpl) scoreWindow(
	ctx context.Context,
	ownerID string,
	window timeutil.Window,
	label string,
	targets performance.TargetConfig,
	targetScale int,
) (performance.AchievementScore, error) {
	records, err := s.records.ListByOwner(ctx, ownerID, window.Start, window.End)
	if err != nil {
		return performance.AchievementScore{}, fmt.Errorf("failed to query records for %s: %w", label, err)
	}

	// Records arrive in no guaranteed order and are never pre-aggregated;
	// summation is commutative so ordering cannot change the score.
	score := performance.AchievementScore{OwnerID: ownerID, PeriodLabel: label}
	for _, rec := range records {
		score.TotalMeetingsHeld += rec.MeetingsHeld
		score.TotalMeetingsAttended += rec.MeetingsAttended
		score.TotalDurationSeconds += durationparse.Seconds(rec.DurationRaw)
		score.TotalClosingAmount += rec.ClosingAmount
	}

	score.ComponentPercentages = [4]float64{
		componentPercent(float64(score.TotalMeetingsHeld), float64(targets.MeetingsTarget*targetScale)),
		componentPercent(float64(score.TotalMeetingsAttended), float64(targets.AttendedTarget*targetScale)),
		componentPercent(float64(score.TotalDurationSeconds), float64(targets.DurationTargetSeconds*targetScale)),
		componentPercent(score.TotalClosingAmount, targets.ClosingAmountTarget*float64(targetScale)),
	}

	weighted := score.ComponentPercentages[0]*performance.WeightMeetings +
		score.ComponentPercentages[1]*performance.WeightAttended +
		score.ComponentPercentages[2]*performance.WeightDuration +
		score.ComponentPercentages[3]*performance.WeightClosing
	score.WeightedPercentage = clampPercent(weighted)

	return score, nil
}

// componentPercent normalizes one axis, capped at 100. A zero target is a
// 0% component, not a division error.
func componentPercent(achieved, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := achieved / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ComputeSeries implements performance.PerformanceService. Sub-window
// queries run concurrently and combine by index; a failed sub-window fails
// open to a zero entry instead of aborting the series.
func (s *PerformanceServiceImpl) ComputeSeries(ctx context.Context, ownerID string, kind performance.PeriodKind, count int) (performance.Series, error) {
	if ownerID == "" {
		return performance.Series{}, performance.ErrOwnerRequired
	}
	if count <= 0 {
		return performance.Series{}, performance.ErrInvalidCount
	}
	switch kind {
	case performance.PeriodWeekly, performance.PeriodQuarterly, performance.PeriodHalfYearly:
	default:
		return performance.Series{}, performance.ErrInvalidPeriod
	}

	key := fmt.Sprintf("%s:series:%s:%d", ownerID, kind, count)
	return cache.GetOrCompute(ctx, s.results, key, func(ctx context.Context) (performance.Series, error) {
		return s.computeSeries(ctx, ownerID, kind, count)
	})
}

func (s *PerformanceServiceImpl) computeSeries(ctx context.Context, ownerID string, kind performance.PeriodKind, count int) (performance.Series, error) {
	targets, err := s.ResolveTargets(ctx, ownerID)
	if err != nil {
		return performance.Series{}, err
	}

	nowLocal := s.now().In(s.loc)
	points := make([]performance.SeriesPoint, count)

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		idx := i
		var window timeutil.Window
		var label string
		scale := 1
		if kind == performance.PeriodWeekly {
			// Oldest first: the series reads chronologically.
			window = timeutil.WeekBounds(nowLocal.AddDate(0, 0, -7*(count-1-idx)), s.weekStartsOn)
			label = fmt.Sprintf("Week %d", idx+1)
		} else {
			window = timeutil.MonthBounds(nowLocal.AddDate(0, -(count - 1 - idx), 0))
			label = window.Start.Format("Jan")
			scale = 4
		}

		g.Go(func() error {
			score, err := s.scoreWindow(gCtx, ownerID, window, label, targets, scale)
			if err != nil {
				// Fail open: one bad sub-window becomes a zero entry.
				s.logger.Warn("series sub-window failed", "owner_id", ownerID, "label", label, "error", err)
				points[idx] = performance.SeriesPoint{Label: label}
				return nil
			}
			points[idx] = performance.SeriesPoint{Label: label, Percentage: score.WeightedPercentage}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return performance.Series{}, err
	}

	return performance.Series{OwnerID: ownerID, Kind: kind, Points: points}, nil
}

// GetSummary implements performance.PerformanceService. All-time highest
// and average of the per-record percentages attached by the submitting
// client.
func (s *PerformanceServiceImpl) GetSummary(ctx context.Context, ownerID string) (performance.Summary, error) {
	if ownerID == "" {
		return performance.Summary{}, performance.ErrOwnerRequired
	}

	return cache.GetOrCompute(ctx, s.results, ownerID+":summary", func(ctx context.Context) (performance.Summary, error) {
		records, err := s.records.ListByOwner(ctx, ownerID, time.Time{}, s.now().In(s.loc))
		if err != nil {
			return performance.Summary{}, fmt.Errorf("failed to query records: %w", err)
		}

		summary := performance.Summary{OwnerID: ownerID, ReportCount: len(records)}
		var total float64
		for _, rec := range records {
			if rec.PercentageAchieved > summary.HighestPercentage {
				summary.HighestPercentage = rec.PercentageAchieved
			}
			total += rec.PercentageAchieved
		}
		if summary.ReportCount > 0 {
			summary.AveragePercentage = total / float64(summary.ReportCount)
		}
		return summary, nil
	})
}
