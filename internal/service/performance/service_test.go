package performance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = mustLoadLocation("Asia/Kolkata")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Wednesday, 2025-06-11 12:00 IST. The surrounding Monday-start week is
// Jun 9 through Jun 15.
func testNow() time.Time {
	return time.Date(2025, 6, 11, 12, 0, 0, 0, testLoc)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, testLoc)
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []performance.Record
	calls   int
	// listErr, when set, decides per-window whether ListByOwner fails.
	listErr func(start, end time.Time) error
}

func (f *fakeRecordRepo) ListByOwner(_ context.Context, ownerID string, start, end time.Time) ([]performance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		if err := f.listErr(start, end); err != nil {
			return nil, err
		}
	}
	var out []performance.Record
	for _, rec := range f.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecordRepo) ListAll(_ context.Context) ([]performance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]performance.Record(nil), f.records...), nil
}

type fakeTargetRepo struct {
	mu         sync.Mutex
	byOwner    map[string]performance.TargetConfig
	byEmail    map[string]performance.TargetConfig
	ownerCalls int
}

func (f *fakeTargetRepo) GetLatestByOwner(_ context.Context, ownerID string) (performance.TargetConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownerCalls++
	if cfg, ok := f.byOwner[ownerID]; ok {
		return cfg, nil
	}
	return performance.TargetConfig{}, performance.ErrTargetNotFound
}

func (f *fakeTargetRepo) GetLatestByEmail(_ context.Context, email string) (performance.TargetConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cfg, ok := f.byEmail[email]; ok {
		return cfg, nil
	}
	return performance.TargetConfig{}, performance.ErrTargetNotFound
}

func newTestService(records *fakeRecordRepo, targets *fakeTargetRepo) performance.PerformanceService {
	return NewPerformanceService(
		records,
		targets,
		cache.New(5*time.Minute, testNow),
		testLoc,
		time.Monday,
		testNow,
		nil,
	)
}

func TestResolveTargets_DefaultsWhenNoConfig(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeTargetRepo{})

	cfg, err := svc.ResolveTargets(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MeetingsTarget)
	assert.Equal(t, 30, cfg.AttendedTarget)
	assert.Equal(t, 20*3600, cfg.DurationTargetSeconds)
	assert.Equal(t, 50000.0, cfg.ClosingAmountTarget)
}

func TestResolveTargets_OwnerConfigWins(t *testing.T) {
	targets := &fakeTargetRepo{
		byOwner: map[string]performance.TargetConfig{
			"emp-1": {OwnerID: "emp-1", MeetingsTarget: 10, AttendedTarget: 8, DurationTargetSeconds: 3600, ClosingAmountTarget: 1000},
		},
		byEmail: map[string]performance.TargetConfig{
			"emp-1": {MeetingsTarget: 99},
		},
	}
	svc := newTestService(&fakeRecordRepo{}, targets)

	cfg, err := svc.ResolveTargets(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MeetingsTarget)
	assert.Equal(t, 8, cfg.AttendedTarget)
}

func TestResolveTargets_EmailFallback(t *testing.T) {
	targets := &fakeTargetRepo{
		byEmail: map[string]performance.TargetConfig{
			"rep@example.com": {Email: "rep@example.com", MeetingsTarget: 12},
		},
	}
	svc := newTestService(&fakeRecordRepo{}, targets)

	cfg, err := svc.ResolveTargets(context.Background(), "rep@example.com")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MeetingsTarget)
	// Unset fields fall back individually.
	assert.Equal(t, 30, cfg.AttendedTarget)
	assert.Equal(t, 20*3600, cfg.DurationTargetSeconds)
}

func TestResolveTargets_Cached(t *testing.T) {
	targets := &fakeTargetRepo{}
	svc := newTestService(&fakeRecordRepo{}, targets)

	_, err := svc.ResolveTargets(context.Background(), "emp-1")
	require.NoError(t, err)
	_, err = svc.ResolveTargets(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, targets.ownerCalls)
}

func TestComputeAchievement_ExactTargetsScoreHundred(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 10), MeetingsHeld: 30, MeetingsAttended: 30, DurationRaw: "20:00:00", ClosingAmount: 50000},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	score, err := svc.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, [4]float64{100, 100, 100, 100}, score.ComponentPercentages)
	assert.Equal(t, 100.0, score.WeightedPercentage)
}

func TestComputeAchievement_SumsAcrossRecordsAndFormats(t *testing.T) {
	// 1h20m colon + "1 hr 40 mins" free text + 1800 plain seconds = 3.5h.
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 9), MeetingsHeld: 5, MeetingsAttended: 3, DurationRaw: "01:20:00", ClosingAmount: 10000},
		{OwnerID: "emp-1", Date: day(2025, 6, 10), MeetingsHeld: 7, MeetingsAttended: 6, DurationRaw: "1 hr 40 mins", ClosingAmount: 5000},
		{OwnerID: "emp-1", Date: day(2025, 6, 11), MeetingsHeld: 3, MeetingsAttended: 3, DurationRaw: "1800", ClosingAmount: 0},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	score, err := svc.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, 15, score.TotalMeetingsHeld)
	assert.Equal(t, 12, score.TotalMeetingsAttended)
	assert.Equal(t, 12600, score.TotalDurationSeconds)
	assert.Equal(t, 15000.0, score.TotalClosingAmount)

	assert.InDelta(t, 50.0, score.ComponentPercentages[0], 0.001)
	assert.InDelta(t, 40.0, score.ComponentPercentages[1], 0.001)
	assert.InDelta(t, 17.5, score.ComponentPercentages[2], 0.001)
	assert.InDelta(t, 30.0, score.ComponentPercentages[3], 0.001)
	// 50*.25 + 40*.25 + 17.5*.20 + 30*.30 = 35.0
	assert.InDelta(t, 35.0, score.WeightedPercentage, 0.001)
}

// Records carry no ordering guarantee; the score must not depend on one.
func TestComputeAchievement_OrderInvariant(t *testing.T) {
	records := []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 9), MeetingsHeld: 5, MeetingsAttended: 3, DurationRaw: "01:20:00", ClosingAmount: 10000},
		{OwnerID: "emp-1", Date: day(2025, 6, 10), MeetingsHeld: 7, MeetingsAttended: 6, DurationRaw: "1 hr 40 mins", ClosingAmount: 5000},
		{OwnerID: "emp-1", Date: day(2025, 6, 11), MeetingsHeld: 3, MeetingsAttended: 3, DurationRaw: "1800", ClosingAmount: 0},
	}
	reversed := make([]performance.Record, len(records))
	for i, rec := range records {
		reversed[len(records)-1-i] = rec
	}

	forward := newTestService(&fakeRecordRepo{records: records}, &fakeTargetRepo{})
	backward := newTestService(&fakeRecordRepo{records: reversed}, &fakeTargetRepo{})

	a, err := forward.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	b, err := backward.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeAchievement_UnparseableDurationCountsZero(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 10), MeetingsHeld: 30, DurationRaw: "about an hour"},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	score, err := svc.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, score.TotalDurationSeconds)
	assert.Equal(t, 100.0, score.ComponentPercentages[0])
}

func TestComputeAchievement_ComponentsCapAtHundred(t *testing.T) {
	// Triple the meeting target; the component caps instead of inflating
	// the blend past the other axes.
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 10), MeetingsHeld: 90},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	score, err := svc.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, 100.0, score.ComponentPercentages[0])
	assert.InDelta(t, 25.0, score.WeightedPercentage, 0.001)
}

func TestComputeAchievement_EmptyWindowScoresZero(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeTargetRepo{})

	score, err := svc.ComputeAchievement(context.Background(), "emp-1", day(2025, 6, 9), day(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.WeightedPercentage)
}

func TestComponentPercent_ZeroTargetIsZeroNotError(t *testing.T) {
	assert.Equal(t, 0.0, componentPercent(42, 0))
	assert.Equal(t, 0.0, componentPercent(0, 0))
}

func TestComputeSeries_WeeklyChronologicalLabels(t *testing.T) {
	// One perfect week (the current one) among five.
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 6, 11), MeetingsHeld: 30, MeetingsAttended: 30, DurationRaw: "20:00:00", ClosingAmount: 50000},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	series, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodWeekly, 5)
	require.NoError(t, err)
	require.Len(t, series.Points, 5)
	for i, point := range series.Points {
		assert.Equal(t, []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}[i], point.Label)
	}
	assert.Equal(t, 0.0, series.Points[0].Percentage)
	assert.Equal(t, 100.0, series.Points[4].Percentage)
}

func TestComputeSeries_QuarterlyScalesTargetsMonthly(t *testing.T) {
	// Monthly goals are four weekly goals: 120 meetings. 60 held in May is
	// a 50% component, weighted to 12.5.
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 5, 20), MeetingsHeld: 60},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	series, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodQuarterly, 3)
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "Apr", series.Points[0].Label)
	assert.Equal(t, "May", series.Points[1].Label)
	assert.Equal(t, "Jun", series.Points[2].Label)
	assert.InDelta(t, 12.5, series.Points[1].Percentage, 0.001)
	assert.Equal(t, 0.0, series.Points[2].Percentage)
}

func TestComputeSeries_HalfYearlySixMonths(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeTargetRepo{})

	series, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodHalfYearly, 6)
	require.NoError(t, err)
	require.Len(t, series.Points, 6)
	assert.Equal(t, "Jan", series.Points[0].Label)
	assert.Equal(t, "Jun", series.Points[5].Label)
}

func TestComputeSeries_FailedSubWindowsFailOpen(t *testing.T) {
	// Queries before June fail; those weeks come back as zero entries
	// while the rest of the series survives.
	records := &fakeRecordRepo{
		records: []performance.Record{
			{OwnerID: "emp-1", Date: day(2025, 6, 11), MeetingsHeld: 30, MeetingsAttended: 30, DurationRaw: "20:00:00", ClosingAmount: 50000},
		},
		listErr: func(start, _ time.Time) error {
			if start.Before(day(2025, 6, 1)) {
				return performance.ErrSourceUnavailable
			}
			return nil
		},
	}
	svc := newTestService(records, &fakeTargetRepo{})

	series, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodWeekly, 5)
	require.NoError(t, err)
	require.Len(t, series.Points, 5)
	assert.Equal(t, 0.0, series.Points[0].Percentage)
	assert.Equal(t, 0.0, series.Points[1].Percentage)
	assert.Equal(t, 100.0, series.Points[4].Percentage)
	assert.Equal(t, "Week 1", series.Points[0].Label)
}

func TestComputeSeries_Cached(t *testing.T) {
	records := &fakeRecordRepo{}
	svc := newTestService(records, &fakeTargetRepo{})

	_, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodWeekly, 5)
	require.NoError(t, err)
	first := records.calls
	_, err = svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodWeekly, 5)
	require.NoError(t, err)
	assert.Equal(t, first, records.calls)
}

func TestComputeSeries_RejectsBadInput(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeTargetRepo{})

	_, err := svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodKind("daily"), 5)
	assert.ErrorIs(t, err, performance.ErrInvalidPeriod)

	_, err = svc.ComputeSeries(context.Background(), "emp-1", performance.PeriodWeekly, 0)
	assert.ErrorIs(t, err, performance.ErrInvalidCount)

	_, err = svc.ComputeSeries(context.Background(), "", performance.PeriodWeekly, 5)
	assert.ErrorIs(t, err, performance.ErrOwnerRequired)
}

func TestGetSummary(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "emp-1", Date: day(2025, 3, 3), PercentageAchieved: 40},
		{OwnerID: "emp-1", Date: day(2025, 4, 14), PercentageAchieved: 90},
		{OwnerID: "emp-1", Date: day(2025, 5, 5), PercentageAchieved: 50},
		{OwnerID: "emp-2", Date: day(2025, 5, 5), PercentageAchieved: 99},
	}}
	svc := newTestService(records, &fakeTargetRepo{})

	summary, err := svc.GetSummary(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ReportCount)
	assert.Equal(t, 90.0, summary.HighestPercentage)
	assert.InDelta(t, 60.0, summary.AveragePercentage, 0.001)
}

func TestGetSummary_NoRecords(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeTargetRepo{})

	summary, err := svc.GetSummary(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ReportCount)
	assert.Equal(t, 0.0, summary.AveragePercentage)
}
