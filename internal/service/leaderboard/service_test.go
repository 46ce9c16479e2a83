package leaderboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/satfield/sfa-backend-go/internal/domain/leaderboard"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []performance.Record
	calls   int
}

func (f *fakeRecordRepo) ListByOwner(_ context.Context, ownerID string, start, end time.Time) ([]performance.Record, error) {
	var out []performance.Record
	for _, rec := range f.records {
		if rec.OwnerID == ownerID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListAll(_ context.Context) ([]performance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]performance.Record(nil), f.records...), nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]leaderboard.Profile
}

func (f *fakeProfileRepo) GetByOwnerID(_ context.Context, ownerID string) (leaderboard.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[ownerID]; ok {
		return p, nil
	}
	return leaderboard.Profile{}, leaderboard.ErrProfileNotFound
}

func newTestService(records *fakeRecordRepo, profiles *fakeProfileRepo) leaderboard.LeaderboardService {
	return NewLeaderboardService(records, profiles, cache.New(5*time.Minute, time.Now), nil)
}

func TestTopN_RanksByAverageStoredPercentage(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "a", Date: date(2025, 6, 1), PercentageAchieved: 40},
		{OwnerID: "a", Date: date(2025, 6, 2), PercentageAchieved: 60},
		{OwnerID: "b", Date: date(2025, 6, 3), PercentageAchieved: 90},
		{OwnerID: "c", Date: date(2025, 6, 4), PercentageAchieved: 10},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]leaderboard.Profile{
		"a": {Name: "Asha Rao"},
		"b": {Name: "Bilal Khan"},
		"c": {Name: "Chitra Iyer"},
	}}
	svc := newTestService(records, profiles)

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "b", entries[0].OwnerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 90.0, entries[0].PercentageAchieved)

	assert.Equal(t, "a", entries[1].OwnerID)
	assert.Equal(t, 50.0, entries[1].PercentageAchieved)
	assert.Equal(t, 2, entries[1].ReportCount)

	assert.Equal(t, "c", entries[2].OwnerID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestTopN_TieBrokenByLatestReport(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "old", Date: date(2025, 5, 1), PercentageAchieved: 75},
		{OwnerID: "fresh", Date: date(2025, 6, 20), PercentageAchieved: 75},
	}}
	svc := newTestService(records, &fakeProfileRepo{})

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fresh", entries[0].OwnerID)
	assert.Equal(t, "old", entries[1].OwnerID)
}

func TestTopN_CapsAtLimit(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "a", Date: date(2025, 6, 1), PercentageAchieved: 90},
		{OwnerID: "b", Date: date(2025, 6, 1), PercentageAchieved: 80},
		{OwnerID: "c", Date: date(2025, 6, 1), PercentageAchieved: 70},
	}}
	svc := newTestService(records, &fakeProfileRepo{})

	entries, err := svc.TopN(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].OwnerID)
	assert.Equal(t, "b", entries[1].OwnerID)
}

func TestTopN_NameFallbackChain(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "full", Date: date(2025, 6, 1), PercentageAchieved: 90},
		{OwnerID: "split", Date: date(2025, 6, 1), PercentageAchieved: 80},
		{OwnerID: "display", Date: date(2025, 6, 1), PercentageAchieved: 70},
		{OwnerID: "email", Date: date(2025, 6, 1), PercentageAchieved: 60},
		{OwnerID: "ghost", Date: date(2025, 6, 1), PercentageAchieved: 50},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]leaderboard.Profile{
		"full":    {Name: "Asha Rao", FirstName: "ignored"},
		"split":   {FirstName: "Bilal", LastName: "Khan"},
		"display": {DisplayName: "chitra_i"},
		"email":   {Email: "dev@example.com"},
	}}
	svc := newTestService(records, profiles)

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "Asha Rao", entries[0].Name)
	assert.Equal(t, "Bilal Khan", entries[1].Name)
	assert.Equal(t, "chitra_i", entries[2].Name)
	assert.Equal(t, "dev@example.com", entries[3].Name)
	assert.Equal(t, "Unknown User", entries[4].Name)
}

func TestTopN_AvatarFallbackChain(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "a", Date: date(2025, 6, 1), PercentageAchieved: 90},
		{OwnerID: "b", Date: date(2025, 6, 1), PercentageAchieved: 80},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]leaderboard.Profile{
		"a": {Name: "A", AvatarURL: "https://cdn/a.png", PhotoURL: "https://cdn/ignored.png"},
		"b": {Name: "B", Picture: "https://cdn/b.png"},
	}}
	svc := newTestService(records, profiles)

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.png", entries[0].AvatarURL)
	assert.Equal(t, "https://cdn/b.png", entries[1].AvatarURL)
}

func TestTopN_MissingProfileDoesNotDropOwner(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "nobody", Date: date(2025, 6, 1), PercentageAchieved: 55},
	}}
	svc := newTestService(records, &fakeProfileRepo{})

	entries, err := svc.TopN(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown User", entries[0].Name)
	assert.Equal(t, 55.0, entries[0].PercentageAchieved)
}

func TestTopN_EmptyStore(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeProfileRepo{})

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTopN_Cached(t *testing.T) {
	records := &fakeRecordRepo{records: []performance.Record{
		{OwnerID: "a", Date: date(2025, 6, 1), PercentageAchieved: 90},
	}}
	svc := newTestService(records, &fakeProfileRepo{})

	_, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	_, err = svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, records.calls)
}

func TestTopN_RejectsNonPositiveLimit(t *testing.T) {
	svc := newTestService(&fakeRecordRepo{}, &fakeProfileRepo{})

	_, err := svc.TopN(context.Background(), 0)
	assert.ErrorIs(t, err, leaderboard.ErrInvalidLimit)
}
