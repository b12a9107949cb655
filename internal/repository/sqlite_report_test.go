package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReport(id string, at time.Time) *domain.SessionReport {
	return &domain.SessionReport{
		ID:              id,
		Course:          "CS 0478",
		StudentEmail:    "student@school.edu",
		Topics:          "CPU, Memory",
		Counts:          domain.RatingCounts{DontKnow: 2, Somewhat: 1, KnowWell: 5},
		DurationSeconds: 95,
		RecordedAt:      at,
	}
}

func TestReportRepo_CreateAndGetSession(t *testing.T) {
	repo := NewSQLiteReportRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateSession(ctx, newReport("s-1", at)))

	got, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "CS 0478", got.Course)
	assert.Equal(t, "student@school.edu", got.StudentEmail)
	assert.Equal(t, "CPU, Memory", got.Topics)
	assert.Equal(t, domain.RatingCounts{DontKnow: 2, Somewhat: 1, KnowWell: 5}, got.Counts)
	assert.Equal(t, 95, got.DurationSeconds)
	assert.True(t, at.Equal(got.RecordedAt))
}

func TestReportRepo_GetSession_NotFound(t *testing.T) {
	repo := NewSQLiteReportRepo(testutil.NewTestDB(t))

	_, err := repo.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepo_ListRecentSessions_NewestFirst(t *testing.T) {
	repo := NewSQLiteReportRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateSession(ctx, newReport("old", base)))
	require.NoError(t, repo.CreateSession(ctx, newReport("new", base.Add(time.Hour))))
	require.NoError(t, repo.CreateSession(ctx, newReport("mid", base.Add(time.Minute))))

	reports, err := repo.ListRecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "new", reports[0].ID)
	assert.Equal(t, "mid", reports[1].ID)
}

func TestReportRepo_RatingsKeepOrderAndDuplicates(t *testing.T) {
	repo := NewSQLiteReportRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	recs := []domain.RatingRecord{
		{Unit: "U", Sub: "S", Term: "A", Rating: domain.RatingDontKnow, Box: domain.BoxDontKnow},
		{Unit: "U", Sub: "S", Term: "B", Rating: domain.RatingKnowWell, Box: domain.BoxKnowWell},
		{Unit: "U", Sub: "S", Term: "A", Rating: domain.RatingSomewhat, Box: domain.BoxSomewhat},
	}
	for i, rec := range recs {
		require.NoError(t, repo.CreateRating(ctx, "s-1", "CS 0478", i, rec, at))
	}

	got, err := repo.ListRatingsBySession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	none, err := repo.ListRatingsBySession(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReportRepo_ListWeakTerms(t *testing.T) {
	repo := NewSQLiteReportRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	add := func(session string, seq int, term string, r domain.Rating, when time.Time) {
		t.Helper()
		rec := domain.RatingRecord{Unit: "U", Sub: "S", Term: term, Rating: r, Box: r.Box()}
		require.NoError(t, repo.CreateRating(ctx, session, "CS 0478", seq, rec, when))
	}
	add("s-1", 0, "Hard", domain.RatingDontKnow, at)
	add("s-1", 1, "Hard", domain.RatingDontKnow, at)
	add("s-1", 2, "Medium", domain.RatingSomewhat, at)
	add("s-1", 3, "Easy", domain.RatingKnowWell, at)
	add("s-2", 0, "Hard", domain.RatingKnowWell, at.Add(time.Hour))

	stats, err := repo.ListWeakTerms(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stats, 2, "terms never rated weak are excluded")

	assert.Equal(t, "Hard", stats[0].Key.Term)
	assert.Equal(t, 3, stats[0].Ratings)
	assert.Equal(t, 2, stats[0].DontKnow)
	assert.Equal(t, domain.BoxKnowWell, stats[0].LastBox, "last box reflects the most recent rating")

	assert.Equal(t, "Medium", stats[1].Key.Term)
	assert.Equal(t, 1, stats[1].Somewhat)
}
