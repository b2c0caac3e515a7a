package sqlite_test

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/repository"
	"github.com/vytor/ayahrecall/internal/repository/sqlite"
	"github.com/vytor/ayahrecall/internal/testutil"
)

type StateRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StateRepository
}

func (s *StateRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStateRepository(s.db)
}

func (s *StateRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StateRepositorySuite) sampleSnapshot() models.Snapshot {
	base := testutil.BaseTime
	reviewed := base.Add(-24 * time.Hour)
	end := base.Add(15 * time.Minute)

	snap := models.NewSnapshot()
	snap.Records["2:255"] = models.Schedule{
		NextReviewAt:   base.AddDate(0, 0, 6),
		IntervalDays:   6,
		EaseFactor:     2.7,
		Repetitions:    2,
		LastReviewedAt: &reviewed,
	}
	snap.Records["1:1"] = models.Schedule{
		NextReviewAt: base,
		IntervalDays: 1,
		EaseFactor:   2.5,
	}
	snap.Streak = models.StreakState{
		StreakCount:    3,
		LastReviewDate: clock.DateOf(base),
	}
	snap.Sessions = []models.StudySession{
		{
			ID:           "b0c6a9a8-2b1d-4c4e-9a44-0f1f5f3f7c11",
			StartTime:    base,
			EndTime:      &end,
			ItemIDs:      []string{"2:255", "1:1", "2:255"},
			CorrectCount: 2,
			TotalCount:   3,
		},
		{
			ID:        "7f1d3a52-9e3a-4a55-8a43-2c1d6a0b9e22",
			StartTime: end,
			EndTime:   &end,
			ItemIDs:   []string{},
		},
	}
	snap.TotalReviews = 42
	return snap
}

func (s *StateRepositorySuite) TestLoad_EmptyDatabase() {
	snap, err := s.repo.Load(context.Background())
	s.Require().NoError(err)

	s.NotNil(snap.Records)
	s.Empty(snap.Records)
	s.NotNil(snap.Sessions)
	s.Empty(snap.Sessions)
	s.Equal(models.StreakState{}, snap.Streak)
	s.Zero(snap.TotalReviews)
}

func (s *StateRepositorySuite) TestSaveAndLoad_RoundTrip() {
	ctx := context.Background()
	want := s.sampleSnapshot()

	s.Require().NoError(s.repo.Save(ctx, want))

	got, err := s.repo.Load(ctx)
	s.Require().NoError(err)

	s.Equal(want.TotalReviews, got.TotalReviews)
	s.Equal(want.Streak, got.Streak)

	s.Require().Len(got.Records, 2)
	rec := got.Records["2:255"]
	s.True(want.Records["2:255"].NextReviewAt.Equal(rec.NextReviewAt))
	s.Equal(6, rec.IntervalDays)
	s.InDelta(2.7, rec.EaseFactor, 1e-9)
	s.Equal(2, rec.Repetitions)
	s.Require().NotNil(rec.LastReviewedAt)
	s.True(want.Records["2:255"].LastReviewedAt.Equal(*rec.LastReviewedAt))
	s.Nil(got.Records["1:1"].LastReviewedAt)

	s.Require().Len(got.Sessions, 2)
	s.Equal(want.Sessions[0].ID, got.Sessions[0].ID, "sessions keep their order")
	s.Equal([]string{"2:255", "1:1", "2:255"}, got.Sessions[0].ItemIDs)
	s.Equal(2, got.Sessions[0].CorrectCount)
	s.Equal(3, got.Sessions[0].TotalCount)
	s.Require().NotNil(got.Sessions[0].EndTime)
	s.True(want.Sessions[0].EndTime.Equal(*got.Sessions[0].EndTime))
	s.Equal([]string{}, got.Sessions[1].ItemIDs)
}

func (s *StateRepositorySuite) TestSave_ReplacesPreviousState() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, s.sampleSnapshot()))

	next := models.NewSnapshot()
	next.Records["112:1"] = models.Schedule{NextReviewAt: testutil.BaseTime, IntervalDays: 1, EaseFactor: 2.5}
	next.TotalReviews = 1
	s.Require().NoError(s.repo.Save(ctx, next))

	got, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Len(got.Records, 1)
	s.Contains(got.Records, "112:1")
	s.Empty(got.Sessions)
	s.Equal(models.StreakState{}, got.Streak)
	s.Equal(1, got.TotalReviews)
}

func (s *StateRepositorySuite) TestSave_RejectsOpenSessionAtomically() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, s.sampleSnapshot()))

	bad := models.NewSnapshot()
	bad.Sessions = []models.StudySession{{ID: "open", StartTime: testutil.BaseTime, ItemIDs: []string{}}}
	s.Error(s.repo.Save(ctx, bad))

	got, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Len(got.Records, 2, "failed save leaves previous state in place")
	s.Equal(42, got.TotalReviews)
}

func (s *StateRepositorySuite) TestSave_ManyRecords() {
	ctx := context.Background()
	snap := models.NewSnapshot()
	for v := 1; v <= 286; v++ {
		id := "2:" + strconv.Itoa(v)
		snap.Records[id] = models.Schedule{NextReviewAt: testutil.BaseTime, IntervalDays: 1, EaseFactor: 2.5}
	}
	s.Require().NoError(s.repo.Save(ctx, snap))

	got, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Len(got.Records, 286)
}

func TestStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(StateRepositorySuite))
}
