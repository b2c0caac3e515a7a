package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/content"
	"github.com/vytor/ayahrecall/internal/errors"
	"github.com/vytor/ayahrecall/internal/jobs"
	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/repository"
	"github.com/vytor/ayahrecall/internal/srs"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ReviewOutcome is the result of rating an item.
type ReviewOutcome struct {
	Record  models.ReviewRecord  `json:"record"`
	Streak  models.StreakState   `json:"streak"`
	Session *models.StudySession `json:"session,omitempty"`
}

// HistoryQuery selects a page of an item's review log. Zero values mean the
// default limit and no lower time bound.
type HistoryQuery struct {
	Limit int
	Since time.Time
}

// HistoryPage is the newest part of an item's review log. Total counts every
// matching entry, not just the returned ones.
type HistoryPage struct {
	Total   int                     `json:"total"`
	Entries []models.ReviewLogEntry `json:"entries"`
}

// StudyService handles review scheduling, study sessions and their persistence
type StudyService interface {
	Register(ctx context.Context, itemID string) (models.ReviewRecord, bool, error)
	Review(ctx context.Context, itemID string, quality int) (ReviewOutcome, error)
	Record(ctx context.Context, itemID string) (models.ReviewRecord, error)
	History(ctx context.Context, itemID string, q HistoryQuery) (HistoryPage, error)
	Due(ctx context.Context, limit int) ([]models.ReviewRecord, error)
	StartSession(ctx context.Context) (models.StudySession, error)
	RecordReview(ctx context.Context, itemID string, correct bool) (models.StudySession, error)
	EndSession(ctx context.Context) (models.StudySession, error)
	CurrentSession(ctx context.Context) (models.StudySession, bool)
	Sessions(ctx context.Context) []models.StudySession
	Stats(ctx context.Context) models.Stats
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
}

type studyService struct {
	scheduler *srs.Scheduler
	clock     clock.Clock
	stateRepo repository.StateRepository
	logRepo   repository.ReviewLogRepository
	queue     jobs.JobQueue
	goals     models.GoalTargets
}

// NewStudyService creates a new StudyService. queue may be nil, in which
// case state is only written by Flush.
func NewStudyService(
	scheduler *srs.Scheduler,
	clk clock.Clock,
	stateRepo repository.StateRepository,
	logRepo repository.ReviewLogRepository,
	queue jobs.JobQueue,
	goals models.GoalTargets,
) StudyService {
	return &studyService{
		scheduler: scheduler,
		clock:     clk,
		stateRepo: stateRepo,
		logRepo:   logRepo,
		queue:     queue,
		goals:     goals,
	}
}

func validateItemID(itemID string) error {
	if _, _, err := content.ParseItemID(itemID); err != nil {
		return errors.NewValidationError("itemId", "must be chapter:verse with chapter 1-114", err)
	}
	return nil
}

func (s *studyService) Register(ctx context.Context, itemID string) (models.ReviewRecord, bool, error) {
	log := logger.FromContext(ctx).WithField("item_id", itemID)
	if err := validateItemID(itemID); err != nil {
		return models.ReviewRecord{}, false, err
	}

	rec, created := s.scheduler.Register(itemID)
	if created {
		log.Info("item registered")
		s.persist(ctx)
	} else {
		log.Debug("item already registered")
	}
	return rec, created, nil
}

func (s *studyService) Review(ctx context.Context, itemID string, quality int) (ReviewOutcome, error) {
	log := logger.FromContext(ctx).WithField("item_id", itemID)
	log.Debug("reviewing item: quality=%d", quality)

	if err := validateItemID(itemID); err != nil {
		return ReviewOutcome{}, err
	}

	rec, err := s.scheduler.Review(itemID, quality)
	if err != nil {
		if stderrors.Is(err, srs.ErrInvalidQuality) {
			return ReviewOutcome{}, errors.NewValidationError("quality", "must be between 0 and 5", err)
		}
		log.Error("failed to apply review: %v", err)
		return ReviewOutcome{}, errors.NewInternalError(err)
	}
	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", rec.IntervalDays, rec.EaseFactor)

	out := ReviewOutcome{Record: rec, Streak: s.scheduler.Streak()}

	if _, open := s.scheduler.CurrentSession(); open {
		sess, err := s.scheduler.RecordReview(itemID, srs.Passed(quality))
		switch {
		case err == nil:
			out.Session = &sess
		case stderrors.Is(err, srs.ErrNoOpenSession):
			log.Debug("session closed before the review was recorded")
		default:
			log.Warn("failed to record review in session: %v", err)
		}
	}

	// The review log is history only; the schedule is already updated.
	if s.logRepo != nil {
		entry := models.ReviewLogEntry{
			ItemID:       itemID,
			Quality:      quality,
			IntervalDays: rec.IntervalDays,
			EaseFactor:   rec.EaseFactor,
			ReviewedAt:   *rec.LastReviewedAt,
		}
		if _, err := s.logRepo.Append(ctx, entry); err != nil {
			log.Warn("failed to store review history: %v", err)
		}
	}

	s.persist(ctx)
	return out, nil
}

func (s *studyService) Record(ctx context.Context, itemID string) (models.ReviewRecord, error) {
	rec, ok := s.scheduler.Record(itemID)
	if !ok {
		logger.FromContext(ctx).Debug("item not found: %s", itemID)
		return models.ReviewRecord{}, errors.NewNotFoundError("item", itemID)
	}
	return rec, nil
}

func (s *studyService) History(ctx context.Context, itemID string, q HistoryQuery) (HistoryPage, error) {
	log := logger.FromContext(ctx).WithField("item_id", itemID)
	if _, err := s.Record(ctx, itemID); err != nil {
		return HistoryPage{}, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if s.logRepo == nil {
		return HistoryPage{Entries: []models.ReviewLogEntry{}}, nil
	}

	filter := repository.ReviewLogFilter{ItemID: itemID, Since: q.Since}
	total, err := s.logRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count review history: %v", err)
		return HistoryPage{}, errors.NewInternalError(err)
	}
	filter.Limit = limit
	entries, err := s.logRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return HistoryPage{}, errors.NewInternalError(err)
	}
	return HistoryPage{Total: total, Entries: entries}, nil
}

func (s *studyService) Due(ctx context.Context, limit int) ([]models.ReviewRecord, error) {
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "must not be negative")
	}
	due := s.scheduler.DueItems(s.clock.Now())
	logger.FromContext(ctx).Debug("found %d due items", len(due))
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *studyService) StartSession(ctx context.Context) (models.StudySession, error) {
	log := logger.FromContext(ctx)
	sess, err := s.scheduler.StartSession()
	if err != nil {
		return models.StudySession{}, sessionError(err)
	}
	log.Info("study session started: id=%s", sess.ID)
	return sess, nil
}

func (s *studyService) RecordReview(ctx context.Context, itemID string, correct bool) (models.StudySession, error) {
	if err := validateItemID(itemID); err != nil {
		return models.StudySession{}, err
	}
	sess, err := s.scheduler.RecordReview(itemID, correct)
	if err != nil {
		return models.StudySession{}, sessionError(err)
	}
	logger.FromContext(ctx).Debug("review recorded in session %s: item_id=%s, correct=%t", sess.ID, itemID, correct)
	return sess, nil
}

func (s *studyService) EndSession(ctx context.Context) (models.StudySession, error) {
	log := logger.FromContext(ctx)
	sess, err := s.scheduler.EndSession()
	if err != nil {
		return models.StudySession{}, sessionError(err)
	}
	log.Info("study session ended: id=%s, correct=%d/%d", sess.ID, sess.CorrectCount, sess.TotalCount)
	s.persist(ctx)
	return sess, nil
}

func (s *studyService) CurrentSession(ctx context.Context) (models.StudySession, bool) {
	return s.scheduler.CurrentSession()
}

func (s *studyService) Sessions(ctx context.Context) []models.StudySession {
	return s.scheduler.Sessions()
}

func (s *studyService) Stats(ctx context.Context) models.Stats {
	return s.scheduler.Stats(s.goals)
}

// Load replaces the scheduler state with the stored snapshot.
func (s *studyService) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)
	snap, err := s.stateRepo.Load(ctx)
	if err != nil {
		log.Error("failed to load state: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.scheduler.Restore(snap); err != nil {
		log.Error("stored state rejected: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("state loaded: items=%d, sessions=%d, total_reviews=%d", len(snap.Records), len(snap.Sessions), snap.TotalReviews)
	return nil
}

// Flush saves the current state synchronously.
func (s *studyService) Flush(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := s.stateRepo.Save(ctx, s.scheduler.Snapshot()); err != nil {
		log.Error("failed to flush state: %v", err)
		return errors.NewInternalError(err)
	}
	log.Debug("state flushed")
	return nil
}

func (s *studyService) persist(ctx context.Context) {
	if s.queue == nil {
		return
	}
	if !s.queue.EnqueuePersist() {
		logger.FromContext(ctx).Warn("persist job dropped")
	}
}

func sessionError(err error) error {
	switch {
	case stderrors.Is(err, srs.ErrSessionOpen):
		return errors.NewConflictError("a study session is already open", err)
	case stderrors.Is(err, srs.ErrNoOpenSession):
		return errors.NewConflictError("no study session is open", err)
	default:
		return errors.NewInternalError(err)
	}
}
