package worker

import (
	"context"
	"fmt"

	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/repository"
)

// StateSource supplies the state to persist.
// This avoids import cycles by not importing the srs package.
type StateSource interface {
	Snapshot() models.Snapshot
}

// PersistStateJob saves the state current when the job runs, not when it was
// submitted, so a queued job never writes stale data.
type PersistStateJob struct {
	Source StateSource
	Repo   repository.StateRepository
}

func (j *PersistStateJob) Name() string { return "persist_state" }

func (j *PersistStateJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	snap := j.Source.Snapshot()
	if err := j.Repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	log.Debug("state persisted: records=%d, sessions=%d", len(snap.Records), len(snap.Sessions))
	return nil
}
