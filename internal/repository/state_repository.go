package repository

import (
	"context"

	"github.com/vytor/ayahrecall/internal/models"
)

// StateRepository persists complete scheduler snapshots.
type StateRepository interface {
	// Save replaces the stored state with snap atomically.
	Save(ctx context.Context, snap models.Snapshot) error
	// Load returns the stored state, or an empty snapshot for a fresh store.
	Load(ctx context.Context) (models.Snapshot, error)
}
