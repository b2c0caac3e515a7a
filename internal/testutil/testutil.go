package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/db"
)

// BaseTime is the instant FixedClock starts at: a Sunday morning in UTC.
var BaseTime = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is configured with foreign keys enabled.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// FixedClock returns a manually advanced clock frozen at BaseTime.
func FixedClock() *clock.Fixed {
	return clock.NewFixed(BaseTime)
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
