package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"review_records", "streak_state", "study_sessions", "session_items", "counters", "review_log"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	var applied int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestApplyMigrations_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ayahrecall.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO counters (name, value) VALUES ('total_reviews', 3)`)
	require.NoError(t, err)
	require.NoError(t, first.applyMigrations(context.Background()))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	var total int
	require.NoError(t, second.QueryRow(`SELECT value FROM counters WHERE name = 'total_reviews'`).Scan(&total))
	assert.Equal(t, 3, total)
}

func TestSchema_EnforcesRecordInvariants(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO review_records (item_id, next_review_at, interval_days, ease_factor, repetitions) VALUES ('1:1', CURRENT_TIMESTAMP, 1, 1.2, 0)`)
	assert.Error(t, err, "ease factor below 1.3")

	_, err = database.Exec(`INSERT INTO review_records (item_id, next_review_at, interval_days, ease_factor, repetitions) VALUES ('1:1', CURRENT_TIMESTAMP, 0, 2.5, 0)`)
	assert.Error(t, err, "interval below 1")
}

func TestWithParams(t *testing.T) {
	assert.Equal(t, "file:x.db?a=1", withParams("file:x.db", "a=1"))
	assert.Equal(t, "file:x.db?mode=ro&a=1", withParams("file:x.db?mode=ro", "a=1"))
}

func TestTx_CommitsOrRollsBack(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err = Tx(ctx, database.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES ('total_reviews', 1)`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM counters`).Scan(&n))
	assert.Zero(t, n, "failed transaction must leave no rows")

	require.NoError(t, Tx(ctx, database.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES ('total_reviews', 1)`)
		return err
	}))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM counters`).Scan(&n))
	assert.Equal(t, 1, n)
}
