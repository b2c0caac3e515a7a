package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// insertBatchSize keeps multi-row inserts well under SQLite's bound
// parameter limit.
const insertBatchSize = 100

// execBatches runs one multi-row insert per batch of n rows.
func execBatches(ctx context.Context, tx *sql.Tx, n int, build func(lo, hi int) squirrel.InsertBuilder) error {
	for lo := 0; lo < n; lo += insertBatchSize {
		hi := lo + insertBatchSize
		if hi > n {
			hi = n
		}
		query, args, err := build(lo, hi).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func utc(t time.Time) time.Time { return t.UTC() }

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
