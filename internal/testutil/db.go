package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory store that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailOnNthExecUoW runs a real transaction but makes the FailOn-th write
// return Err, so rollback paths can be tested at an exact point. Writes are
// counted from 1. When Table is set only statements mentioning it count.
// Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Table  string
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow    *FailOnNthExecUoW
	writes int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Table == "" || strings.Contains(query, f.uow.Table) {
		f.writes++
		if f.writes == f.uow.FailOn {
			if f.uow.Err == nil {
				return nil, fmt.Errorf("injected failure on write %d", f.writes)
			}
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
