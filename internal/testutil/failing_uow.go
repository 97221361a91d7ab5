package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/fleksjobb/internal/db"
)

// FailOnNthExecUoW is a real unit of work whose transaction fails one
// write: the FailOn-th ExecContext, counted from 1, or with Match set the
// FailOn-th ExecContext whose SQL contains Match. Reads are never counted.
// The returned error is Err, and the transaction rolls back like any
// other failure.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	count atomic.Int32
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.count.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
