package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/store"
)

// TxRunner runs fn against a transactional view of the stores. Every
// store call made through the passed-in bundle commits or rolls back as
// one unit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(s *store.Stores) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(database *db.DB) TxRunner {
	return &dbTxRunner{db: database}
}

func (r *dbTxRunner) RunInTx(ctx context.Context, fn func(s *store.Stores) error) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(store.New(tx))
	})
}
