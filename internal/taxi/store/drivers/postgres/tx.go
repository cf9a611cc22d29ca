package postgres

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/jackc/pgx/v5"
)

type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback(t.ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, store.ErrNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return store.ErrNestedTx
}

func (t *txStore) Manufacturers() store.Manufacturers { return &manufacturersRepo{db: t.tx} }
func (t *txStore) Cars() store.Cars                   { return &carsRepo{db: t.tx} }
func (t *txStore) Drivers() store.Drivers             { return &driversRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil }
