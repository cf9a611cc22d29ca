package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database at dsn (a file path or ":memory:").
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: SQLite serialises writers anyway, and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Manufacturers() store.Manufacturers { return &manufacturersRepo{db: s.db} }
func (s *Store) Cars() store.Cars                   { return &carsRepo{db: s.db} }
func (s *Store) Drivers() store.Drivers             { return &driversRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns constraint failures into store errors.
func mapWriteErr(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	msg := se.Error()
	switch code := se.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE constraint failed"):
		return &store.ConflictError{Field: conflictField(msg), Err: err}
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(store.ErrNotFound, err)
	}
	return err
}

// conflictField picks the column out of "UNIQUE constraint failed: drivers.username".
func conflictField(msg string) string {
	switch {
	case strings.Contains(msg, "license_number"):
		return "license_number"
	case strings.Contains(msg, "username"):
		return "username"
	default:
		return "id"
	}
}

// expectOne reports ErrNotFound when a write touched no rows.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return mapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// likeArg is the bound pattern for a "LIKE ? ESCAPE '\'" search.
func likeArg(term string) string {
	return "%" + strings.ToLower(store.EscapeLike(term)) + "%"
}

// pageClause returns the LIMIT/OFFSET suffix for opts.
func pageClause(opts store.ListOptions) (string, []any) {
	if opts.PageSize == 0 {
		return "", nil
	}
	return " LIMIT ? OFFSET ?", []any{opts.PageSize, opts.Offset()}
}
