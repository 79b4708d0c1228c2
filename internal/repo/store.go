// Package repo contains all database access logic for the facility catalog.
// Each table has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txDB is a db that can also open a transaction. *pgxpool.Pool opens a real
// transaction; pgx.Tx opens a savepoint.
type txDB interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles the table repos bound to one connection or transaction.
type Repos struct {
	Facilities FacilityRepo
	Locations  LocationRepo
	Tags       TagRepo
}

// NewRepos binds every repo to the same db handle.
func NewRepos(db db) Repos {
	return Repos{
		Facilities: NewFacilityRepo(db),
		Locations:  NewLocationRepo(db),
		Tags:       NewTagRepo(db),
	}
}

// Store hands out repos and owns the transaction boundary for multi-statement
// writes. The service layer depends on this interface so it can be unit-tested
// without a database.
type Store interface {
	// Repos returns repos bound to the underlying pool, for single-statement reads.
	Repos() Repos

	// WithTx runs fn with repos bound to a fresh transaction. The transaction
	// commits when fn returns nil and rolls back otherwise; fn's error is
	// returned unchanged.
	WithTx(ctx context.Context, fn func(Repos) error) error
}

type pgStore struct {
	db    txDB
	repos Repos
}

// NewStore constructs a Store backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStore(db txDB) Store {
	return &pgStore{db: db, repos: NewRepos(db)}
}

func (s *pgStore) Repos() Repos {
	return s.repos
}

func (s *pgStore) WithTx(ctx context.Context, fn func(Repos) error) error {
	var fnErr error
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		fnErr = fn(NewRepos(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return storageErr("repo.Store.WithTx", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// storageErr prefixes err with op. Anything other than domain.ErrNotFound is
// labeled with domain.ErrStorage.
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// notFoundOnNoRows maps pgx.ErrNoRows to domain.ErrNotFound.
func notFoundOnNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
