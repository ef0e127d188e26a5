package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/spendwise/internal/config"
	"github.com/carson-networks/spendwise/internal/storage/memory"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// Migrations holds the postgres schema, applied by scripts/db_migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// ErrReadOnly is returned by Write on a Storage built without a writer.
var ErrReadOnly = errors.New("storage: no write access configured")

// Storage is the read side. Writes go through Write so they run inside one
// transaction.
type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable

	beginWrite func(ctx context.Context) (*Writer, error)
}

func NewStorage(env *config.Config) (*Storage, error) {
	if env.DataBackend == config.BackendMemory {
		return NewMemoryStorage(), nil
	}

	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Budgets:      sqlconfig.NewBudgetsTable(bobDB),
		beginWrite: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, &sqlconfig.StoreError{Op: "storage.Write", Err: err}
			}
			return NewWriter(tx), nil
		},
	}, nil
}

// NewMemoryStorage keeps everything in process memory.
func NewMemoryStorage() *Storage {
	store := memory.New()
	return &Storage{
		Transactions: store.Transactions(),
		Budgets:      store.Budgets(),
		beginWrite: func(context.Context) (*Writer, error) {
			return newMemoryWriter(store), nil
		},
	}
}

// Write opens a writer. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.beginWrite == nil {
		return nil, ErrReadOnly
	}
	return s.beginWrite(ctx)
}

// Ping checks the database connection. The memory backend is always up.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
