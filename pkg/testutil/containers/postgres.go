//go:build integration

// Package containers starts shared testcontainers fixtures for integration tests.
package containers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"prover/migrations"
)

const postgresImage = "postgres:18-alpine"

// PostgresContainer is a migrated PostgreSQL instance shared by a test binary.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

var (
	sharedMu       sync.Mutex
	sharedPostgres *PostgresContainer
)

// Postgres returns the package-wide container, starting and migrating it on first use.
// Ryuk removes the container when the test process exits.
func Postgres(t *testing.T) *PostgresContainer {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedPostgres == nil {
		pc, err := startPostgres(context.Background())
		if err != nil {
			t.Fatalf("postgres container: %v", err)
		}
		sharedPostgres = pc
	}
	return sharedPostgres
}

func startPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("prover_test"),
		postgres.WithUsername("prover"),
		postgres.WithPassword("prover_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}, nil
}

// Reset empties the claim and wallet tables between tests.
func (p *PostgresContainer) Reset(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE claims, wallets CASCADE"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// CreateTestWallet inserts a wallet row so claims can reference it.
func (p *PostgresContainer) CreateTestWallet(ctx context.Context, t testing.TB, name string) {
	t.Helper()
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO wallets (name, pool_name, type, key_hash, created_at)
		VALUES ($1, 'pool_1', 'default', 'unused', NOW())
	`, name)
	if err != nil {
		t.Fatalf("CreateTestWallet: %v", err)
	}
}
