package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"prover/internal/wallet/models"
)

// PostgresStore persists wallets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed wallet store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a wallet if its name is free.
func (s *PostgresStore) Create(ctx context.Context, w *models.Wallet) error {
	if w == nil {
		return fmt.Errorf("wallet is required")
	}
	query := `
		INSERT INTO wallets (name, pool_name, type, key_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, w.Name, w.PoolName, w.Type, w.KeyHash, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return walletExists(w.Name)
		}
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

// FindByName returns the named wallet.
func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Wallet, error) {
	query := `
		SELECT name, pool_name, type, key_hash, created_at
		FROM wallets
		WHERE name = $1
	`
	var w models.Wallet
	err := s.db.QueryRowContext(ctx, query, name).Scan(&w.Name, &w.PoolName, &w.Type, &w.KeyHash, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, walletNotFound(name)
		}
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	return &w, nil
}

// Delete removes the named wallet. Its claims go with it through the foreign key.
func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wallets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wallet rows: %w", err)
	}
	if rows == 0 {
		return walletNotFound(name)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
