package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"prover/internal/anoncreds/models"
)

// PostgresStore persists claims in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed claim store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts a claim for the wallet.
func (s *PostgresStore) Save(ctx context.Context, walletName string, claim models.Claim) error {
	values, err := json.Marshal(claim.Values)
	if err != nil {
		return fmt.Errorf("encode claim values: %w", err)
	}
	query := `
		INSERT INTO claims (claim_uuid, wallet_name, issuer_did, schema_seq_no, claim_values, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		claim.ID.String(),
		walletName,
		claim.IssuerDID,
		claim.SchemaSeqNo,
		values,
		claim.StoredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateClaim(claim.ID)
		}
		return fmt.Errorf("save claim: %w", err)
	}
	return nil
}

// ListByWallet returns the wallet's claims in insertion order.
func (s *PostgresStore) ListByWallet(ctx context.Context, walletName string) ([]models.Claim, error) {
	query := `
		SELECT claim_uuid, issuer_did, schema_seq_no, claim_values, stored_at
		FROM claims
		WHERE wallet_name = $1
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, walletName)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	claims := []models.Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

// DeleteByWallet removes every claim of the wallet and returns how many were removed.
func (s *PostgresStore) DeleteByWallet(ctx context.Context, walletName string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM claims WHERE wallet_name = $1`, walletName)
	if err != nil {
		return 0, fmt.Errorf("delete claims: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete claims rows: %w", err)
	}
	return int(n), nil
}

type claimRow interface {
	Scan(dest ...any) error
}

func scanClaim(row claimRow) (*models.Claim, error) {
	var c models.Claim
	var id string
	var values []byte
	if err := row.Scan(&id, &c.IssuerDID, &c.SchemaSeqNo, &values, &c.StoredAt); err != nil {
		return nil, err
	}
	c.ID = models.ClaimID(id)
	if err := json.Unmarshal(values, &c.Values); err != nil {
		return nil, fmt.Errorf("decode claim values: %w", err)
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
