//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"prover/internal/wallet/models"
	"prover/internal/wallet/store"
	dErrors "prover/pkg/domain-errors"
	"prover/pkg/testutil/containers"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.postgres = containers.Postgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.Require().NoError(s.postgres.Reset(context.Background()))
}

func (s *PostgresIntegrationSuite) TestLifecycle() {
	ctx := context.Background()
	w := &models.Wallet{
		Name:      "w1",
		PoolName:  "pool_1",
		Type:      models.DefaultType,
		KeyHash:   "$2a$10$hash",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	s.Require().NoError(s.store.Create(ctx, w))
	s.True(dErrors.HasCode(s.store.Create(ctx, w), dErrors.CodeConflict))

	got, err := s.store.FindByName(ctx, "w1")
	s.Require().NoError(err)
	s.Equal(w.PoolName, got.PoolName)
	s.True(w.CreatedAt.Equal(got.CreatedAt))

	s.Require().NoError(s.store.Delete(ctx, "w1"))
	_, err = s.store.FindByName(ctx, "w1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.True(dErrors.HasCode(s.store.Delete(ctx, "w1"), dErrors.CodeNotFound))
}

func (s *PostgresIntegrationSuite) TestWalletWithoutKey() {
	ctx := context.Background()
	w := &models.Wallet{
		Name:      "closeWalletWorks",
		PoolName:  "default",
		Type:      models.DefaultType,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	s.Require().NoError(s.store.Create(ctx, w))

	got, err := s.store.FindByName(ctx, "closeWalletWorks")
	s.Require().NoError(err)
	s.False(got.Keyed())
}
