package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,ClaimPurger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"prover/internal/platform/metrics"
	"prover/internal/wallet/models"
	"prover/internal/wallet/service/mocks"
	"prover/internal/wallet/store"
	dErrors "prover/pkg/domain-errors"
	concurrent "prover/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	purger  *mocks.MockClaimPurger
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.purger = mocks.NewMockClaimPurger(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(store.NewInMemory(), s.purger,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) createWallet(name string) {
	_, err := s.service.Create(s.ctx, &models.CreateRequest{PoolName: "pool_1", Name: name, Key: "key"})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestCreate() {
	s.Run("defaults the type", func() {
		w, err := s.service.Create(s.ctx, &models.CreateRequest{PoolName: "pool_1", Name: "wallet_create", Key: "key"})
		s.Require().NoError(err)
		s.Equal(models.DefaultType, w.Type)
		s.NotEqual("key", w.KeyHash)
	})

	s.Run("duplicate name", func() {
		_, err := s.service.Create(s.ctx, &models.CreateRequest{PoolName: "pool_1", Name: "wallet_create", Key: "key"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown type", func() {
		_, err := s.service.Create(s.ctx, &models.CreateRequest{PoolName: "pool_1", Name: "other", Type: "unknown_type", Key: "key"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestOpen() {
	s.createWallet("wallet_open")

	s.Run("unknown wallet", func() {
		_, err := s.service.Open(s.ctx, "missing", "key")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("wrong key", func() {
		_, err := s.service.Open(s.ctx, "wallet_open", "other")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("opens once", func() {
		h, err := s.service.Open(s.ctx, "wallet_open", "key")
		s.Require().NoError(err)
		s.Positive(int32(h))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.WalletsOpen))

		_, err = s.service.Open(s.ctx, "wallet_open", "key")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *ServiceSuite) TestCloseTwice() {
	s.createWallet("wallet_close")
	h, err := s.service.Open(s.ctx, "wallet_close", "key")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Close(s.ctx, h))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.WalletsOpen))

	err = s.service.Close(s.ctx, h)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidHandle))
}

func (s *ServiceSuite) TestReopenGetsNewHandle() {
	s.createWallet("wallet_reopen")
	first, err := s.service.Open(s.ctx, "wallet_reopen", "key")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Close(s.ctx, first))

	second, err := s.service.Open(s.ctx, "wallet_reopen", "key")
	s.Require().NoError(err)
	s.NotEqual(first, second)

	_, err = s.service.Resolve(s.ctx, first)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidHandle))
}

func (s *ServiceSuite) TestResolve() {
	s.createWallet("wallet_resolve")
	h, err := s.service.Open(s.ctx, "wallet_resolve", "key")
	s.Require().NoError(err)

	w, err := s.service.Resolve(s.ctx, h)
	s.Require().NoError(err)
	s.Equal("wallet_resolve", w.Name)

	_, err = s.service.Resolve(s.ctx, models.Handle(9999))
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidHandle))
}

func (s *ServiceSuite) TestWalletWithoutKey() {
	w, err := s.service.Create(s.ctx, &models.CreateRequest{PoolName: "default", Name: "closeWalletWorks", Type: "default"})
	s.Require().NoError(err)
	s.False(w.Keyed())

	s.Run("rejects a key it was not created with", func() {
		_, err := s.service.Open(s.ctx, "closeWalletWorks", "key")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("opens and closes without credentials", func() {
		h, err := s.service.Open(s.ctx, "closeWalletWorks", "")
		s.Require().NoError(err)
		s.Require().NoError(s.service.Close(s.ctx, h))

		err = s.service.Close(s.ctx, h)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidHandle))
	})

	s.Run("deletes without credentials", func() {
		s.purger.EXPECT().DeleteByWallet(gomock.Any(), "closeWalletWorks").Return(0, nil)
		s.Require().NoError(s.service.Delete(s.ctx, "closeWalletWorks", ""))

		_, err := s.service.Open(s.ctx, "closeWalletWorks", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestKeyedWalletNeedsKey() {
	s.createWallet("wallet_keyed")

	_, err := s.service.Open(s.ctx, "wallet_keyed", "")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = s.service.Delete(s.ctx, "wallet_keyed", "")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestDelete() {
	s.createWallet("wallet_delete")

	s.Run("refuses an opened wallet", func() {
		h, err := s.service.Open(s.ctx, "wallet_delete", "key")
		s.Require().NoError(err)
		err = s.service.Delete(s.ctx, "wallet_delete", "key")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Require().NoError(s.service.Close(s.ctx, h))
	})

	s.Run("wrong key", func() {
		err := s.service.Delete(s.ctx, "wallet_delete", "other")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("purges claims", func() {
		s.purger.EXPECT().DeleteByWallet(gomock.Any(), "wallet_delete").Return(2, nil)
		s.Require().NoError(s.service.Delete(s.ctx, "wallet_delete", "key"))

		_, err := s.service.Open(s.ctx, "wallet_delete", "key")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeletePurgeFailure() {
	s.createWallet("wallet_purge")
	s.purger.EXPECT().DeleteByWallet(gomock.Any(), "wallet_purge").Return(0, errors.New("db down"))

	err := s.service.Delete(s.ctx, "wallet_purge", "key")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = s.service.Open(s.ctx, "wallet_purge", "key")
	s.NoError(err, "wallet survives a failed purge")
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	walletStore := mocks.NewMockStore(s.ctrl)
	svc := New(walletStore, s.purger)
	walletStore.EXPECT().FindByName(gomock.Any(), "w").Return(nil, errors.New("connection reset"))

	_, err := svc.Open(s.ctx, "w", "key")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestConcurrentOpenSingleWinner() {
	s.createWallet("wallet_race")
	const n = 20

	result := concurrent.RunConcurrent(n, func(int) error {
		_, err := s.service.Open(s.ctx, "wallet_race", "key")
		return err
	})
	s.Equal(1, result.Successes)
	s.Equal(n-1, result.WithCode(dErrors.CodeInvalidState))
}
