// Package service manages wallet records and the handles of opened wallets.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"prover/internal/platform/metrics"
	"prover/internal/wallet/models"
	dErrors "prover/pkg/domain-errors"
	psync "prover/pkg/platform/sync"
	"prover/pkg/requestcontext"
	"prover/pkg/secrets"
)

// Store persists wallet records.
type Store interface {
	Create(ctx context.Context, w *models.Wallet) error
	FindByName(ctx context.Context, name string) (*models.Wallet, error)
	Delete(ctx context.Context, name string) error
}

// ClaimPurger drops every claim of a wallet being deleted.
type ClaimPurger interface {
	DeleteByWallet(ctx context.Context, walletName string) (int, error)
}

// Service owns the wallet lifecycle: create, open, close, delete.
// Handles live in memory and die with the process.
type Service struct {
	wallets Store
	claims  ClaimPurger
	locks   *psync.ShardedMutex
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	handles map[models.Handle]string
	opened  map[string]models.Handle
	last    models.Handle
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(wallets Store, claims ClaimPurger, opts ...Option) *Service {
	s := &Service{
		wallets: wallets,
		claims:  claims,
		locks:   psync.NewShardedMutex(),
		logger:  slog.Default(),
		handles: make(map[models.Handle]string),
		opened:  make(map[string]models.Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new wallet. An empty key creates a wallet without credentials.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Wallet, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var keyHash string
	if req.Key != "" {
		hashed, err := secrets.Hash(req.Key)
		if err != nil {
			return nil, err
		}
		keyHash = hashed
	}
	w := &models.Wallet{
		Name:      req.Name,
		PoolName:  req.PoolName,
		Type:      req.Type,
		KeyHash:   keyHash,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.wallets.Create(ctx, w); err != nil {
		return nil, wrapStoreErr(err, "failed to create wallet")
	}
	s.logger.InfoContext(ctx, "wallet created",
		"wallet", w.Name,
		"pool", w.PoolName,
		"keyed", w.Keyed(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return w, nil
}

// Open checks the key and hands out a new handle. A wallet can be open only once.
func (s *Service) Open(ctx context.Context, name, key string) (models.Handle, error) {
	var handle models.Handle
	err := s.locks.WithLock(name, func() error {
		w, err := s.wallets.FindByName(ctx, name)
		if err != nil {
			return wrapStoreErr(err, "failed to load wallet")
		}
		if err := checkKey(w, key); err != nil {
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if _, open := s.opened[name]; open {
			return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("wallet %q is already opened", name))
		}
		handle = s.nextHandle()
		s.handles[handle] = name
		s.opened[name] = handle
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementWalletsOpen()
	}
	s.logger.InfoContext(ctx, "wallet opened",
		"wallet", name,
		"handle", int32(handle),
		"request_id", requestcontext.RequestID(ctx),
	)
	return handle, nil
}

// nextHandle returns the next free positive handle. Callers hold s.mu.
func (s *Service) nextHandle() models.Handle {
	for {
		if s.last == math.MaxInt32 {
			s.last = 0
		}
		s.last++
		if _, used := s.handles[s.last]; !used {
			return s.last
		}
	}
}

// Close releases a handle. Unknown or already closed handles are rejected.
func (s *Service) Close(ctx context.Context, handle models.Handle) error {
	s.mu.Lock()
	name, ok := s.handles[handle]
	if ok {
		delete(s.handles, handle)
		delete(s.opened, name)
	}
	s.mu.Unlock()

	if !ok {
		return invalidHandle(handle)
	}
	if s.metrics != nil {
		s.metrics.DecrementWalletsOpen()
	}
	s.logger.InfoContext(ctx, "wallet closed",
		"wallet", name,
		"handle", int32(handle),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// Delete removes a closed wallet and its claims after checking the key.
func (s *Service) Delete(ctx context.Context, name, key string) error {
	var purged int
	err := s.locks.WithLock(name, func() error {
		if s.isOpen(name) {
			return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("wallet %q is opened", name))
		}
		w, err := s.wallets.FindByName(ctx, name)
		if err != nil {
			return wrapStoreErr(err, "failed to load wallet")
		}
		if err := checkKey(w, key); err != nil {
			return err
		}
		purged, err = s.claims.DeleteByWallet(ctx, name)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete wallet claims")
		}
		if err := s.wallets.Delete(ctx, name); err != nil {
			return wrapStoreErr(err, "failed to delete wallet")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "wallet deleted",
		"wallet", name,
		"claims_purged", purged,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// checkKey verifies key against a keyed wallet. A wallet without a key only
// accepts an empty key.
func checkKey(w *models.Wallet, key string) error {
	if !w.Keyed() {
		if key != "" {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid wallet key")
		}
		return nil
	}
	return secrets.Verify(key, w.KeyHash)
}

// Resolve returns the wallet behind an open handle.
func (s *Service) Resolve(ctx context.Context, handle models.Handle) (*models.Wallet, error) {
	s.mu.RLock()
	name, ok := s.handles[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, invalidHandle(handle)
	}
	w, err := s.wallets.FindByName(ctx, name)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load wallet")
	}
	return w, nil
}

func (s *Service) isOpen(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.opened[name]
	return ok
}

func invalidHandle(handle models.Handle) error {
	return dErrors.New(dErrors.CodeInvalidHandle, fmt.Sprintf("wallet handle %d is not open", handle))
}

// wrapStoreErr keeps store codes (conflict, not found) and marks the rest internal.
func wrapStoreErr(err error, msg string) error {
	if dErrors.HasCode(err, dErrors.CodeConflict) || dErrors.HasCode(err, dErrors.CodeNotFound) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
