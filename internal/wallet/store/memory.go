// Package store persists wallet records.
package store

import (
	"context"
	"fmt"
	"sync"

	"prover/internal/wallet/models"
	dErrors "prover/pkg/domain-errors"
)

// InMemory stores wallets in memory.
type InMemory struct {
	mu      sync.RWMutex
	wallets map[string]models.Wallet
}

// NewInMemory creates an in-memory wallet store.
func NewInMemory() *InMemory {
	return &InMemory{wallets: make(map[string]models.Wallet)}
}

// Create adds a wallet if its name is free.
func (s *InMemory) Create(_ context.Context, w *models.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[w.Name]; exists {
		return walletExists(w.Name)
	}
	s.wallets[w.Name] = *w
	return nil
}

// FindByName returns the named wallet.
func (s *InMemory) FindByName(_ context.Context, name string) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[name]
	if !ok {
		return nil, walletNotFound(name)
	}
	return &w, nil
}

// Delete removes the named wallet.
func (s *InMemory) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[name]; !ok {
		return walletNotFound(name)
	}
	delete(s.wallets, name)
	return nil
}

func walletExists(name string) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("wallet %q already exists", name))
}

func walletNotFound(name string) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("wallet %q not found", name))
}
