package store

import (
	"context"
	"sync"

	"prover/internal/anoncreds/models"
)

// InMemory stores claims in memory, keyed by wallet name.
type InMemory struct {
	mu     sync.RWMutex
	claims map[string][]models.Claim
	byID   map[models.ClaimID]string
}

// NewInMemory creates an in-memory claim store.
func NewInMemory() *InMemory {
	return &InMemory{
		claims: make(map[string][]models.Claim),
		byID:   make(map[models.ClaimID]string),
	}
}

// Save appends a claim to the wallet's claims.
func (s *InMemory) Save(_ context.Context, walletName string, claim models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[claim.ID]; exists {
		return duplicateClaim(claim.ID)
	}
	s.claims[walletName] = append(s.claims[walletName], cloneClaim(claim))
	s.byID[claim.ID] = walletName
	return nil
}

// ListByWallet returns a copy of the wallet's claims in insertion order.
func (s *InMemory) ListByWallet(_ context.Context, walletName string) ([]models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.claims[walletName]
	out := make([]models.Claim, len(stored))
	for i, c := range stored {
		out[i] = cloneClaim(c)
	}
	return out, nil
}

// DeleteByWallet removes every claim of the wallet and returns how many were removed.
func (s *InMemory) DeleteByWallet(_ context.Context, walletName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.claims[walletName]
	for _, c := range stored {
		delete(s.byID, c.ID)
	}
	delete(s.claims, walletName)
	return len(stored), nil
}
