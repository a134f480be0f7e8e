package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dErrors "prover/pkg/domain-errors"
	"prover/pkg/validation"
)

// DefaultType is the only wallet storage type.
const DefaultType = "default"

// Handle identifies an opened wallet until it is closed.
type Handle int32

// String returns the handle in base 10.
func (h Handle) String() string {
	return strconv.FormatInt(int64(h), 10)
}

// ParseHandle parses a handle from a path segment. Anything that is not a
// positive 32-bit integer is an invalid handle.
func ParseHandle(s string) (Handle, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidHandle, fmt.Sprintf("invalid wallet handle %q", s))
	}
	return Handle(n), nil
}

// Wallet is a named container of claims, optionally protected by a key.
type Wallet struct {
	Name      string
	PoolName  string
	Type      string
	KeyHash   string
	CreatedAt time.Time
}

// Keyed reports whether the wallet was created with a key.
func (w *Wallet) Keyed() bool {
	return w.KeyHash != ""
}

// CreateRequest creates a wallet.
type CreateRequest struct {
	PoolName string `json:"pool_name" validate:"required,notblank"`
	Name     string `json:"name" validate:"required,notblank"`
	Type     string `json:"type"`
	Key      string `json:"key,omitempty"`
}

// Normalize trims names and applies the default type.
func (r *CreateRequest) Normalize() {
	if r == nil {
		return
	}
	r.PoolName = strings.TrimSpace(r.PoolName)
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	if r.Type == "" {
		r.Type = DefaultType
	}
}

// Validate checks required fields, lengths and the wallet type.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("name", r.Name, validation.MaxWalletNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("pool_name", r.PoolName, validation.MaxWalletNameLength); err != nil {
		return err
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.Type != DefaultType {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown wallet type %q", r.Type))
	}
	return nil
}

// KeyRequest carries the wallet key for open and delete. Wallets created
// without a key are opened and deleted with an empty key.
type KeyRequest struct {
	Key string `json:"key,omitempty"`
}

// Validate rejects a nil request.
func (r *KeyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return nil
}

// OpenResponse returns the handle of an opened wallet.
type OpenResponse struct {
	Handle Handle `json:"handle"`
}

// WalletResponse describes a wallet without its key.
type WalletResponse struct {
	Name      string `json:"name"`
	PoolName  string `json:"pool_name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a wallet into its public representation.
func (w *Wallet) ToResponse() WalletResponse {
	return WalletResponse{
		Name:      w.Name,
		PoolName:  w.PoolName,
		Type:      w.Type,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}
