// Package service builds unsigned ledger requests.
package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcutil/base58"

	"prover/internal/ledger/models"
	"prover/internal/platform/metrics"
	dErrors "prover/pkg/domain-errors"
)

const (
	didLength         = 16
	verkeyLength      = 32
	abbreviatedPrefix = "~"
)

// Builder assembles ledger requests. It does not sign or submit them.
type Builder struct {
	now     func() time.Time
	metrics *metrics.Metrics
}

type Option func(*Builder)

// WithClock sets the clock used for reqId.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildNymRequest builds a NYM transaction creating or updating target.
// An empty role leaves the role unchanged.
func (b *Builder) BuildNymRequest(submitter, target, verkey, alias, role string) (*models.Request, error) {
	if err := checkDIDs(submitter, target); err != nil {
		return nil, err
	}
	if verkey != "" {
		if err := ValidateVerkey(verkey); err != nil {
			return nil, err
		}
	}
	op := models.Operation{Type: models.TxnNym, Dest: target, Verkey: verkey, Alias: alias}
	if role != "" {
		code, ok := models.Roles[role]
		if !ok {
			return nil, dErrors.InvalidStructure(fmt.Sprintf("unknown role %q", role))
		}
		op.Role = code
	}
	return b.build(submitter, op), nil
}

// BuildAttribRequest builds an ATTRIB transaction. At least one of hash, raw
// and enc is required; raw must be JSON.
func (b *Builder) BuildAttribRequest(submitter, target, hash, raw, enc string) (*models.Request, error) {
	if err := checkDIDs(submitter, target); err != nil {
		return nil, err
	}
	if hash == "" && raw == "" && enc == "" {
		return nil, dErrors.InvalidStructure("one of hash, raw or enc is required")
	}
	if raw != "" && !json.Valid([]byte(raw)) {
		return nil, dErrors.InvalidStructure("raw must be valid JSON")
	}
	return b.build(submitter, models.Operation{Type: models.TxnAttrib, Dest: target, Hash: hash, Raw: raw, Enc: enc}), nil
}

// BuildGetNymRequest builds a GET_NYM query.
func (b *Builder) BuildGetNymRequest(submitter, target string) (*models.Request, error) {
	if err := checkDIDs(submitter, target); err != nil {
		return nil, err
	}
	return b.build(submitter, models.Operation{Type: models.TxnGetNym, Dest: target}), nil
}

// BuildGetAttribRequest builds a GET_ATTRIB query for the named attribute.
func (b *Builder) BuildGetAttribRequest(submitter, target, data string) (*models.Request, error) {
	if err := checkDIDs(submitter, target); err != nil {
		return nil, err
	}
	if strings.TrimSpace(data) == "" {
		return nil, dErrors.InvalidStructure("data is required")
	}
	return b.build(submitter, models.Operation{Type: models.TxnGetAttrib, Dest: target, Raw: data}), nil
}

func (b *Builder) build(submitter string, op models.Operation) *models.Request {
	if b.metrics != nil {
		b.metrics.IncrementLedgerRequests(op.Type)
	}
	return &models.Request{
		ReqID:      b.now().UnixMicro(),
		Identifier: submitter,
		Operation:  op,
	}
}

func checkDIDs(submitter, target string) error {
	if err := ValidateDID(submitter); err != nil {
		return err
	}
	return ValidateDID(target)
}

// ValidateDID checks that did is base58 encoding 16 bytes.
func ValidateDID(did string) error {
	if n := len(base58.Decode(did)); n != didLength {
		return dErrors.InvalidStructure(fmt.Sprintf("invalid DID %q: expected %d base58 bytes, got %d", did, didLength, n))
	}
	return nil
}

// ValidateVerkey accepts a full 32 byte key or a "~" abbreviated 16 byte key.
func ValidateVerkey(verkey string) error {
	want := verkeyLength
	encoded := verkey
	if strings.HasPrefix(verkey, abbreviatedPrefix) {
		want = didLength
		encoded = strings.TrimPrefix(verkey, abbreviatedPrefix)
	}
	if n := len(base58.Decode(encoded)); n != want {
		return dErrors.InvalidStructure(fmt.Sprintf("invalid verkey %q: expected %d base58 bytes, got %d", verkey, want, n))
	}
	return nil
}
