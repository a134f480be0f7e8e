// Package tracer provides a small tracing abstraction for the prover services.
//
// Services depend on the Tracer interface rather than on OpenTelemetry directly.
// Implementations:
//   - NoopTracer: for tests and when tracing is disabled
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child operations.
	//
	//   ctx, span := t.Start(ctx, tracer.SpanGetClaimsForProofRequest,
	//       tracer.Int64(tracer.AttrWalletHandle, int64(handle)),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an int attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashNonce shortens a proof request nonce to a stable correlation token so
// spans can be joined without recording the verifier's nonce.
func HashNonce(nonce string) string {
	if nonce == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(nonce))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanGetClaimsForProofRequest = "anoncreds.get_claims_for_proof_request"
	SpanGetClaims                = "anoncreds.get_claims"
	SpanStoreClaim               = "anoncreds.store_claim"
	SpanSelect                   = "anoncreds.select"
)

// Attribute keys.
const (
	AttrWalletHandle        = "wallet.handle"
	AttrWalletName          = "wallet.name"
	AttrNonceHash           = "proof_request.nonce_hash"
	AttrRequestedAttrs      = "proof_request.requested_attrs"
	AttrRequestedPredicates = "proof_request.requested_predicates"
	AttrClaimsInWallet      = "wallet.claims"
	AttrClaimsMatched       = "claims.matched"
	AttrClaimUUID           = "claim.uuid"
)
