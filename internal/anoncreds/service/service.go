// Package service answers claim operations against the wallet behind a handle.
package service

import (
	"context"
	"log/slog"
	"time"

	"prover/internal/anoncreds/domain/filter"
	"prover/internal/anoncreds/domain/proofrequest"
	"prover/internal/anoncreds/domain/selector"
	"prover/internal/anoncreds/models"
	"prover/internal/platform/metrics"
	"prover/internal/platform/tracer"
	walletmodels "prover/internal/wallet/models"
	dErrors "prover/pkg/domain-errors"
	"prover/pkg/requestcontext"
)

// ClaimStore persists claims per wallet.
type ClaimStore interface {
	Save(ctx context.Context, walletName string, claim models.Claim) error
	ListByWallet(ctx context.Context, walletName string) ([]models.Claim, error)
}

// WalletResolver maps an open handle to its wallet.
type WalletResolver interface {
	Resolve(ctx context.Context, handle walletmodels.Handle) (*walletmodels.Wallet, error)
}

// Service stores claims and selects them for proof requests. It holds no
// mutable state of its own.
type Service struct {
	claims  ClaimStore
	wallets WalletResolver
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
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

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(claims ClaimStore, wallets WalletResolver, opts ...Option) *Service {
	s := &Service{
		claims:  claims,
		wallets: wallets,
		logger:  slog.Default(),
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoreClaim validates a claim and stores it in the wallet behind handle.
func (s *Service) StoreClaim(ctx context.Context, handle walletmodels.Handle, req *models.StoreClaimRequest) (id models.ClaimID, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanStoreClaim, tracer.Int64(tracer.AttrWalletHandle, int64(handle)))
	defer func() { span.End(err) }()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	wallet, err := s.wallets.Resolve(ctx, handle)
	if err != nil {
		return "", err
	}

	claim := models.Claim{
		ID:          models.NewClaimID(),
		IssuerDID:   req.IssuerDID,
		SchemaSeqNo: req.SchemaSeqNo,
		Values:      req.Values,
		StoredAt:    requestcontext.Now(ctx),
	}
	if err := s.claims.Save(ctx, wallet.Name, claim); err != nil {
		return "", wrapStoreErr(err, "failed to store claim")
	}
	span.SetAttributes(tracer.String(tracer.AttrClaimUUID, claim.ID.String()))

	if s.metrics != nil {
		s.metrics.IncrementClaimsStored()
	}
	s.logger.InfoContext(ctx, "claim stored",
		"claim_uuid", claim.ID,
		"wallet", wallet.Name,
		"schema_seq_no", claim.SchemaSeqNo,
		"request_id", requestcontext.RequestID(ctx),
	)
	return claim.ID, nil
}

// GetClaims lists the wallet's claims narrowed by an optional issuer and schema.
func (s *Service) GetClaims(ctx context.Context, handle walletmodels.Handle, cf models.ClaimFilter) (infos []models.ClaimInfo, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGetClaims, tracer.Int64(tracer.AttrWalletHandle, int64(handle)))
	defer func() { span.End(err) }()

	if cf.SchemaSeqNo != nil && *cf.SchemaSeqNo <= 0 {
		return nil, dErrors.InvalidStructure("schema_seq_no must be a positive integer")
	}
	claims, _, err := s.snapshot(ctx, handle)
	if err != nil {
		return nil, err
	}

	f := filter.ForClaimFilter(cf)
	infos = []models.ClaimInfo{}
	for _, c := range claims {
		if f.Match(c) {
			infos = append(infos, c.Info())
		}
	}
	span.SetAttributes(tracer.Int(tracer.AttrClaimsMatched, len(infos)))
	return infos, nil
}

// GetClaimsForProofRequest parses a proof request and returns the candidate
// claims of the wallet for each requested attribute and predicate. Structural
// errors are reported before the handle is looked at.
func (s *Service) GetClaimsForProofRequest(ctx context.Context, handle walletmodels.Handle, raw []byte) (res *models.ClaimsForProofRequest, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanGetClaimsForProofRequest, tracer.Int64(tracer.AttrWalletHandle, int64(handle)))
	defer func() {
		span.End(err)
		s.observeSelection(err, time.Since(start))
	}()

	req, err := proofrequest.Parse(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid proof request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}
	span.SetAttributes(
		tracer.String(tracer.AttrNonceHash, tracer.HashNonce(req.Nonce)),
		tracer.Int(tracer.AttrRequestedAttrs, req.RequestedAttrs.Len()),
		tracer.Int(tracer.AttrRequestedPredicates, req.RequestedPredicates.Len()),
	)

	claims, wallet, err := s.snapshot(ctx, handle)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrClaimsInWallet, len(claims)))

	res, err = selector.Select(req, claims)
	if err != nil {
		return nil, err
	}

	attrMatches, predMatches := countMatches(res)
	if s.metrics != nil {
		s.metrics.AddClaimsMatched("attr", attrMatches)
		s.metrics.AddClaimsMatched("predicate", predMatches)
	}
	span.SetAttributes(tracer.Int(tracer.AttrClaimsMatched, attrMatches+predMatches))
	s.logger.InfoContext(ctx, "claims selected for proof request",
		"wallet", wallet.Name,
		"proof_request", req.Name,
		"requested_attrs", req.RequestedAttrs.Len(),
		"requested_predicates", req.RequestedPredicates.Len(),
		"attr_matches", attrMatches,
		"predicate_matches", predMatches,
		"request_id", requestcontext.RequestID(ctx),
	)
	return res, nil
}

func (s *Service) snapshot(ctx context.Context, handle walletmodels.Handle) ([]models.Claim, *walletmodels.Wallet, error) {
	wallet, err := s.wallets.Resolve(ctx, handle)
	if err != nil {
		return nil, nil, err
	}
	claims, err := s.claims.ListByWallet(ctx, wallet.Name)
	if err != nil {
		return nil, nil, wrapStoreErr(err, "failed to load claims")
	}
	return claims, wallet, nil
}

func (s *Service) observeSelection(err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case dErrors.HasCode(err, dErrors.CodeInvalidStructure):
		outcome = metrics.OutcomeInvalidStructure
	case dErrors.HasCode(err, dErrors.CodeInvalidHandle):
		outcome = metrics.OutcomeInvalidHandle
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveSelection(outcome, elapsed.Seconds())
}

func countMatches(res *models.ClaimsForProofRequest) (attrs, predicates int) {
	for _, infos := range res.Attrs.All() {
		attrs += len(infos)
	}
	for _, infos := range res.Predicates.All() {
		predicates += len(infos)
	}
	return attrs, predicates
}

// wrapStoreErr keeps conflicts and marks every other store failure internal.
func wrapStoreErr(err error, msg string) error {
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
