// Package selector matches a proof request against a snapshot of stored claims.
package selector

import (
	"prover/internal/anoncreds/domain/filter"
	"prover/internal/anoncreds/models"
)

// Select returns, for every requested attribute and predicate key, the claims
// that can answer it. Keys keep request order and claims keep snapshot order.
// Every key is present; keys without candidates map to an empty list.
//
// Predicate types are resolved before any claim is inspected, so an unsupported
// type fails the call without a partial result.
func Select(req *models.ProofRequest, claims []models.Claim) (*models.ClaimsForProofRequest, error) {
	predicateFilters := make([]filter.Filter, 0, req.RequestedPredicates.Len())
	for _, info := range req.RequestedPredicates.All() {
		f, err := filter.ForPredicate(info)
		if err != nil {
			return nil, err
		}
		predicateFilters = append(predicateFilters, f)
	}

	res := &models.ClaimsForProofRequest{}
	for key, info := range req.RequestedAttrs.All() {
		res.Attrs.Set(key, collect(filter.ForAttribute(info), claims))
	}
	i := 0
	for key := range req.RequestedPredicates.All() {
		res.Predicates.Set(key, collect(predicateFilters[i], claims))
		i++
	}
	return res, nil
}

func collect(f filter.Filter, claims []models.Claim) []models.ClaimInfo {
	out := []models.ClaimInfo{}
	for _, c := range claims {
		if f.Match(c) {
			out = append(out, c.Info())
		}
	}
	return out
}
