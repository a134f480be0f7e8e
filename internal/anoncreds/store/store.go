// Package store persists claims per wallet and hands out insertion-ordered snapshots.
package store

import (
	"fmt"

	"prover/internal/anoncreds/models"
	dErrors "prover/pkg/domain-errors"
)

func duplicateClaim(id models.ClaimID) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("claim %s already stored", id))
}

func cloneClaim(c models.Claim) models.Claim {
	values := make(map[string]models.AttributeValue, len(c.Values))
	for k, v := range c.Values {
		values[k] = v
	}
	c.Values = values
	return c
}
