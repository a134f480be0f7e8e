package validation

import (
	"fmt"

	dErrors "prover/pkg/domain-errors"
)

// MaxBodySize is the default request body cap (1 MiB); proof requests and claims are small JSON documents.
const MaxBodySize = 1 << 20

// Proof request limits.
const (
	// MaxRequestedAttrs bounds the number of requested attribute referents.
	MaxRequestedAttrs = 256

	// MaxRequestedPredicates bounds the number of requested predicate referents.
	MaxRequestedPredicates = 256

	// MaxReferentLength bounds request-local keys such as "attr1_uuid".
	MaxReferentLength = 128

	// MaxAttributeNameLength bounds attribute names in requests and claims.
	MaxAttributeNameLength = 256
)

// Claim limits.
const (
	// MaxClaimValues bounds the attributes carried by one claim.
	MaxClaimValues = 512

	// MaxAttributeValueLength bounds one raw or encoded attribute value.
	MaxAttributeValueLength = 4096
)

// Wallet limits.
const (
	// MaxWalletNameLength bounds wallet and pool names.
	MaxWalletNameLength = 128
)

// CheckCount validates that a collection does not exceed the maximum count.
func CheckCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
