package models

import (
	"fmt"
	"strings"

	dErrors "prover/pkg/domain-errors"
	"prover/pkg/validation"
)

// Normalize trims the issuer DID.
func (r *StoreClaimRequest) Normalize() {
	if r == nil {
		return
	}
	r.IssuerDID = strings.TrimSpace(r.IssuerDID)
}

// Validate checks the claim shape. Failures carry CodeInvalidStructure.
func (r *StoreClaimRequest) Validate() error {
	if r == nil {
		return dErrors.InvalidStructure("claim is required")
	}
	if r.IssuerDID == "" {
		return dErrors.InvalidStructure("issuer_did is required")
	}
	if r.SchemaSeqNo <= 0 {
		return dErrors.InvalidStructure("schema_seq_no must be a positive integer")
	}
	if len(r.Values) == 0 {
		return dErrors.InvalidStructure("values must contain at least one attribute")
	}
	if err := validation.CheckCount("claim values", len(r.Values), validation.MaxClaimValues); err != nil {
		return dErrors.InvalidStructure(err.Error())
	}
	for name, v := range r.Values {
		if strings.TrimSpace(name) == "" {
			return dErrors.InvalidStructure("attribute names must not be blank")
		}
		if err := validation.CheckStringLength("attribute name", name, validation.MaxAttributeNameLength); err != nil {
			return dErrors.InvalidStructure(err.Error())
		}
		if len(v.Raw) > validation.MaxAttributeValueLength || len(v.Encoded) > validation.MaxAttributeValueLength {
			return dErrors.InvalidStructure(fmt.Sprintf("value of %s exceeds max length of %d", name, validation.MaxAttributeValueLength))
		}
	}
	return nil
}
