package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClaimID is the claim_uuid assigned when a claim is stored in a wallet.
type ClaimID string

// NewClaimID generates a fresh claim identifier.
func NewClaimID() ClaimID {
	return ClaimID(uuid.NewString())
}

// String returns the claim ID as a string.
func (id ClaimID) String() string {
	return string(id)
}

// AttributeValue is one claim attribute as issued: the raw value the holder reads and
// the encoded value the issuer signed. On the wire it is a two element array.
type AttributeValue struct {
	Raw     string
	Encoded string
}

// MarshalJSON encodes the value as ["raw", "encoded"].
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{v.Raw, v.Encoded})
}

// UnmarshalJSON decodes ["raw", "encoded"].
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("attribute value must be a [raw, encoded] string pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("attribute value must have 2 elements, got %d", len(pair))
	}
	v.Raw, v.Encoded = pair[0], pair[1]
	return nil
}

// Claim is a credential held in a wallet. The selector only looks at the issuer,
// the schema and the raw attribute values.
type Claim struct {
	ID          ClaimID
	IssuerDID   string
	SchemaSeqNo int
	Values      map[string]AttributeValue
	StoredAt    time.Time
}

// Raw returns the raw value of the named attribute.
func (c Claim) Raw(name string) (string, bool) {
	v, ok := c.Values[name]
	if !ok {
		return "", false
	}
	return v.Raw, true
}

// Int returns the raw value of the named attribute parsed as a base-10 integer.
func (c Claim) Int(name string) (int64, bool) {
	raw, ok := c.Raw(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Info returns the reference handed back to callers for this claim.
func (c Claim) Info() ClaimInfo {
	attrs := make(map[string]string, len(c.Values))
	for name, v := range c.Values {
		attrs[name] = v.Raw
	}
	return ClaimInfo{
		ClaimUUID:   c.ID,
		Attrs:       attrs,
		IssuerDID:   c.IssuerDID,
		SchemaSeqNo: c.SchemaSeqNo,
	}
}

// ClaimInfo references a stored claim in selection and listing results.
type ClaimInfo struct {
	ClaimUUID   ClaimID           `json:"claim_uuid"`
	Attrs       map[string]string `json:"attrs"`
	IssuerDID   string            `json:"issuer_did"`
	SchemaSeqNo int               `json:"schema_seq_no"`
}

// PredicateType is the comparison a predicate asks the holder to prove.
type PredicateType string

// PredicateGE is "attribute >= value", the only supported predicate type.
const PredicateGE PredicateType = "GE"

// ProofRequest asks for revealed attributes and predicates, each under a request-local key.
type ProofRequest struct {
	Nonce               string                    `json:"nonce"`
	Name                string                    `json:"name"`
	Version             string                    `json:"version"`
	RequestedAttrs      OrderedMap[AttributeInfo] `json:"requested_attrs"`
	RequestedPredicates OrderedMap[PredicateInfo] `json:"requested_predicates"`
}

// AttributeInfo describes one requested attribute.
type AttributeInfo struct {
	Name        string  `json:"name" validate:"required,notblank"`
	SchemaSeqNo *int    `json:"schema_seq_no,omitempty"`
	IssuerDID   *string `json:"issuer_did,omitempty"`
}

// PredicateInfo describes one requested predicate.
type PredicateInfo struct {
	AttrName    string        `json:"attr_name" validate:"required,notblank"`
	PType       PredicateType `json:"p_type" validate:"required"`
	Value       int64         `json:"value"`
	SchemaSeqNo *int          `json:"schema_seq_no,omitempty"`
	IssuerDID   *string       `json:"issuer_did,omitempty"`
}

// ClaimsForProofRequest lists candidate claims per requested key, in request order.
type ClaimsForProofRequest struct {
	Attrs      OrderedMap[[]ClaimInfo] `json:"attrs"`
	Predicates OrderedMap[[]ClaimInfo] `json:"predicates"`
}

// ClaimFilter narrows a wallet's claim listing. Zero fields do not filter.
type ClaimFilter struct {
	IssuerDID   string `mapstructure:"issuer_did"`
	SchemaSeqNo *int   `mapstructure:"schema_seq_no"`
}

// StoreClaimRequest carries a claim to be stored in a wallet.
type StoreClaimRequest struct {
	IssuerDID   string                    `json:"issuer_did"`
	SchemaSeqNo int                       `json:"schema_seq_no"`
	Values      map[string]AttributeValue `json:"values"`
}
