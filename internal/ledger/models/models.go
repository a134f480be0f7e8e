package models

import (
	"strings"

	dErrors "prover/pkg/domain-errors"
	"prover/pkg/validation"
)

// Transaction types.
const (
	TxnNym       = "1"
	TxnAttrib    = "100"
	TxnGetAttrib = "104"
	TxnGetNym    = "105"
)

// Roles a NYM transaction can grant, keyed by name.
var Roles = map[string]string{
	"TRUSTEE":      "0",
	"STEWARD":      "2",
	"TRUST_ANCHOR": "101",
}

// Request is an unsigned ledger request.
type Request struct {
	ReqID      int64     `json:"reqId"`
	Identifier string    `json:"identifier"`
	Operation  Operation `json:"operation"`
}

// Operation is the transaction payload. Empty optional fields are omitted.
type Operation struct {
	Type   string `json:"type"`
	Dest   string `json:"dest"`
	Verkey string `json:"verkey,omitempty"`
	Alias  string `json:"alias,omitempty"`
	Role   string `json:"role,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Raw    string `json:"raw,omitempty"`
	Enc    string `json:"enc,omitempty"`
}

// NymRequest asks for a NYM transaction.
type NymRequest struct {
	SubmitterDID string `json:"submitter_did" validate:"required"`
	TargetDID    string `json:"target_did" validate:"required"`
	Verkey       string `json:"verkey"`
	Alias        string `json:"alias"`
	Role         string `json:"role"`
}

// Normalize trims identifiers and upper-cases the role name.
func (r *NymRequest) Normalize() {
	if r == nil {
		return
	}
	r.SubmitterDID = strings.TrimSpace(r.SubmitterDID)
	r.TargetDID = strings.TrimSpace(r.TargetDID)
	r.Verkey = strings.TrimSpace(r.Verkey)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

// Validate requires both DIDs.
func (r *NymRequest) Validate() error {
	return validateStruct(r)
}

// AttribRequest asks for an ATTRIB transaction.
type AttribRequest struct {
	SubmitterDID string `json:"submitter_did" validate:"required"`
	TargetDID    string `json:"target_did" validate:"required"`
	Hash         string `json:"hash"`
	Raw          string `json:"raw"`
	Enc          string `json:"enc"`
}

// Normalize trims identifiers.
func (r *AttribRequest) Normalize() {
	if r == nil {
		return
	}
	r.SubmitterDID = strings.TrimSpace(r.SubmitterDID)
	r.TargetDID = strings.TrimSpace(r.TargetDID)
}

// Validate requires both DIDs.
func (r *AttribRequest) Validate() error {
	return validateStruct(r)
}

// GetNymRequest asks for a GET_NYM query.
type GetNymRequest struct {
	SubmitterDID string `json:"submitter_did" validate:"required"`
	TargetDID    string `json:"target_did" validate:"required"`
}

// Validate requires both DIDs.
func (r *GetNymRequest) Validate() error {
	return validateStruct(r)
}

// GetAttribRequest asks for a GET_ATTRIB query.
type GetAttribRequest struct {
	SubmitterDID string `json:"submitter_did" validate:"required"`
	TargetDID    string `json:"target_did" validate:"required"`
	Data         string `json:"data" validate:"required,notblank"`
}

// Validate requires both DIDs and the attribute name.
func (r *GetAttribRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(r any) error {
	if err := validation.Validate(r); err != nil {
		return dErrors.InvalidStructure(err.Error())
	}
	return nil
}
