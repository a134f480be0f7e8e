// Package proofrequest turns raw proof request JSON into a validated ProofRequest.
package proofrequest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"prover/internal/anoncreds/models"
	dErrors "prover/pkg/domain-errors"
	"prover/pkg/validation"
)

//go:embed schema.json
var schema []byte

var schemaLoader = gojsonschema.NewBytesLoader(schema)

// Parse decodes and validates a proof request. Every failure carries
// CodeInvalidStructure.
func Parse(raw []byte) (*models.ProofRequest, error) {
	if !json.Valid(raw) {
		return nil, dErrors.InvalidStructure("proof request is not valid JSON")
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var req models.ProofRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidStructure, fmt.Sprintf("invalid proof request: %v", err))
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func validateSchema(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidStructure, "proof request could not be validated")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return dErrors.InvalidStructure("proof request is not valid: " + strings.Join(msgs, "; "))
}

func validate(req *models.ProofRequest) error {
	if err := validation.CheckCount("requested_attrs", req.RequestedAttrs.Len(), validation.MaxRequestedAttrs); err != nil {
		return structural(err)
	}
	if err := validation.CheckCount("requested_predicates", req.RequestedPredicates.Len(), validation.MaxRequestedPredicates); err != nil {
		return structural(err)
	}

	for key, info := range req.RequestedAttrs.All() {
		if err := checkEntry(key, info, info.Name); err != nil {
			return err
		}
	}
	for key, info := range req.RequestedPredicates.All() {
		if err := checkEntry(key, info, info.AttrName); err != nil {
			return err
		}
	}
	return nil
}

func checkEntry(key string, info any, attrName string) error {
	if err := validation.CheckStringLength("referent", key, validation.MaxReferentLength); err != nil {
		return structural(err)
	}
	if err := validation.CheckStringLength("attribute name", attrName, validation.MaxAttributeNameLength); err != nil {
		return structural(err)
	}
	if err := validation.Validate(info); err != nil {
		return dErrors.InvalidStructure(fmt.Sprintf("%s: %s", key, err.Error()))
	}
	return nil
}

func structural(err error) error {
	return dErrors.InvalidStructure(err.Error())
}
