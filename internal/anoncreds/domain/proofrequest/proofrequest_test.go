package proofrequest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prover/internal/anoncreds/models"
	dErrors "prover/pkg/domain-errors"
)

func TestParse(t *testing.T) {
	t.Run("full request keeps key order", func(t *testing.T) {
		raw := `{
			"nonce": "123432421212",
			"name": "proof_req_1",
			"version": "0.1",
			"requested_attrs": {
				"attr2_uuid": {"schema_seq_no": 1, "name": "sex"},
				"attr1_uuid": {"name": "name", "issuer_did": "NcYxiDXkpYi6ov5FcYDi1e"}
			},
			"requested_predicates": {
				"predicate1_uuid": {"attr_name": "age", "p_type": "GE", "value": 18}
			}
		}`
		req, err := Parse([]byte(raw))
		require.NoError(t, err)

		assert.Equal(t, "123432421212", req.Nonce)
		assert.Equal(t, []string{"attr2_uuid", "attr1_uuid"}, req.RequestedAttrs.Keys())

		attr, ok := req.RequestedAttrs.Get("attr2_uuid")
		require.True(t, ok)
		require.NotNil(t, attr.SchemaSeqNo)
		assert.Equal(t, 1, *attr.SchemaSeqNo)
		assert.Nil(t, attr.IssuerDID)

		pred, ok := req.RequestedPredicates.Get("predicate1_uuid")
		require.True(t, ok)
		assert.Equal(t, models.PredicateGE, pred.PType)
		assert.Equal(t, int64(18), pred.Value)
	})

	t.Run("empty maps are accepted", func(t *testing.T) {
		req, err := Parse([]byte(`{"nonce":"1","name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{}}`))
		require.NoError(t, err)
		assert.Equal(t, 0, req.RequestedAttrs.Len())
		assert.Equal(t, 0, req.RequestedPredicates.Len())
	})

	t.Run("unknown top-level fields are ignored", func(t *testing.T) {
		_, err := Parse([]byte(`{"nonce":"1","name":"n","version":"0.1","extra":true,"requested_attrs":{},"requested_predicates":{}}`))
		assert.NoError(t, err)
	})
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"nonce":`},
		{"not an object", `[]`},
		{"missing requested_attrs", `{"nonce":"1","name":"n","version":"0.1","requested_predicates":{}}`},
		{"missing requested_predicates", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{}}`},
		{"missing nonce", `{"name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{}}`},
		{"attrs not an object", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":[],"requested_predicates":{}}`},
		{"attribute without name", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{"a":{"schema_seq_no":1}},"requested_predicates":{}}`},
		{"blank attribute name", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{"a":{"name":"  "}},"requested_predicates":{}}`},
		{"string schema_seq_no", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{"a":{"name":"x","schema_seq_no":"1"}},"requested_predicates":{}}`},
		{"unsupported p_type", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{"p":{"attr_name":"age","p_type":"LE","value":18}}}`},
		{"non-integer value", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{"p":{"attr_name":"age","p_type":"GE","value":"18"}}}`},
		{"fractional value", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{"p":{"attr_name":"age","p_type":"GE","value":18.5}}}`},
		{"missing value", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{},"requested_predicates":{"p":{"attr_name":"age","p_type":"GE"}}}`},
		{"duplicate key", `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{"a":{"name":"x"},"a":{"name":"y"}},"requested_predicates":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure), "got %v", err)
		})
	}
}

func TestParseLimits(t *testing.T) {
	t.Run("too many attributes", func(t *testing.T) {
		entries := make([]string, 0, 257)
		for i := range 257 {
			entries = append(entries, fmt.Sprintf(`"attr%d":{"name":"name"}`, i))
		}
		raw := `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{` + strings.Join(entries, ",") + `},"requested_predicates":{}}`
		_, err := Parse([]byte(raw))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure))
	})

	t.Run("referent too long", func(t *testing.T) {
		key := strings.Repeat("k", 129)
		raw := `{"nonce":"1","name":"n","version":"0.1","requested_attrs":{"` + key + `":{"name":"name"}},"requested_predicates":{}}`
		_, err := Parse([]byte(raw))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure))
	})
}
