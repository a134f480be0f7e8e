package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prover/internal/anoncreds/models"
	dErrors "prover/pkg/domain-errors"
)

const issuer = "NcYxiDXkpYi6ov5FcYDi1e"

func testClaim() models.Claim {
	return models.Claim{
		ID:          "claim-1",
		IssuerDID:   issuer,
		SchemaSeqNo: 1,
		Values: map[string]models.AttributeValue{
			"name":   {Raw: "Alex", Encoded: "1139481716457488690172217916278103335"},
			"sex":    {Raw: "male", Encoded: "5944657099558967239210949258394887428692050081607692519917050011144233115103"},
			"age":    {Raw: "28", Encoded: "28"},
			"height": {Raw: "175", Encoded: "175"},
			"empty":  {Raw: "", Encoded: ""},
		},
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestPrimitives(t *testing.T) {
	c := testClaim()

	assert.True(t, HasAttribute("name").Match(c))
	assert.False(t, HasAttribute("missing").Match(c))
	assert.False(t, HasAttribute("empty").Match(c), "empty raw values do not count")

	assert.True(t, IntegerAttribute("age").Match(c))
	assert.False(t, IntegerAttribute("name").Match(c))

	assert.True(t, SchemaSeqNo(1).Match(c))
	assert.False(t, SchemaSeqNo(2).Match(c))

	assert.True(t, IssuerDID(issuer).Match(c))
	assert.False(t, IssuerDID("ncyxidxkpyi6ov5fcydi1e").Match(c), "issuer match is case-sensitive")

	assert.True(t, All().Match(c))
	assert.False(t, All(SchemaSeqNo(1), SchemaSeqNo(2)).Match(c))
}

func TestComparatorFor(t *testing.T) {
	cmp, err := ComparatorFor(models.PredicateGE)
	require.NoError(t, err)
	assert.True(t, cmp(18, 18))
	assert.True(t, cmp(28, 18))
	assert.False(t, cmp(17, 18))

	_, err = ComparatorFor("LE")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure))
}

func TestForAttribute(t *testing.T) {
	c := testClaim()
	tests := []struct {
		name string
		info models.AttributeInfo
		want bool
	}{
		{"name only", models.AttributeInfo{Name: "name"}, true},
		{"matching schema", models.AttributeInfo{Name: "name", SchemaSeqNo: intPtr(1)}, true},
		{"other schema", models.AttributeInfo{Name: "name", SchemaSeqNo: intPtr(2)}, false},
		{"matching issuer", models.AttributeInfo{Name: "name", IssuerDID: strPtr(issuer)}, true},
		{"other issuer", models.AttributeInfo{Name: "name", IssuerDID: strPtr("other")}, false},
		{"missing attribute", models.AttributeInfo{Name: "phone"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForAttribute(tt.info).Match(c))
		})
	}
}

func TestForPredicate(t *testing.T) {
	c := testClaim()
	tests := []struct {
		name string
		info models.PredicateInfo
		want bool
	}{
		{"threshold met", models.PredicateInfo{AttrName: "age", PType: models.PredicateGE, Value: 18}, true},
		{"threshold equal", models.PredicateInfo{AttrName: "age", PType: models.PredicateGE, Value: 28}, true},
		{"threshold not met", models.PredicateInfo{AttrName: "age", PType: models.PredicateGE, Value: 58}, false},
		{"non-integer value skipped", models.PredicateInfo{AttrName: "name", PType: models.PredicateGE, Value: 0}, false},
		{"other schema", models.PredicateInfo{AttrName: "age", PType: models.PredicateGE, Value: 18, SchemaSeqNo: intPtr(2)}, false},
		{"other issuer", models.PredicateInfo{AttrName: "age", PType: models.PredicateGE, Value: 18, IssuerDID: strPtr("other")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ForPredicate(tt.info)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(c))
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ForPredicate(models.PredicateInfo{AttrName: "age", PType: "LE", Value: 18})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure))
	})
}

func TestForClaimFilter(t *testing.T) {
	c := testClaim()
	assert.True(t, ForClaimFilter(models.ClaimFilter{}).Match(c))
	assert.True(t, ForClaimFilter(models.ClaimFilter{IssuerDID: issuer, SchemaSeqNo: intPtr(1)}).Match(c))
	assert.False(t, ForClaimFilter(models.ClaimFilter{IssuerDID: "other"}).Match(c))
	assert.False(t, ForClaimFilter(models.ClaimFilter{SchemaSeqNo: intPtr(3)}).Match(c))
}
