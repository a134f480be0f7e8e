// Package filter composes the predicates that decide whether a stored claim
// answers a requested attribute or predicate.
package filter

import (
	"fmt"
	"strings"

	"prover/internal/anoncreds/models"
	dErrors "prover/pkg/domain-errors"
)

// Filter reports whether a claim satisfies a condition.
type Filter interface {
	Match(models.Claim) bool
}

// Func adapts a plain function to Filter.
type Func func(models.Claim) bool

// Match calls f(c).
func (f Func) Match(c models.Claim) bool { return f(c) }

// All matches when every filter matches. An empty All matches everything.
func All(filters ...Filter) Filter {
	return Func(func(c models.Claim) bool {
		for _, f := range filters {
			if !f.Match(c) {
				return false
			}
		}
		return true
	})
}

// HasAttribute matches claims carrying the attribute with a non-empty raw value.
func HasAttribute(name string) Filter {
	return Func(func(c models.Claim) bool {
		raw, ok := c.Raw(name)
		return ok && raw != ""
	})
}

// IntegerAttribute matches claims whose raw value for name parses as an integer.
func IntegerAttribute(name string) Filter {
	return Func(func(c models.Claim) bool {
		_, ok := c.Int(name)
		return ok
	})
}

// SchemaSeqNo matches claims issued against the given schema.
func SchemaSeqNo(seqNo int) Filter {
	return Func(func(c models.Claim) bool {
		return c.SchemaSeqNo == seqNo
	})
}

// IssuerDID matches claims from the given issuer. DIDs compare case-sensitively.
func IssuerDID(did string) Filter {
	return Func(func(c models.Claim) bool {
		return c.IssuerDID == did
	})
}

// Comparator tests a claim value against a requested threshold.
type Comparator func(claimValue, threshold int64) bool

var comparators = map[models.PredicateType]Comparator{
	models.PredicateGE: func(v, t int64) bool { return v >= t },
}

// ComparatorFor resolves the comparator registered for a predicate type.
func ComparatorFor(pType models.PredicateType) (Comparator, error) {
	cmp, ok := comparators[pType]
	if !ok {
		return nil, dErrors.InvalidStructure(fmt.Sprintf("unsupported predicate type %q", pType))
	}
	return cmp, nil
}

// Threshold matches claims whose integer value for name satisfies cmp against value.
// Claims whose value is missing or not an integer never match.
func Threshold(name string, cmp Comparator, value int64) Filter {
	return Func(func(c models.Claim) bool {
		n, ok := c.Int(name)
		return ok && cmp(n, value)
	})
}

// ForAttribute builds the filter for one requested attribute.
func ForAttribute(info models.AttributeInfo) Filter {
	filters := []Filter{HasAttribute(info.Name)}
	return All(append(filters, restrictions(info.SchemaSeqNo, info.IssuerDID)...)...)
}

// ForPredicate builds the filter for one requested predicate.
// An unsupported predicate type is a structural error.
func ForPredicate(info models.PredicateInfo) (Filter, error) {
	cmp, err := ComparatorFor(info.PType)
	if err != nil {
		return nil, err
	}
	filters := []Filter{IntegerAttribute(info.AttrName)}
	filters = append(filters, restrictions(info.SchemaSeqNo, info.IssuerDID)...)
	filters = append(filters, Threshold(info.AttrName, cmp, info.Value))
	return All(filters...), nil
}

// ForClaimFilter builds the filter behind a claim listing.
func ForClaimFilter(cf models.ClaimFilter) Filter {
	var did *string
	if d := strings.TrimSpace(cf.IssuerDID); d != "" {
		did = &d
	}
	return All(restrictions(cf.SchemaSeqNo, did)...)
}

func restrictions(schemaSeqNo *int, issuerDID *string) []Filter {
	var out []Filter
	if schemaSeqNo != nil {
		out = append(out, SchemaSeqNo(*schemaSeqNo))
	}
	if issuerDID != nil {
		out = append(out, IssuerDID(*issuerDID))
	}
	return out
}
