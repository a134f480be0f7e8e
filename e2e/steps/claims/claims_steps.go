package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	POSTRaw(path, body string) error
	GET(path string, headers map[string]string) error
	GetLastResponseBody() []byte
	GetHandle() string
}

// RegisterSteps registers claim storage and selection steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &claimSteps{tc: tc}

	ctx.Step(`^I store a claim from issuer "([^"]*)" with schema (\d+) where "([^"]*)" is "([^"]*)"$`, steps.storeClaim)
	ctx.Step(`^I list claims with issuer "([^"]*)"$`, steps.listByIssuer)
	ctx.Step(`^I request claims for the proof request:$`, steps.requestForProofRequest)
	ctx.Step(`^I list (\d+) claims?$`, steps.listedCount)
	ctx.Step(`^attribute "([^"]*)" should match (\d+) claims?$`, steps.attributeMatches)
	ctx.Step(`^predicate "([^"]*)" should match (\d+) claims?$`, steps.predicateMatches)
}

type claimSteps struct {
	tc TestContext
}

func (s *claimSteps) storeClaim(ctx context.Context, issuer string, schema int, name, raw string) error {
	encoded := raw
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		encoded = "1139481716457488690172217916278103335"
	}
	return s.tc.POST("/handles/"+s.tc.GetHandle()+"/claims", map[string]interface{}{
		"issuer_did":    issuer,
		"schema_seq_no": schema,
		"values": map[string][]string{
			name: {raw, encoded},
		},
	})
}

func (s *claimSteps) listByIssuer(ctx context.Context, issuer string) error {
	return s.tc.GET("/handles/"+s.tc.GetHandle()+"/claims?issuer_did="+issuer, nil)
}

func (s *claimSteps) requestForProofRequest(ctx context.Context, doc *godog.DocString) error {
	return s.tc.POSTRaw("/handles/"+s.tc.GetHandle()+"/claims/proof-request", doc.Content)
}

func (s *claimSteps) listedCount(ctx context.Context, want int) error {
	var infos []json.RawMessage
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &infos); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(infos) != want {
		return fmt.Errorf("expected %d claims but got %d", want, len(infos))
	}
	return nil
}

func (s *claimSteps) attributeMatches(ctx context.Context, referent string, want int) error {
	return s.matches("attrs", referent, want)
}

func (s *claimSteps) predicateMatches(ctx context.Context, referent string, want int) error {
	return s.matches("predicates", referent, want)
}

func (s *claimSteps) matches(section, referent string, want int) error {
	var result map[string]map[string][]json.RawMessage
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	infos, ok := result[section][referent]
	if !ok {
		return fmt.Errorf("%s has no key %q", section, referent)
	}
	if len(infos) != want {
		return fmt.Errorf("%s[%q]: expected %d claims but got %d", section, referent, want, len(infos))
	}
	return nil
}
