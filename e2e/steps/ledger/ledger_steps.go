package ledger

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
}

// RegisterSteps registers ledger request builder steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ledgerSteps{tc: tc}

	ctx.Step(`^I build an attrib request from "([^"]*)" for "([^"]*)" with raw:$`, steps.buildAttrib)
	ctx.Step(`^I build a nym request from "([^"]*)" for "([^"]*)" with role "([^"]*)"$`, steps.buildNym)
}

type ledgerSteps struct {
	tc TestContext
}

func (s *ledgerSteps) buildAttrib(ctx context.Context, submitter, target string, raw *godog.DocString) error {
	return s.tc.POST("/ledger/attrib", map[string]interface{}{
		"submitter_did": submitter,
		"target_did":    target,
		"raw":           raw.Content,
	})
}

func (s *ledgerSteps) buildNym(ctx context.Context, submitter, target, role string) error {
	return s.tc.POST("/ledger/nym", map[string]interface{}{
		"submitter_did": submitter,
		"target_did":    target,
		"role":          role,
	})
}
