package e2e

import (
	"github.com/cucumber/godog"

	"prover/e2e/steps/claims"
	"prover/e2e/steps/common"
	"prover/e2e/steps/ledger"
	"prover/e2e/steps/wallet"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	wallet.RegisterSteps(ctx, tc)
	claims.RegisterSteps(ctx, tc)
	ledger.RegisterSteps(ctx, tc)
}
