//go:build e2e

package e2e

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
)

var opts = godog.Options{
	Output: colors.Colored(os.Stdout),
	Format: "pretty",
	Paths:  []string{"features"},
	Strict: true,
}

func init() {
	godog.BindCommandLineFlags("godog.", &opts)
}

// readyTimeout bounds how long the suite waits for the server under test.
const readyTimeout = 30 * time.Second

func TestFeatures(t *testing.T) {
	flag.Parse()
	opts.TestingT = t

	if err := waitForReady(NewTestContext(), readyTimeout); err != nil {
		t.Fatalf("server not ready: %v", err)
	}

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options:             &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func waitForReady(tc *TestContext, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := tc.GET("/health/ready", nil)
		if err == nil && tc.GetLastResponseStatus() == http.StatusOK {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return err
			}
			return fmt.Errorf("readiness returned %d: %s", tc.GetLastResponseStatus(), tc.LastResponseBody)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := NewTestContext()

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*tc = *NewTestContext()
		return ctx, nil
	})

	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if err != nil {
			fmt.Printf("Scenario failed: %s\nLast Response: %s\n", sc.Name, string(tc.LastResponseBody))
		}
		return ctx, nil
	})

	RegisterSteps(sc, tc)
}
