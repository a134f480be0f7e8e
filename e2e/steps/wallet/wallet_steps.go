package wallet

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetWalletName() string
	GetWalletKey() string
	SetWalletKey(key string)
	GetHandle() string
	SetHandle(handle string)
}

// RegisterSteps registers wallet lifecycle steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &walletSteps{tc: tc}

	ctx.Step(`^I have an open wallet$`, steps.haveOpenWallet)
	ctx.Step(`^I have an open wallet without a key$`, steps.haveOpenWalletWithoutKey)
	ctx.Step(`^I create the wallet$`, steps.createWallet)
	ctx.Step(`^I open the wallet$`, steps.openWallet)
	ctx.Step(`^I open the wallet with key "([^"]*)"$`, steps.openWalletWithKey)
	ctx.Step(`^I close the wallet handle$`, steps.closeHandle)
	ctx.Step(`^I delete the wallet$`, steps.deleteWallet)
}

type walletSteps struct {
	tc TestContext
}

func (s *walletSteps) haveOpenWallet(ctx context.Context) error {
	if err := s.createWallet(ctx); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("create wallet: expected status 201 but got %d", status)
	}
	if err := s.openWallet(ctx); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("open wallet: expected status 200 but got %d", status)
	}
	return nil
}

func (s *walletSteps) haveOpenWalletWithoutKey(ctx context.Context) error {
	s.tc.SetWalletKey("")
	return s.haveOpenWallet(ctx)
}

func (s *walletSteps) createWallet(ctx context.Context) error {
	body := map[string]interface{}{
		"pool_name": "e2e-pool",
		"name":      s.tc.GetWalletName(),
	}
	if key := s.tc.GetWalletKey(); key != "" {
		body["key"] = key
	}
	return s.tc.POST("/wallets", body)
}

// keyBody is empty for wallets created without a key.
func keyBody(key string) map[string]interface{} {
	if key == "" {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"key": key}
}

func (s *walletSteps) openWallet(ctx context.Context) error {
	return s.openWalletWithKey(ctx, s.tc.GetWalletKey())
}

func (s *walletSteps) openWalletWithKey(ctx context.Context, key string) error {
	if err := s.tc.POST("/wallets/"+s.tc.GetWalletName()+"/open", keyBody(key)); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		return nil
	}
	handle, err := s.tc.GetResponseField("handle")
	if err != nil {
		return err
	}
	s.tc.SetHandle(fmt.Sprint(handle))
	return nil
}

func (s *walletSteps) closeHandle(ctx context.Context) error {
	return s.tc.POST("/handles/"+s.tc.GetHandle()+"/close", map[string]interface{}{})
}

func (s *walletSteps) deleteWallet(ctx context.Context) error {
	return s.tc.POST("/wallets/"+s.tc.GetWalletName()+"/delete", keyBody(s.tc.GetWalletKey()))
}
