package testcase

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/smartbch/entryguard/evmcheck"
	"github.com/smartbch/entryguard/rewrite"
)

// Runner rewrites each case's code and executes its calls against the
// rewritten contract.
type Runner struct {
	logger log.Logger
}

func NewRunner(logger log.Logger) *Runner {
	return &Runner{logger: logger.With("module", "testcase")}
}

// Run implements RunTestCaseFn.
func (r *Runner) Run(filename string, theCase *TestCase) error {
	cfg := rewrite.Config{
		Entrypoint:         common.Address(theCase.Entrypoint),
		AllowEmptyCalldata: theCase.Bypass,
	}
	var (
		res *rewrite.Result
		err error
	)
	cfg.Profile, err = rewrite.ParseProfile(theCase.Profile)
	if err == nil {
		res, err = rewrite.New(cfg, r.logger).Rewrite(theCase.Code)
	}
	if theCase.RewriteError != "" {
		if err == nil {
			return fmt.Errorf("rewrite succeeded, want error containing %q", theCase.RewriteError)
		}
		if !strings.Contains(err.Error(), theCase.RewriteError) {
			return fmt.Errorf("rewrite error %q does not contain %q", err, theCase.RewriteError)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	contract, err := evmcheck.Deploy(res.Code, evmcheck.DefaultDeployer)
	if err != nil {
		return err
	}
	for i, call := range theCase.Calls {
		if err := r.checkCall(contract, call); err != nil {
			return fmt.Errorf("call #%d: %w", i, err)
		}
	}
	r.logger.Debug("case passed", "file", filename, "name", theCase.Name, "calls", len(theCase.Calls))

	// The entrypoint must not be able to tell the two contracts apart.
	checker := evmcheck.NewChecker(cfg.Entrypoint, cfg.AllowEmptyCalldata, r.logger)
	probes := make([]evmcheck.Call, 0, len(theCase.Calls))
	for _, call := range theCase.Calls {
		probes = append(probes, evmcheck.Call{
			Caller: common.Address(call.Caller),
			Input:  call.Input,
			Value:  call.BigValue(),
		})
	}
	mismatches, err := checker.Compare(theCase.Code, res.Code, probes)
	if err != nil {
		return err
	}
	if len(mismatches) != 0 {
		return errors.New(mismatches[0].String())
	}
	return nil
}

func (r *Runner) checkCall(contract *evmcheck.Contract, call *Call) error {
	want, err := evmcheck.ParseStatus(call.Expect)
	if err != nil {
		return err
	}
	slots := make([]common.Hash, 0, len(call.Values))
	for k := range call.Values {
		slots = append(slots, common.Hash(k))
	}
	got := contract.Call(common.Address(call.Caller), call.Input, call.BigValue(), slots)
	if got.Status != want {
		return fmt.Errorf("status %v, want %v (%v)", got.Status, want, got.Err)
	}
	if call.Output != nil && !bytes.Equal(got.Output, call.Output) {
		return fmt.Errorf("output %x, want %x", got.Output, call.Output)
	}
	for k, v := range call.Values {
		if got.Storage[common.Hash(k)] != common.Hash(v) {
			return fmt.Errorf("slot %x is %s, want %x", k, got.Storage[common.Hash(k)].Hex(), v)
		}
	}
	return nil
}
