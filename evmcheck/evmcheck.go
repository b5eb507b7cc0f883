package evmcheck

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/tendermint/tendermint/libs/log"
)

const GasLimit = uint64(30_000_000)

var (
	DefaultDeployer = common.HexToAddress("0xdeb0")
	Stranger        = common.HexToAddress("0x5a5a")

	ErrDeployFailed = errors.New("deployment failed")
)

type Status int

const (
	Success Status = iota
	Reverted
	Invalid
	Failed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Reverted:
		return "revert"
	case Invalid:
		return "invalid"
	}
	return "error"
}

func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{Success, Reverted, Invalid, Failed} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Outcome is the observable result of one call.
type Outcome struct {
	Status  Status
	Output  []byte
	Err     error
	Storage map[common.Hash]common.Hash
	Trace   []uint64 // pcs executed in the called frame
}

func classify(err error) Status {
	var invalid *vm.ErrInvalidOpCode
	switch {
	case err == nil:
		return Success
	case errors.Is(err, vm.ErrExecutionReverted):
		return Reverted
	case errors.As(err, &invalid):
		return Invalid
	}
	return Failed
}

// Contract is code deployed into its own in-memory state.
type Contract struct {
	Address common.Address
	Code    []byte
	cfg     *runtime.Config
}

// Deploy runs initCode as a creation transaction from deployer.
func Deploy(initCode []byte, deployer common.Address) (*Contract, error) {
	cfg := &runtime.Config{Origin: deployer, GasLimit: GasLimit}
	code, addr, _, err := runtime.Create(initCode, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeployFailed, err)
	}
	return &Contract{Address: addr, Code: code, cfg: cfg}, nil
}

// Call executes input against the contract with the given caller. Callers
// are funded on demand so value transfers do not fail on balance.
func (c *Contract) Call(caller common.Address, input []byte, value *big.Int, slots []common.Hash) Outcome {
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() > 0 {
		c.cfg.State.AddBalance(caller, value)
	}
	tracer := vm.NewStructLogger(nil)
	c.cfg.Origin = caller
	c.cfg.Value = value
	c.cfg.EVMConfig = vm.Config{Debug: true, Tracer: tracer}
	ret, _, err := runtime.Call(c.Address, input, c.cfg)
	c.cfg.EVMConfig = vm.Config{}

	out := Outcome{
		Status:  classify(err),
		Output:  common.CopyBytes(ret),
		Err:     err,
		Storage: make(map[common.Hash]common.Hash, len(slots)),
	}
	for _, l := range tracer.StructLogs() {
		if l.Depth == 1 {
			out.Trace = append(out.Trace, l.Pc)
		}
	}
	for _, slot := range slots {
		out.Storage[slot] = c.cfg.State.GetState(c.Address, slot)
	}
	return out
}

// Call is one probe sent to both contracts.
type Call struct {
	Caller common.Address
	Input  []byte
	Value  *big.Int
}

type Mismatch struct {
	Call      Call
	Original  Outcome
	Rewritten Outcome
	Reason    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("caller %s input %x: %s (original %v %x, rewritten %v %x)",
		m.Call.Caller.Hex(), m.Call.Input, m.Reason,
		m.Original.Status, m.Original.Output, m.Rewritten.Status, m.Rewritten.Output)
}

// Checker deploys an original and a rewritten contract side by side and
// verifies that the entrypoint sees identical behavior while everybody else
// is turned away by the guard.
type Checker struct {
	Entrypoint         common.Address
	AllowEmptyCalldata bool
	Deployer           common.Address
	Slots              []common.Hash
	logger             log.Logger
}

func NewChecker(entrypoint common.Address, allowEmptyCalldata bool, logger log.Logger) *Checker {
	return &Checker{
		Entrypoint:         entrypoint,
		AllowEmptyCalldata: allowEmptyCalldata,
		Deployer:           DefaultDeployer,
		Slots:              []common.Hash{{}, common.BigToHash(big.NewInt(1)), common.BigToHash(big.NewInt(2))},
		logger:             logger.With("module", "evmcheck"),
	}
}

// DefaultProbes returns a small call set covering the entrypoint and a
// stranger, with and without calldata.
func (c *Checker) DefaultProbes() []Call {
	return []Call{
		{Caller: c.Entrypoint},
		{Caller: c.Entrypoint, Input: []byte{0, 0, 0, 0}},
		{Caller: c.Entrypoint, Input: []byte{0xff, 0xff, 0xff, 0xff}},
		{Caller: Stranger},
		{Caller: Stranger, Input: []byte{0x12, 0x34, 0x56, 0x78}},
	}
}

func (c *Checker) Compare(original, rewritten []byte, calls []Call) ([]Mismatch, error) {
	orig, err := Deploy(original, c.Deployer)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	guarded, err := Deploy(rewritten, c.Deployer)
	if err != nil {
		return nil, fmt.Errorf("rewritten: %w", err)
	}
	c.logger.Debug("deployed", "original", len(orig.Code), "rewritten", len(guarded.Code))

	var mismatches []Mismatch
	for _, call := range calls {
		got := guarded.Call(call.Caller, call.Input, call.Value, c.Slots)
		m := Mismatch{Call: call, Rewritten: got}
		if call.Caller == c.Entrypoint {
			m.Original = orig.Call(call.Caller, call.Input, call.Value, c.Slots)
			m.Reason = sameOutcome(m.Original, got)
		} else {
			m.Reason = c.guarded(call, got)
		}
		if m.Reason != "" {
			c.logger.Debug("mismatch", "detail", m.String())
			mismatches = append(mismatches, m)
		}
	}
	return mismatches, nil
}

func (c *Checker) guarded(call Call, got Outcome) string {
	want := Reverted
	if c.AllowEmptyCalldata && len(call.Input) == 0 {
		want = Success
	}
	if got.Status != want {
		return fmt.Sprintf("guard let a stranger through: want %v, got %v", want, got.Status)
	}
	if len(got.Output) != 0 {
		return "guard returned data"
	}
	return ""
}

// Aborted reports an exceptional halt. A bad jump in the original code shows
// up as the dispatch table's INVALID trap in the rewritten code.
func (o Outcome) Aborted() bool {
	return o.Status == Invalid || o.Status == Failed
}

func sameOutcome(a, b Outcome) string {
	if a.Aborted() && b.Aborted() {
		return ""
	}
	if a.Status != b.Status {
		return "status differs"
	}
	if !bytes.Equal(a.Output, b.Output) {
		return "output differs"
	}
	for slot, v := range a.Storage {
		if b.Storage[slot] != v {
			return fmt.Sprintf("storage slot %s differs", slot.Hex())
		}
	}
	return ""
}
