package rewrite

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/smartbch/entryguard/types"
)

// DefaultEntrypoint is used when no entrypoint is configured.
var DefaultEntrypoint = common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff")

const (
	// GuardLen is the encoded size of the strict guard.
	GuardLen = 31
	// BypassGuardLen is the encoded size of the guard that lets calls with
	// empty calldata through.
	BypassGuardLen = 37
)

// Guard returns the access-control prologue. Calls whose CALLER is not
// entrypoint revert with empty output. With allowEmptyCalldata set, such
// calls stop successfully instead when they carry no calldata, so plain
// value transfers keep working.
func Guard(entrypoint common.Address, allowEmptyCalldata bool) *types.Bytecode {
	head := []types.Instruction{
		types.Op(vm.CALLER),
		types.Push(vm.PUSH20, entrypoint.Bytes()),
		types.Op(vm.EQ),
	}
	revert := []types.Instruction{
		types.Push(vm.PUSH1, types.Zero(1)),
		types.Op(vm.DUP1),
		types.Op(vm.REVERT),
	}
	if !allowEmptyCalldata {
		return types.NewBytecode(head...).Add(
			types.Push(vm.PUSH1, types.Bytes{GuardLen - 1}),
			types.Op(vm.JUMPI),
		).Add(revert...).Add(types.Op(vm.JUMPDEST))
	}
	return types.NewBytecode(head...).Add(
		types.Push(vm.PUSH1, types.Bytes{BypassGuardLen - 1}),
		types.Op(vm.JUMPI),
		types.Op(vm.CALLDATASIZE),
		types.Push(vm.PUSH1, types.Bytes{0x1f}),
		types.Op(vm.JUMPI),
		types.Op(vm.STOP),
		types.Op(vm.JUMPDEST),
	).Add(revert...).Add(types.Op(vm.JUMPDEST))
}

// ParseEntrypoint converts raw bytes into an address, requiring exactly 20
// bytes.
func ParseEntrypoint(bz types.Bytes) (common.Address, error) {
	if len(bz) != common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: got %d bytes", types.ErrEntrypointLength, len(bz))
	}
	return common.BytesToAddress(bz), nil
}
