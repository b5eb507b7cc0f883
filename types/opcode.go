package types

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// Invalid is the designated invalid instruction. go-ethereum v1.10.7 leaves
// 0xfe out of its opcode table, so executing it fails with
// *vm.ErrInvalidOpCode.
const Invalid = vm.OpCode(0xfe)

type opInfo struct {
	pushLength  int
	controlFlow bool
}

// catalog is indexed by opcode value and filled once from go-ethereum's
// instruction set.
var catalog [256]opInfo

func init() {
	for i := range catalog {
		op := vm.OpCode(i)
		if op.IsPush() {
			catalog[i].pushLength = int(op-vm.PUSH1) + 1
		}
		switch op {
		case vm.JUMP, vm.JUMPI, vm.JUMPDEST:
			catalog[i].controlFlow = true
		}
	}
}

// PushLength returns the immediate operand length of op, 0 for non-push opcodes.
func PushLength(op vm.OpCode) int {
	return catalog[op].pushLength
}

func IsPush(op vm.OpCode) bool {
	return catalog[op].pushLength != 0
}

func IsControlFlow(op vm.OpCode) bool {
	return catalog[op].controlFlow
}

// OpSet is a set of opcodes used to end decoding early.
type OpSet [4]uint64

func NewOpSet(ops ...vm.OpCode) (s OpSet) {
	for _, op := range ops {
		s[op>>6] |= 1 << (op & 63)
	}
	return
}

func (s OpSet) Has(op vm.OpCode) bool {
	return s[op>>6]&(1<<(op&63)) != 0
}

var (
	NoStop       = OpSet{}
	StopCodeCopy = NewOpSet(vm.CODECOPY)
	StopLabel    = NewOpSet(vm.JUMPDEST)
	StopBlock    = NewOpSet(vm.JUMP, vm.JUMPI, vm.JUMPDEST)
)
