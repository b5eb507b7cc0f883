package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// Instruction is one opcode plus its immediate operand. Data is non-nil
// exactly when Op is a push, and then has exactly PushLength(Op) bytes.
type Instruction struct {
	Op   vm.OpCode
	Data Bytes
}

func NewInstruction(op vm.OpCode, data Bytes) (Instruction, error) {
	n := PushLength(op)
	if n == 0 {
		if data != nil {
			return Instruction{}, fmt.Errorf("%w: %v takes no operand", ErrOperandWidth, op)
		}
		return Instruction{Op: op}, nil
	}
	if len(data) != n {
		return Instruction{}, fmt.Errorf("%w: %v needs %d bytes, got %d", ErrOperandWidth, op, n, len(data))
	}
	return Instruction{Op: op, Data: data.Clone()}, nil
}

// Op builds an operand-less instruction. It panics if op is a push.
func Op(op vm.OpCode) Instruction {
	ins, err := NewInstruction(op, nil)
	if err != nil {
		panic(err)
	}
	return ins
}

// Push builds a push instruction. It panics on a width mismatch.
func Push(op vm.OpCode, data Bytes) Instruction {
	ins, err := NewInstruction(op, data)
	if err != nil {
		panic(err)
	}
	return ins
}

// Push2 is PUSH2 with a 16-bit value.
func Push2(v uint16) Instruction {
	return Push(vm.PUSH2, FromInt(v))
}

// WithData returns a copy of ins carrying data, which must keep the width.
func (ins Instruction) WithData(data Bytes) (Instruction, error) {
	if !IsPush(ins.Op) || len(data) != len(ins.Data) {
		return Instruction{}, fmt.Errorf("%w: cannot set %d bytes on %v", ErrOperandWidth, len(data), ins.Op)
	}
	return Instruction{Op: ins.Op, Data: data.Clone()}, nil
}

func (ins Instruction) Len() int {
	return 1 + len(ins.Data)
}

func (ins Instruction) Bytes() Bytes {
	out := make(Bytes, 0, ins.Len())
	out = append(out, byte(ins.Op))
	return append(out, ins.Data...)
}

// Value returns the operand as a 256-bit integer (zero for non-push).
func (ins Instruction) Value() *uint256.Int {
	return new(uint256.Int).SetBytes(ins.Data)
}

func (ins Instruction) String() string {
	if ins.Data == nil {
		return ins.Op.String()
	}
	if v := ins.Value(); v.IsUint64() {
		return fmt.Sprintf("%v %s (%d)", ins.Op, ins.Data.Hex(), v.Uint64())
	}
	return fmt.Sprintf("%v %s", ins.Op, ins.Data.Hex())
}
