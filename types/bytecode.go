package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/core/vm"
)

// Bytecode is an ordered instruction sequence. Sub-sequences are always
// copies, so editing one never affects another.
type Bytecode struct {
	elements []Instruction
}

func NewBytecode(ins ...Instruction) *Bytecode {
	bc := &Bytecode{elements: make([]Instruction, 0, len(ins))}
	return bc.Add(ins...)
}

// Decode tokenizes code from offset 0. Decoding ends at the end of code or
// right after the first instruction whose opcode is in stop.
func Decode(code Bytes, stop OpSet) (*Bytecode, error) {
	bc := &Bytecode{}
	pc := 0
	for pc < len(code) {
		op := vm.OpCode(code[pc])
		ins := Instruction{Op: op}
		if n := PushLength(op); n > 0 {
			if pc+1+n > len(code) {
				return nil, fmt.Errorf("%w: %v at pc %d needs %d bytes, %d left",
					ErrTruncatedInstruction, op, pc, n, len(code)-pc-1)
			}
			ins.Data = code.Slice(pc+1, pc+1+n)
		}
		bc.elements = append(bc.elements, ins)
		pc += ins.Len()
		if stop.Has(op) {
			break
		}
	}
	return bc, nil
}

// Disassemble renders code as a listing, one instruction per line.
func Disassemble(code Bytes) (string, error) {
	bc, err := Decode(code, NoStop)
	if err != nil {
		return "", err
	}
	return bc.String(), nil
}

func (bc *Bytecode) Len() int {
	return len(bc.elements)
}

func (bc *Bytecode) At(i int) Instruction {
	return bc.elements[i]
}

// Last returns the final instruction, if any.
func (bc *Bytecode) Last() (Instruction, bool) {
	if len(bc.elements) == 0 {
		return Instruction{}, false
	}
	return bc.elements[len(bc.elements)-1], true
}

// EndsWith reports whether the final instruction is op.
func (bc *Bytecode) EndsWith(op vm.OpCode) bool {
	last, ok := bc.Last()
	return ok && last.Op == op
}

func (bc *Bytecode) Set(i int, ins Instruction) {
	bc.elements[i] = ins
}

// SetData replaces the operand of the i-th instruction, keeping its width.
func (bc *Bytecode) SetData(i int, data Bytes) error {
	ins, err := bc.elements[i].WithData(data)
	if err != nil {
		return err
	}
	bc.elements[i] = ins
	return nil
}

// Slice returns a copy of the instructions in [from, to).
func (bc *Bytecode) Slice(from, to int) *Bytecode {
	out := &Bytecode{elements: make([]Instruction, to-from)}
	copy(out.elements, bc.elements[from:to])
	return out
}

func (bc *Bytecode) Add(ins ...Instruction) *Bytecode {
	bc.elements = append(bc.elements, ins...)
	return bc
}

func (bc *Bytecode) Append(others ...*Bytecode) *Bytecode {
	for _, other := range others {
		bc.elements = append(bc.elements, other.elements...)
	}
	return bc
}

// PushIndexes lists the positions of all push instructions in order.
func (bc *Bytecode) PushIndexes() []int {
	var idxs []int
	for i, ins := range bc.elements {
		if IsPush(ins.Op) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// ByteLength is the encoded size: one byte per opcode plus operands.
func (bc *Bytecode) ByteLength() int {
	n := 0
	for _, ins := range bc.elements {
		n += ins.Len()
	}
	return n
}

func (bc *Bytecode) Encode() Bytes {
	out := make(Bytes, 0, bc.ByteLength())
	for _, ins := range bc.elements {
		out = append(out, byte(ins.Op))
		out = append(out, ins.Data...)
	}
	return out
}

func (bc *Bytecode) String() string {
	var sb strings.Builder
	pc := 0
	for _, ins := range bc.elements {
		fmt.Fprintf(&sb, "%05x: %v\n", pc, ins)
		pc += ins.Len()
	}
	return sb.String()
}
