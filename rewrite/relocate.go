package rewrite

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/smartbch/entryguard/types"
)

const (
	jumpGrowth  = 3 // JUMP becomes PUSH2 <table>; JUMP
	jumpiGrowth = 5 // JUMPI becomes SWAP1; PUSH2 <table>; JUMPI; POP

	exitLen       = 4
	dispatchEntry = 13
)

// Patch is an unresolved PUSH2 that must receive the dispatch table offset.
type Patch struct {
	Index int // instruction index in the relocated bytecode
	PC    int // byte offset of the PUSH2 opcode
}

// Relocation is the guarded runtime code with every jump routed through
// one shared dispatch table.
type Relocation struct {
	Bytecode       *types.Bytecode
	Labels         []types.LabelMove
	Patches        []Patch
	ExitOffset     int
	DispatchOffset int
}

// Relocate prepends guard to runtime and rewrites every JUMP and JUMPI into
// a jump to the dispatch table. The original code keeps pushing original
// label offsets; the table maps each of them to the relocated JUMPDEST.
func Relocate(runtime types.Bytes, guard *types.Bytecode) (*Relocation, error) {
	r := &Relocation{Bytecode: types.NewBytecode().Append(guard)}
	out := r.Bytecode
	offset := guard.ByteLength() // output offset of the next block
	ptr := 0                     // input offset of the next block
	for ptr < len(runtime) {
		block, err := types.Decode(runtime.Slice(ptr, len(runtime)), types.StopBlock)
		if err != nil {
			return nil, fmt.Errorf("runtime block at %d: %w", ptr, err)
		}
		size := block.ByteLength()
		last, _ := block.Last()
		body := block.Slice(0, block.Len()-1)
		switch last.Op {
		case vm.JUMPDEST:
			from, to := ptr+size-1, offset+size-1
			if err := fits16(from, to); err != nil {
				return nil, err
			}
			r.Labels = append(r.Labels, types.LabelMove{From: uint16(from), To: uint16(to)})
			out.Append(block)
		case vm.JUMP:
			out.Append(body)
			r.Patches = append(r.Patches, Patch{Index: out.Len(), PC: offset + size - 1})
			out.Add(types.Push2(0), types.Op(vm.JUMP))
			size += jumpGrowth
		case vm.JUMPI:
			out.Append(body)
			out.Add(types.Op(vm.SWAP1))
			r.Patches = append(r.Patches, Patch{Index: out.Len(), PC: offset + size})
			out.Add(types.Push2(0), types.Op(vm.JUMPI), types.Op(vm.POP))
			size += jumpiGrowth
		default:
			out.Append(block)
		}
		ptr += block.ByteLength()
		offset += size
		if !types.IsControlFlow(last.Op) {
			break
		}
	}

	r.ExitOffset = offset
	out.Add(types.Op(vm.JUMPDEST), types.Op(vm.SWAP1), types.Op(vm.POP), types.Op(vm.JUMP))
	offset += exitLen

	r.DispatchOffset = offset
	if err := fits16(r.ExitOffset, r.DispatchOffset); err != nil {
		return nil, err
	}
	out.Add(types.Op(vm.JUMPDEST))
	for _, l := range r.Labels {
		out.Add(
			types.Push2(l.To),
			types.Op(vm.DUP2),
			types.Push2(l.From),
			types.Op(vm.EQ),
			types.Push2(uint16(r.ExitOffset)),
			types.Op(vm.JUMPI),
			types.Op(vm.POP),
		)
	}
	// Only reached when the jump target was not an original JUMPDEST.
	out.Add(types.Op(types.Invalid))
	offset += 1 + dispatchEntry*len(r.Labels) + 1

	for _, p := range r.Patches {
		if err := out.SetData(p.Index, types.FromInt(uint16(r.DispatchOffset))); err != nil {
			return nil, fmt.Errorf("%w: patch at pc %d: %v", types.ErrInvariant, p.PC, err)
		}
	}
	if n := out.ByteLength(); n != offset {
		return nil, fmt.Errorf("%w: relocated code is %d bytes, expected %d", types.ErrInvariant, n, offset)
	}
	return r, nil
}

func fits16(offsets ...int) error {
	for _, off := range offsets {
		if off > math.MaxUint16 {
			return fmt.Errorf("%w: %d", types.ErrCodeTooLarge, off)
		}
	}
	return nil
}
