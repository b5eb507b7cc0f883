package rewrite

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/smartbch/entryguard/types"
)

// EpiloguePolicy selects how the constructor code between CODECOPY and the
// start of the runtime window is validated.
type EpiloguePolicy int

const (
	// EpilogueLabel requires the epilogue to reach a JUMPDEST.
	EpilogueLabel EpiloguePolicy = iota
	// EpiloguePlain requires the epilogue to be free of JUMPDESTs, since
	// widening the CODECOPY pushes would shift them. This is what solc emits.
	EpiloguePlain
)

// Constructor is the analyzed deployment preamble.
type Constructor struct {
	Bytecode    *types.Bytecode // whole constructor, CODECOPY pushes already widened
	LengthIndex int             // the PUSH2 carrying the runtime length, still to be patched
	Offset      int             // original runtime window offset
	Length      int             // original runtime window length
	Runtime     types.Bytes     // code[Offset:]
}

// AnalyzeConstructor finds the CODECOPY that copies the runtime code and
// returns the constructor with its length and offset pushes widened to two
// bytes.
func AnalyzeConstructor(code types.Bytes, epilogue EpiloguePolicy) (*Constructor, error) {
	bc, err := types.Decode(code, types.StopCodeCopy)
	if err != nil {
		return nil, err
	}
	if !bc.EndsWith(vm.CODECOPY) {
		return nil, types.ErrMissingCodeCopy
	}
	pushes := bc.PushIndexes()
	if len(pushes) < 3 {
		return nil, fmt.Errorf("%w: found %d pushes before CODECOPY, need 3", types.ErrPushWidth, len(pushes))
	}
	dest := bc.At(pushes[len(pushes)-1])
	if v, err := dest.Data.Int(); err != nil || v != 0 {
		return nil, fmt.Errorf("%w: %v", types.ErrNonZeroDestination, dest)
	}
	lengthIdx, offsetIdx := pushes[len(pushes)-3], pushes[len(pushes)-2]
	lengthPush, offsetPush := bc.At(lengthIdx), bc.At(offsetIdx)
	for _, ins := range []types.Instruction{lengthPush, offsetPush} {
		if ins.Op != vm.PUSH1 && ins.Op != vm.PUSH2 {
			return nil, fmt.Errorf("%w: %v", types.ErrPushWidth, ins)
		}
	}
	length, _ := lengthPush.Data.Int()
	offset, _ := offsetPush.Data.Int()
	if int(offset)+int(length) != len(code) {
		return nil, fmt.Errorf("%w: offset %d + length %d != %d",
			types.ErrWindowMismatch, offset, length, len(code))
	}
	if int(offset) < bc.ByteLength() {
		return nil, fmt.Errorf("%w: runtime offset %d lies inside the constructor (%d bytes)",
			types.ErrWindowMismatch, offset, bc.ByteLength())
	}

	epi, err := decodeEpilogue(code.Slice(bc.ByteLength(), int(offset)), epilogue)
	if err != nil {
		return nil, err
	}
	bc.Append(epi)
	if bc.ByteLength() != int(offset) {
		return nil, fmt.Errorf("%w: constructor is %d bytes, runtime starts at %d",
			types.ErrInvariant, bc.ByteLength(), offset)
	}

	if lengthPush.Op == vm.PUSH1 {
		newOffset := int(offset) + 1
		if offsetPush.Op == vm.PUSH1 {
			newOffset++
		}
		if newOffset > math.MaxUint16 {
			return nil, fmt.Errorf("%w: runtime offset %d", types.ErrCodeTooLarge, newOffset)
		}
		bc.Set(lengthIdx, types.Push2(0))
		bc.Set(offsetIdx, types.Push2(uint16(newOffset)))
		if bc.ByteLength() != newOffset {
			return nil, fmt.Errorf("%w: widened constructor is %d bytes, offset says %d",
				types.ErrInvariant, bc.ByteLength(), newOffset)
		}
	}

	return &Constructor{
		Bytecode:    bc,
		LengthIndex: lengthIdx,
		Offset:      int(offset),
		Length:      int(length),
		Runtime:     code.Slice(int(offset), len(code)),
	}, nil
}

func decodeEpilogue(window types.Bytes, policy EpiloguePolicy) (*types.Bytecode, error) {
	epi, err := types.Decode(window, types.StopLabel)
	if err != nil {
		return nil, err
	}
	switch policy {
	case EpiloguePlain:
		if epi.EndsWith(vm.JUMPDEST) {
			return nil, fmt.Errorf("%w: at constructor offset +%d", types.ErrEpilogueLabel, epi.ByteLength()-1)
		}
	default:
		if !epi.EndsWith(vm.JUMPDEST) {
			return nil, types.ErrMissingEpilogueLabel
		}
		if n := epi.ByteLength(); n < len(window) {
			rest, err := types.Decode(window.Slice(n, len(window)), types.NoStop)
			if err != nil {
				return nil, err
			}
			epi.Append(rest)
		}
	}
	return epi, nil
}
