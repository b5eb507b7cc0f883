package types

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/seehuhn/mt19937"
	"github.com/stretchr/testify/require"
)

// randomProgram returns well-formed code: every push carries its full
// operand.
func randomProgram(rand *mt19937.MT19937, size int) Bytes {
	var code Bytes
	for len(code) < size {
		op := byte(rand.Int63() % 256)
		code = append(code, op)
		for i := 0; i < PushLength(vm.OpCode(op)); i++ {
			code = append(code, byte(rand.Int63()%256))
		}
	}
	return code
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	rand := mt19937.New()
	rand.Seed(42)
	for i := 0; i < 200; i++ {
		code := randomProgram(rand, int(rand.Int63()%300))
		bc, err := Decode(code, NoStop)
		require.NoError(t, err)
		require.Equal(t, len(code), bc.ByteLength())
		require.True(t, bytes.Equal(code, bc.Encode()))

		n := 0
		for j := 0; j < bc.Len(); j++ {
			ins := bc.At(j)
			require.Equal(t, PushLength(ins.Op), len(ins.Data))
			require.Equal(t, IsPush(ins.Op), ins.Data != nil)
			n += ins.Len()
		}
		require.Equal(t, len(code), n)
	}
}

func TestDecodeStops(t *testing.T) {
	code := mustHex("600160025b6003565b00")
	bc, err := Decode(code, StopLabel)
	require.NoError(t, err)
	require.Equal(t, 3, bc.Len())
	require.True(t, bc.EndsWith(vm.JUMPDEST))
	require.Equal(t, 5, bc.ByteLength())

	bc, err = Decode(code, StopBlock)
	require.NoError(t, err)
	require.Equal(t, 3, bc.Len())

	bc, err = Decode(code.Tail(5), StopBlock)
	require.NoError(t, err)
	require.Equal(t, 2, bc.Len())
	require.True(t, bc.EndsWith(vm.JUMP))

	bc, err = Decode(code, StopCodeCopy)
	require.NoError(t, err)
	require.Equal(t, 7, bc.Len())

	bc, err = Decode(Bytes{}, NoStop)
	require.NoError(t, err)
	require.Equal(t, 0, bc.Len())
	_, ok := bc.Last()
	require.False(t, ok)
	require.False(t, bc.EndsWith(vm.STOP))
}

func TestDecodeTruncated(t *testing.T) {
	for _, s := range []string{"61", "6100", "7f00", "00600160"} {
		_, err := Decode(mustHex(s), NoStop)
		require.ErrorIs(t, err, ErrTruncatedInstruction, s)
	}
	// A stop before the truncated push keeps decoding from reaching it.
	_, err := Decode(mustHex("5b61"), StopLabel)
	require.NoError(t, err)
}

func TestUnknownOpcodes(t *testing.T) {
	bc, err := Decode(Bytes{0x0c, 0xef, 0xfe}, NoStop)
	require.NoError(t, err)
	require.Equal(t, 3, bc.Len())
	for i := 0; i < 3; i++ {
		require.Nil(t, bc.At(i).Data)
	}
}

func TestBytecodeEditing(t *testing.T) {
	bc := NewBytecode(Push(vm.PUSH1, Bytes{1}), Op(vm.JUMP))
	cp := bc.Slice(0, bc.Len())
	require.NoError(t, bc.SetData(0, Bytes{2}))
	require.Equal(t, Bytes{1}, cp.At(0).Data)
	require.Equal(t, Bytes{2}, bc.At(0).Data)

	require.ErrorIs(t, bc.SetData(0, Bytes{1, 2}), ErrOperandWidth)
	require.ErrorIs(t, bc.SetData(1, Bytes{1}), ErrOperandWidth)

	bc.Append(cp, NewBytecode(Push2(0x1234)))
	require.Equal(t, []int{0, 2, 4}, bc.PushIndexes())
	require.Equal(t, mustHex("60025660015661"+"1234"), bc.Encode())
	require.Equal(t, "00000: PUSH1 0x02 (2)\n00002: JUMP\n00003: PUSH1 0x01 (1)\n00005: JUMP\n00006: PUSH2 0x1234 (4660)\n", bc.String())
}

func TestInstruction(t *testing.T) {
	_, err := NewInstruction(vm.ADD, Bytes{})
	require.ErrorIs(t, err, ErrOperandWidth)
	_, err = NewInstruction(vm.PUSH3, Bytes{1, 2})
	require.ErrorIs(t, err, ErrOperandWidth)
	_, err = NewInstruction(vm.PUSH1, nil)
	require.ErrorIs(t, err, ErrOperandWidth)

	data := Bytes{0xab, 0xcd}
	ins, err := NewInstruction(vm.PUSH2, data)
	require.NoError(t, err)
	data[0] = 0
	require.Equal(t, Bytes{0xab, 0xcd}, ins.Data)
	require.Equal(t, uint64(0xabcd), ins.Value().Uint64())
	require.Equal(t, 3, ins.Len())
	require.Equal(t, Bytes{0x61, 0xab, 0xcd}, ins.Bytes())

	require.Panics(t, func() { Op(vm.PUSH1) })
	require.Panics(t, func() { Push(vm.PUSH1, Bytes{1, 2}) })
	require.Equal(t, "ADD", Op(vm.ADD).String())
	require.Equal(t, "PUSH2 0xabcd (43981)", ins.String())

	wide := Push(vm.PUSH9, Bytes{1, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Equal(t, "PUSH9 0x010000000000000000", wide.String())
}

func TestOpSet(t *testing.T) {
	s := NewOpSet(vm.STOP, vm.JUMPDEST, vm.PUSH32, vm.SELFDESTRUCT)
	for i := 0; i < 256; i++ {
		op := vm.OpCode(i)
		want := op == vm.STOP || op == vm.JUMPDEST || op == vm.PUSH32 || op == vm.SELFDESTRUCT
		require.Equal(t, want, s.Has(op), op.String())
		require.False(t, NoStop.Has(op))
	}
	require.True(t, IsControlFlow(vm.JUMPI))
	require.False(t, IsControlFlow(vm.STOP))
	require.Equal(t, 32, PushLength(vm.PUSH32))
	require.Equal(t, 0, PushLength(vm.DUP1))
	require.Equal(t, byte(0xfe), byte(Invalid))
	require.False(t, IsPush(Invalid))
	require.Equal(t, Bytes{0xfe}, Op(Invalid).Bytes())
}

func mustHex(s string) Bytes {
	bz, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return bz
}
