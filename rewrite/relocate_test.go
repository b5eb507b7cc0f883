package rewrite

import (
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/seehuhn/mt19937"
	"github.com/stretchr/testify/require"

	"github.com/smartbch/entryguard/types"
)

func TestRelocateForwardJump(t *testing.T) {
	rel, err := Relocate(forwardJump, Guard(DefaultEntrypoint, false))
	require.NoError(t, err)
	out := rel.Bytecode.Encode()
	require.Equal(t, mustHex("610004"+"61002c56"+"5b00"+"5b905056"+"5b"+"610026816100041461002857"+"50"+"fe"), out[GuardLen:])
	require.Equal(t, []types.LabelMove{{From: 4, To: 0x26}}, rel.Labels)
	require.Len(t, rel.Patches, 1)
	require.Equal(t, 34, rel.Patches[0].PC)
	require.Equal(t, 0x28, rel.ExitOffset)
	require.Equal(t, 0x2c, rel.DispatchOffset)
}

func TestRelocateJumpi(t *testing.T) {
	// CALLDATASIZE; PUSH1 6; JUMPI; STOP; INVALID; JUMPDEST; STOP
	rel, err := Relocate(mustHex("3660065700fe5b00"), types.NewBytecode())
	require.NoError(t, err)
	out := rel.Bytecode.Encode()
	// SWAP1 PUSH2 table JUMPI POP, then the label moves by five bytes.
	require.Equal(t, mustHex("366006"+"90"+"610011"+"5750"+"00fe5b00"), out[:0x0d])
	require.Equal(t, []types.LabelMove{{From: 6, To: 0x0b}}, rel.Labels)
	require.Equal(t, 0x0d, rel.ExitOffset)
	require.Equal(t, 0x11, rel.DispatchOffset)
	require.Equal(t, 4, rel.Patches[0].PC)
}

func TestRelocateEdgeCases(t *testing.T) {
	// Empty runtime: only the exit sequence and a table with no entries.
	rel, err := Relocate(types.Bytes{}, Guard(DefaultEntrypoint, false))
	require.NoError(t, err)
	require.Equal(t, GuardLen+4+2, rel.Bytecode.ByteLength())
	require.Empty(t, rel.Labels)
	require.Empty(t, rel.Patches)

	// A runtime ending in a jump still ends the loop cleanly.
	rel, err = Relocate(mustHex("5b600056"), types.NewBytecode())
	require.NoError(t, err)
	require.Len(t, rel.Labels, 1)
	require.Len(t, rel.Patches, 1)

	_, err = Relocate(mustHex("5b7f00"), types.NewBytecode())
	require.ErrorIs(t, err, types.ErrTruncatedInstruction)
}

func TestRelocateRandom(t *testing.T) {
	rand := mt19937.New()
	rand.Seed(7)
	guard := Guard(DefaultEntrypoint, true)
	for i := 0; i < 100; i++ {
		runtime := randomRuntime(rand, 1+int(rand.Int63()%2000))
		bc, err := types.Decode(runtime, types.NoStop)
		require.NoError(t, err)
		var labels, jumps, jumpis int
		for j := 0; j < bc.Len(); j++ {
			switch bc.At(j).Op {
			case vm.JUMPDEST:
				labels++
			case vm.JUMP:
				jumps++
			case vm.JUMPI:
				jumpis++
			}
		}

		rel, err := Relocate(runtime, guard)
		require.NoError(t, err)
		out := rel.Bytecode.Encode()
		want := BypassGuardLen + len(runtime) + jumpGrowth*jumps + jumpiGrowth*jumpis +
			exitLen + 1 + dispatchEntry*labels + 1
		require.Equal(t, want, len(out))
		require.Len(t, rel.Labels, labels)
		require.Len(t, rel.Patches, jumps+jumpis)
		require.Equal(t, BypassGuardLen+len(runtime)+jumpGrowth*jumps+jumpiGrowth*jumpis, rel.ExitOffset)

		for k, l := range rel.Labels {
			require.Equal(t, byte(vm.JUMPDEST), runtime[l.From])
			require.Equal(t, byte(vm.JUMPDEST), out[l.To])
			entry := rel.DispatchOffset + 1 + k*dispatchEntry
			require.Equal(t, types.Push2(l.To).Bytes(), types.Bytes(out[entry:entry+3]))
			require.Equal(t, types.Push2(l.From).Bytes(), types.Bytes(out[entry+4:entry+7]))
			require.Equal(t, types.Push2(uint16(rel.ExitOffset)).Bytes(), types.Bytes(out[entry+8:entry+11]))
		}
		for _, p := range rel.Patches {
			require.Equal(t, types.Push2(uint16(rel.DispatchOffset)).Bytes(), types.Bytes(out[p.PC:p.PC+3]))
		}
		require.Equal(t, byte(vm.JUMPDEST), out[rel.ExitOffset])
		require.Equal(t, byte(vm.JUMPDEST), out[rel.DispatchOffset])
		require.Equal(t, byte(types.Invalid), out[len(out)-1])
	}
}
