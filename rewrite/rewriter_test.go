package rewrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/smartbch/entryguard/types"
)

const forwardJumpOut = "61003b8061000e6000396000f35b" +
	"3373ffffffffffffffffffffffffffffffffffffffff14601e576000" + "80fd5b" +
	"61000461002c565b00" + "5b905056" + "5b610026816100041461002857" + "50fe"

func TestRewriteStrict(t *testing.T) {
	code := strictDeployment(forwardJump, nil)
	input := code.Clone()
	res, err := New(DefaultConfig(), log.NewNopLogger()).Rewrite(code)
	require.NoError(t, err)
	require.Equal(t, mustHex(forwardJumpOut), res.Code)
	require.Equal(t, input, code)

	r := res.Report
	require.Equal(t, "strict", r.Profile)
	require.Equal(t, uint64(14), r.ConstructorLen)
	require.Equal(t, uint64(GuardLen), r.GuardLen)
	require.Equal(t, uint64(6), r.RuntimeLen)
	require.Equal(t, uint64(59), r.NewRuntimeLen)
	require.Equal(t, uint64(0), r.MetadataLen)
	require.Equal(t, []uint64{34}, r.Patches)
	require.Equal(t, [32]byte(crypto.Keccak256Hash(code)), r.InputHash)
	require.Equal(t, [32]byte(crypto.Keccak256Hash(res.Code)), r.OutputHash)
	require.Equal(t, [20]byte(DefaultEntrypoint), r.Entrypoint)

	again, err := New(DefaultConfig(), log.NewNopLogger()).Rewrite(code)
	require.NoError(t, err)
	require.Equal(t, res.Code, again.Code)
}

func TestRewriteStrictMetadata(t *testing.T) {
	meta := swarmMetadata()
	res, err := New(DefaultConfig(), log.NewNopLogger()).Rewrite(strictDeployment(forwardJump, meta))
	require.NoError(t, err)
	// The metadata trails the code and is not part of the copied window.
	require.Equal(t, types.Concat(mustHex(forwardJumpOut), meta), res.Code)
	require.Equal(t, uint64(len(meta)), res.Report.MetadataLen)
}

func TestRewriteSolc(t *testing.T) {
	meta := swarmMetadata()
	cfg := DefaultConfig()
	cfg.Profile = ProfileSolc
	res, err := New(cfg, log.NewNopLogger()).Rewrite(solcDeployment(forwardJump, meta))
	require.NoError(t, err)

	// The copied length covers the new runtime and the metadata.
	ctor := mustHex("610066" + "8061000e6000396000f3fe")
	require.Equal(t, types.Concat(ctor, mustHex(forwardJumpOut).Tail(59), meta), res.Code)
	require.Equal(t, "solc", res.Report.Profile)
	require.Equal(t, uint64(6), res.Report.RuntimeLen)

	// solc layouts are not accepted by the strict profile and vice versa.
	_, err = New(DefaultConfig(), log.NewNopLogger()).Rewrite(solcDeployment(forwardJump, meta))
	require.ErrorIs(t, err, types.ErrWindowMismatch)
	_, err = New(cfg, log.NewNopLogger()).Rewrite(strictDeployment(forwardJump, nil))
	require.ErrorIs(t, err, types.ErrEpilogueLabel)
}

func TestRewriteBypassAndEntrypoint(t *testing.T) {
	cfg := Config{
		Entrypoint:         DefaultEntrypoint,
		AllowEmptyCalldata: true,
	}
	res, err := New(cfg, log.NewNopLogger()).Rewrite(strictDeployment(forwardJump, nil))
	require.NoError(t, err)
	require.Equal(t, uint64(BypassGuardLen), res.Report.GuardLen)
	require.Equal(t, "strict", res.Report.Profile)
	require.Equal(t, uint64(BypassGuardLen+28), res.Report.NewRuntimeLen)
}

func TestRewriteTooLarge(t *testing.T) {
	// PUSH2 0xffdc: the guard and table push the runtime past 65535 bytes.
	code := types.Concat(mustHex("61ffdc8061000e6000396000f35b"), types.Zero(0xffdc))
	_, err := New(DefaultConfig(), log.NewNopLogger()).Rewrite(code)
	require.ErrorIs(t, err, types.ErrCodeTooLarge)
	require.True(t, types.IsInputError(err))
}

func TestRewriteLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	_, err := New(DefaultConfig(), logger).Rewrite(strictDeployment(forwardJump, nil))
	require.NoError(t, err)
	out := buf.String()
	require.True(t, strings.Contains(out, "rewrote contract"))
	require.True(t, strings.Contains(out, "module=rewrite"))
	require.True(t, strings.Contains(out, "relocated label"))

	buf.Reset()
	_, err = New(DefaultConfig(), log.NewFilter(logger, log.AllowError())).Rewrite(strictDeployment(forwardJump, nil))
	require.NoError(t, err)
	require.Empty(t, buf.String())
}

func TestParseProfile(t *testing.T) {
	for s, want := range map[string]Profile{"": ProfileStrict, "strict": ProfileStrict, "solc": ProfileSolc} {
		got, err := ParseProfile(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseProfile("vyper")
	require.Error(t, err)
}
