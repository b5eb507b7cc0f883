package rewrite

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/smartbch/entryguard/types"
)

// Profile selects where the metadata blob is expected relative to the
// CODECOPY window.
type Profile string

const (
	// ProfileStrict strips metadata first; the CODECOPY window must end
	// where the metadata begins and the constructor epilogue must reach a
	// JUMPDEST.
	ProfileStrict Profile = "strict"
	// ProfileSolc matches solc output: metadata is part of the copied
	// runtime code and the constructor epilogue has no JUMPDEST.
	ProfileSolc Profile = "solc"
)

func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileStrict, ProfileSolc:
		return Profile(s), nil
	case "":
		return ProfileStrict, nil
	}
	return "", fmt.Errorf("unknown profile %q (want %q or %q)", s, ProfileStrict, ProfileSolc)
}

type Config struct {
	Entrypoint         common.Address
	Profile            Profile
	AllowEmptyCalldata bool
}

func DefaultConfig() Config {
	return Config{
		Entrypoint: DefaultEntrypoint,
		Profile:    ProfileStrict,
	}
}

type Rewriter struct {
	cfg    Config
	logger log.Logger
}

func New(cfg Config, logger log.Logger) *Rewriter {
	if cfg.Profile == "" {
		cfg.Profile = ProfileStrict
	}
	return &Rewriter{cfg: cfg, logger: logger.With("module", "rewrite")}
}

// Result holds the rewritten deployment code.
type Result struct {
	Code   types.Bytes
	Report *types.Report
}

// Rewrite guards and relocates the deployment code. It either returns the
// complete output or an error, never a partial result.
func (rw *Rewriter) Rewrite(code types.Bytes) (*Result, error) {
	var (
		ctor     *Constructor
		runtime  types.Bytes
		metadata types.Bytes
		err      error
	)
	switch rw.cfg.Profile {
	case ProfileSolc:
		ctor, err = AnalyzeConstructor(code, EpiloguePlain)
		if err != nil {
			return nil, err
		}
		runtime, metadata = SplitMetadata(ctor.Runtime)
	default:
		var body types.Bytes
		body, metadata = SplitMetadata(code)
		ctor, err = AnalyzeConstructor(body, EpilogueLabel)
		if err != nil {
			return nil, err
		}
		runtime = ctor.Runtime
	}
	rw.logger.Debug("analyzed constructor", "offset", ctor.Offset, "length", ctor.Length,
		"metadata", len(metadata), "profile", rw.cfg.Profile)

	guard := Guard(rw.cfg.Entrypoint, rw.cfg.AllowEmptyCalldata)
	rel, err := Relocate(runtime, guard)
	if err != nil {
		return nil, err
	}
	for _, l := range rel.Labels {
		rw.logger.Debug("relocated label", "from", l.From, "to", l.To)
	}

	runtimeOut := rel.Bytecode.Encode()
	copied := len(runtimeOut)
	if rw.cfg.Profile == ProfileSolc {
		copied += len(metadata)
	}
	if copied > math.MaxUint16 {
		return nil, fmt.Errorf("%w: runtime code would be %d bytes", types.ErrCodeTooLarge, copied)
	}
	if err := ctor.Bytecode.SetData(ctor.LengthIndex, types.FromInt(uint16(copied))); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvariant, err)
	}
	ctorOut := ctor.Bytecode.Encode()

	out := types.Concat(ctorOut, runtimeOut, metadata)
	if want := ctor.Bytecode.ByteLength() + rel.Bytecode.ByteLength() + len(metadata); len(out) != want {
		return nil, fmt.Errorf("%w: output is %d bytes, expected %d", types.ErrInvariant, len(out), want)
	}

	report := &types.Report{
		InputHash:      crypto.Keccak256Hash(code),
		OutputHash:     crypto.Keccak256Hash(out),
		Entrypoint:     rw.cfg.Entrypoint,
		Profile:        string(rw.cfg.Profile),
		ConstructorLen: uint64(len(ctorOut)),
		GuardLen:       uint64(guard.ByteLength()),
		RuntimeLen:     uint64(len(runtime)),
		NewRuntimeLen:  uint64(len(runtimeOut)),
		MetadataLen:    uint64(len(metadata)),
		ExitOffset:     uint16(rel.ExitOffset),
		DispatchOffset: uint16(rel.DispatchOffset),
		Labels:         rel.Labels,
	}
	for _, p := range rel.Patches {
		report.Patches = append(report.Patches, uint64(p.PC))
	}
	rw.logger.Info("rewrote contract", "in", len(code), "out", len(out),
		"labels", len(rel.Labels), "jumps", len(rel.Patches))
	return &Result{Code: out, Report: report}, nil
}
