package types

//go:generate msgp -io=false -tests=false

import (
	"fmt"
	"strings"
)

// LabelMove maps the original offset of a JUMPDEST to its relocated offset.
type LabelMove struct {
	From uint16 `msg:"from"`
	To   uint16 `msg:"to"`
}

// Report describes one completed rewrite.
type Report struct {
	InputHash      [32]byte    `msg:"inputHash"`
	OutputHash     [32]byte    `msg:"outputHash"`
	Entrypoint     [20]byte    `msg:"entrypoint"`
	Profile        string      `msg:"profile"`
	ConstructorLen uint64      `msg:"constructorLen"`
	GuardLen       uint64      `msg:"guardLen"`
	RuntimeLen     uint64      `msg:"runtimeLen"`
	NewRuntimeLen  uint64      `msg:"newRuntimeLen"`
	MetadataLen    uint64      `msg:"metadataLen"`
	ExitOffset     uint16      `msg:"exitOffset"`
	DispatchOffset uint16      `msg:"dispatchOffset"`
	Labels         []LabelMove `msg:"labels"`
	Patches        []uint64    `msg:"patches"`
}

// DecodeReport parses a MessagePack encoded report.
func DecodeReport(bz []byte) (*Report, error) {
	r := &Report{}
	rest, err := r.UnmarshalMsg(bz)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReport, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadReport, len(rest))
	}
	return r, nil
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "input %x output %x\n", r.InputHash, r.OutputHash)
	fmt.Fprintf(&sb, "entrypoint 0x%x profile %s\n", r.Entrypoint, r.Profile)
	fmt.Fprintf(&sb, "constructor %d guard %d runtime %d -> %d metadata %d\n",
		r.ConstructorLen, r.GuardLen, r.RuntimeLen, r.NewRuntimeLen, r.MetadataLen)
	fmt.Fprintf(&sb, "exit 0x%04x dispatch 0x%04x jumps %d\n", r.ExitOffset, r.DispatchOffset, len(r.Patches))
	for _, l := range r.Labels {
		fmt.Fprintf(&sb, "label 0x%04x -> 0x%04x\n", l.From, l.To)
	}
	return sb.String()
}
