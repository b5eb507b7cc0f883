package rewrite

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/seehuhn/mt19937"

	"github.com/smartbch/entryguard/types"
)

func mustHex(s string) types.Bytes {
	bz, err := types.FromHex(s)
	if err != nil {
		panic(err)
	}
	return bz
}

// strictDeployment wraps runtime in a constructor that copies and returns
// it, ending its epilogue with a JUMPDEST.
func strictDeployment(runtime types.Bytes, metadata types.Bytes) types.Bytes {
	ctor := types.Bytes{0x60, byte(len(runtime)), 0x80, 0x60, 0x0c, 0x60, 0x00, 0x39, 0x60, 0x00, 0xf3, 0x5b}
	return types.Concat(ctor, runtime, metadata)
}

// solcDeployment copies runtime and metadata together and has no label in
// its epilogue, like solc output.
func solcDeployment(runtime types.Bytes, metadata types.Bytes) types.Bytes {
	ctor := types.Bytes{0x60, byte(len(runtime) + len(metadata)), 0x80, 0x60, 0x0c, 0x60, 0x00, 0x39, 0x60, 0x00, 0xf3, 0xfe}
	return types.Concat(ctor, runtime, metadata)
}

// swarmMetadata is a legacy bzzr0 metadata blob: 41 bytes plus the length.
func swarmMetadata() types.Bytes {
	meta := types.Bytes{0xa1, 0x65, 'b', 'z', 'z', 'r', '0', 0x58, 0x20}
	meta = append(meta, types.Zero(32)...)
	return append(meta, 0x00, 0x29)
}

// randomRuntime returns well-formed code biased towards jumps and labels.
func randomRuntime(rand *mt19937.MT19937, size int) types.Bytes {
	special := []vm.OpCode{vm.JUMP, vm.JUMPI, vm.JUMPDEST, vm.PUSH2}
	var code types.Bytes
	for len(code) < size {
		op := vm.OpCode(rand.Int63() % 256)
		if rand.Int63()%3 == 0 {
			op = special[rand.Int63()%int64(len(special))]
		}
		code = append(code, byte(op))
		for i := 0; i < types.PushLength(op); i++ {
			code = append(code, byte(rand.Int63()%256))
		}
	}
	return code
}
