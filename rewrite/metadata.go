package rewrite

import (
	"github.com/smartbch/entryguard/types"
)

// Marker ranges for the first two bytes of a trailing metadata blob: a CBOR
// map header followed by a single-byte push length. This is a heuristic tied
// to solc output, crafted input may fool it either way.
const (
	metaMapMin  = 0xa0
	metaMapMax  = 0xb7
	metaPushMin = 0x60
	metaPushMax = 0x7b
)

// SplitMetadata separates a trailing compiler metadata blob, whose length is
// stored in the last two bytes. When the markers do not match, metadata is
// empty and body is all of code.
func SplitMetadata(code types.Bytes) (body, metadata types.Bytes) {
	if len(code) < 2 {
		return code.Clone(), types.Bytes{}
	}
	l, err := code.Tail(2).Int()
	if err != nil {
		return code.Clone(), types.Bytes{}
	}
	n := int(l) + 2
	if n >= len(code) {
		return code.Clone(), types.Bytes{}
	}
	start := len(code) - n
	if b := code[start]; b < metaMapMin || b > metaMapMax {
		return code.Clone(), types.Bytes{}
	}
	if b := code[start+1]; b < metaPushMin || b > metaPushMax {
		return code.Clone(), types.Bytes{}
	}
	return code.Head(start), code.Tail(n)
}
