package types

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes is an octet buffer that is never mutated in place. Every slicing
// operation returns an independent copy.
type Bytes []byte

// FromHex parses a hex string with an optional 0x prefix. Any other
// character, whitespace included, is rejected.
func FromHex(s string) (Bytes, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	bz, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return Bytes(bz), nil
}

// FromInt encodes v as exactly two big-endian bytes.
func FromInt(v uint16) Bytes {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return Bytes(buf[:])
}

func Zero(n int) Bytes {
	return make(Bytes, n)
}

// Concat joins the parts into a new buffer.
func Concat(parts ...Bytes) Bytes {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make(Bytes, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Int decodes a 1- or 2-byte big-endian buffer. Other widths are an error,
// never a truncation.
func (b Bytes) Int() (uint16, error) {
	switch len(b) {
	case 1:
		return uint16(b[0]), nil
	case 2:
		return binary.BigEndian.Uint16(b), nil
	}
	return 0, fmt.Errorf("%w: got %d bytes", ErrIntWidth, len(b))
}

func (b Bytes) Len() int {
	return len(b)
}

func (b Bytes) At(i int) byte {
	return b[i]
}

// Slice returns a copy of b[from:to].
func (b Bytes) Slice(from, to int) Bytes {
	out := make(Bytes, to-from)
	copy(out, b[from:to])
	return out
}

// Head returns a copy of the first n bytes.
func (b Bytes) Head(n int) Bytes {
	return b.Slice(0, n)
}

// Tail returns a copy of the last n bytes.
func (b Bytes) Tail(n int) Bytes {
	return b.Slice(len(b)-n, len(b))
}

func (b Bytes) Clone() Bytes {
	return b.Slice(0, len(b))
}

func (b Bytes) Hex() string {
	return hexutil.Encode(b)
}

func (b Bytes) String() string {
	return b.Hex()
}
