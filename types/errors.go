package types

import "errors"

var (
	ErrInvalidHex           = errors.New("invalid hex")
	ErrIntWidth             = errors.New("integer buffer must be 1 or 2 bytes")
	ErrOperandWidth         = errors.New("operand width does not match opcode")
	ErrTruncatedInstruction = errors.New("truncated instruction")
	ErrMissingCodeCopy      = errors.New("constructor has no CODECOPY")
	ErrNonZeroDestination   = errors.New("CODECOPY destination is not zero")
	ErrPushWidth            = errors.New("CODECOPY length and offset must use PUSH1 or PUSH2")
	ErrWindowMismatch       = errors.New("CODECOPY window does not reach end of code")
	ErrMissingEpilogueLabel = errors.New("constructor epilogue has no JUMPDEST")
	ErrEpilogueLabel        = errors.New("constructor epilogue contains a JUMPDEST")
	ErrEntrypointLength     = errors.New("entrypoint must be 20 bytes")
	ErrCodeTooLarge         = errors.New("code offset does not fit in 16 bits")
	ErrBadReport            = errors.New("bad report data")

	// ErrInvariant is an internal bug, not a problem with the input.
	ErrInvariant = errors.New("internal invariant broken")
)

// IsInputError reports whether err describes malformed input rather than a
// broken internal invariant.
func IsInputError(err error) bool {
	return err != nil && !errors.Is(err, ErrInvariant)
}
