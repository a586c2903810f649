package vm

import "fmt"

// ErrorKind identifies one of the closed set of fatal VM error conditions.
type ErrorKind byte

const (
	ErrStackUnderflow ErrorKind = iota
	ErrInvalidOpcode
	ErrDivisionByZero
	ErrIndexOutOfBounds
	ErrInvalidCast
	ErrInvalidJump
	ErrOutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case ErrStackUnderflow:
		return "StackUnderflow"
	case ErrInvalidOpcode:
		return "InvalidOpcode"
	case ErrDivisionByZero:
		return "DivisionByZero"
	case ErrIndexOutOfBounds:
		return "IndexOutOfBounds"
	case ErrInvalidCast:
		return "InvalidCast"
	case ErrInvalidJump:
		return "InvalidJump"
	case ErrOutOfMemory:
		return "OutOfMemory"
	default:
		return "UnknownError"
	}
}

// VMError is a fatal error that unwinds the dispatch loop. It carries the
// closed-set Kind so callers can discriminate with errors.As/errors.Is
// without string matching.
type VMError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *VMError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

// Is lets errors.Is(err, someVMError) match by Kind alone, ignoring Message,
// so call sites can compare against a sentinel constructed with just a Kind.
func (e *VMError) Is(target error) bool {
	other, ok := target.(*VMError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newError(kind ErrorKind, format string, args ...any) *VMError {
	return &VMError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel errors for errors.Is comparisons against a specific kind.
var (
	ErrSentinelStackUnderflow   = &VMError{Kind: ErrStackUnderflow}
	ErrSentinelInvalidOpcode    = &VMError{Kind: ErrInvalidOpcode}
	ErrSentinelDivisionByZero   = &VMError{Kind: ErrDivisionByZero}
	ErrSentinelIndexOutOfBounds = &VMError{Kind: ErrIndexOutOfBounds}
	ErrSentinelInvalidCast      = &VMError{Kind: ErrInvalidCast}
	ErrSentinelInvalidJump      = &VMError{Kind: ErrInvalidJump}
	ErrSentinelOutOfMemory      = &VMError{Kind: ErrOutOfMemory}
)
