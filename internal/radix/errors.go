package radix

import "fmt"

// ErrorKind classifies why a sort was rejected.
type ErrorKind int

const (
	NullInput ErrorKind = iota + 1
	SizeMismatch
	AllocationFailure
	UnsupportedType
)

// Code returns the numeric error code, NullInput is -1 through UnsupportedType -4.
func (k ErrorKind) Code() int {
	return -int(k)
}

func (k ErrorKind) String() string {
	switch k {
	case NullInput:
		return "null input"
	case SizeMismatch:
		return "size mismatch"
	case AllocationFailure:
		return "allocation failure"
	case UnsupportedType:
		return "unsupported type"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var (
	ErrNullInput         = &Error{Kind: NullInput, Msg: "record buffer is nil"}
	ErrSizeMismatch      = &Error{Kind: SizeMismatch, Msg: "record width does not match kind"}
	ErrAllocationFailure = &Error{Kind: AllocationFailure, Msg: "scratch buffer could not be allocated"}
	ErrUnsupportedType   = &Error{Kind: UnsupportedType, Msg: "unsupported record kind"}
)

// Error is returned for every rejected sort. The buffer is never modified
// when a sort returns an Error.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return "radix: " + e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrSizeMismatch)
// holds for every size mismatch regardless of message.
func (e *Error) Is(target error) bool {
	if targetErr, ok := target.(*Error); ok {
		return e.Kind == targetErr.Kind
	}
	return false
}
