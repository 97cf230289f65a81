package imageutil

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNotFound indicates an operation referenced an unregistered image name.
	KindNotFound
	// KindInvalidArgument indicates a malformed or out-of-range parameter.
	KindInvalidArgument
	// KindDecode indicates a file could not be read or decoded.
	KindDecode
	// KindEncode indicates an image could not be encoded or written.
	KindEncode
	// KindOutOfBounds indicates a pixel access outside the buffer. Correct
	// transform code never produces it.
	KindOutOfBounds
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidArgument:
		return "invalid argument"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindOutOfBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is. Any *Error of the same kind
// matches its sentinel.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrDecode          = &Error{Kind: KindDecode}
	ErrEncode          = &Error{Kind: KindEncode}
	ErrOutOfBounds     = &Error{Kind: KindOutOfBounds}
)

// Error is the structured error returned by image operations.
type Error struct {
	// Op is the operation that failed (e.g., "downsize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Name is the image name or file path involved, if any.
	Name string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Op != "" && e.Name != "":
		return fmt.Sprintf("%s %q [%s]: %s", e.Op, e.Name, e.Kind, msg)
	case e.Op != "":
		return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, msg)
	default:
		return msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets
// errors.Is(err, ErrNotFound) match regardless of Op and Name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Name == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(op string, kind ErrorKind, name string, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Name: name, Err: fmt.Errorf(format, args...)}
}

// NotFoundError reports that name is not registered.
func NotFoundError(op, name string) error {
	return newError(op, KindNotFound, name, "image must be loaded first")
}

// InvalidArgumentError reports a bad parameter for op.
func InvalidArgumentError(op string, format string, args ...any) error {
	return newError(op, KindInvalidArgument, "", format, args...)
}
