package effectiveness

import (
	"errors"
	"fmt"
)

// Kind tags the failure modes a lookup can end in.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUpstream
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound  = errors.New("not found")
	ErrUpstream  = errors.New("upstream error")
	ErrTimeout   = errors.New("timeout")
	ErrEmptyName = errors.New("pokemon name is required")
)

// Error is a lookup failure carrying its Kind. Msg is shown to users as is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match on the sentinel for the error's kind,
// e.g. errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUpstream:
		return e.Kind == KindUpstream
	case ErrTimeout:
		return e.Kind == KindTimeout
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Timeout(err error, format string, args ...any) *Error {
	return &Error{Kind: KindTimeout, Msg: fmt.Sprintf(format, args...), Err: err}
}
