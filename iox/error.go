package iox

import (
	"errors"
	"fmt"
	"io"
)

// Kind classifies an I/O failure.
type Kind int

const (
	// KindOther is the catch-all for failures the core model does not
	// distinguish.
	KindOther Kind = iota
	// KindEOF marks a clean end of input.
	KindEOF
	// KindUnexpectedEOF marks an input that ran out before an exact
	// read was satisfied.
	KindUnexpectedEOF
	// KindShortWrite marks a write that accepted fewer bytes than it
	// was given without reporting why.
	KindShortWrite
	// KindUnsupported marks a call on a capability the wrapped value
	// does not provide.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindUnexpectedEOF:
		return "unexpected end of input"
	case KindShortWrite:
		return "short write"
	case KindUnsupported:
		return "unsupported operation"
	}
	return "i/o error"
}

// Error is the core I/O error: a kind plus an optional underlying
// cause. The cause survives conversion in both directions, so callers
// can keep matching with errors.Is across the bridge boundary.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Standard library sentinels map to
// their matching kind; anything else is KindOther.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	switch {
	case errors.Is(err, io.EOF):
		return KindEOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return KindUnexpectedEOF
	case errors.Is(err, io.ErrShortWrite):
		return KindShortWrite
	}
	return KindOther
}

// FromStdError converts a standard library I/O error into the core
// representation. The conversion is total: unrecognized errors land in
// KindOther with the cause retained. nil and already-core errors pass
// through unchanged.
func FromStdError(err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: KindOf(err), Err: err}
}

// ToStdError is the mirror of FromStdError. Recognized kinds collapse
// to their canonical standard library sentinel; KindOther unwraps to
// the retained cause when there is one.
func ToStdError(err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Kind {
	case KindEOF:
		return io.EOF
	case KindUnexpectedEOF:
		return io.ErrUnexpectedEOF
	case KindShortWrite:
		return io.ErrShortWrite
	}
	if ce.Err != nil {
		return ce.Err
	}
	return ce
}

func errUnsupported(op string) error {
	return &Error{Kind: KindUnsupported, Err: fmt.Errorf("wrapped value does not support %s", op)}
}
