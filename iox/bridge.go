package iox

import (
	"bufio"
	"io"
)

// stdBuffered is the face of a standard buffered reader the BufReader
// capability needs; *bufio.Reader satisfies it.
type stdBuffered interface {
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
	Buffered() int
}

type flusher interface {
	Flush() error
}

// FromStd bridges a value implementing the standard library's I/O
// interfaces into the iox capability set. Every call forwards to the
// wrapped value and rewrites the error with FromStdError; a call for a
// capability the wrapped value does not provide fails with
// KindUnsupported.
//
// The wrapper's own method set still satisfies io.Reader and io.Writer,
// so std-facing and core-facing calls can be mixed on the same wrapper
// without re-wrapping.
type FromStd struct {
	inner interface{}
	r     io.Reader
	br    stdBuffered
	w     io.Writer
	fl    flusher
}

// NewFromStd wraps a standard I/O value. The capability faces are bound
// once here; as with the standard library, a value whose methods live
// on the pointer receiver must be passed as a pointer.
func NewFromStd(inner interface{}) *FromStd {
	f := &FromStd{inner: inner}
	f.r, _ = inner.(io.Reader)
	f.br, _ = inner.(stdBuffered)
	f.w, _ = inner.(io.Writer)
	f.fl, _ = inner.(flusher)
	return f
}

// NewBufReader wraps r in a bufio.Reader bridged to the full BufReader
// capability.
func NewBufReader(r io.Reader) *FromStd {
	return NewFromStd(bufio.NewReader(r))
}

// Inner returns the wrapped value. Wrapping and unwrapping are exact
// inverses: the same value goes in and comes out, untouched.
func (f *FromStd) Inner() interface{} { return f.inner }

func (f *FromStd) Read(p []byte) (int, error) {
	if f.r == nil {
		return 0, errUnsupported("read")
	}
	n, err := f.r.Read(p)
	return n, FromStdError(err)
}

func (f *FromStd) ReadExact(p []byte) error {
	if f.r == nil {
		return errUnsupported("read")
	}
	_, err := io.ReadFull(f.r, p)
	return FromStdError(err)
}

func (f *FromStd) FillBuf() ([]byte, error) {
	if f.br == nil {
		return nil, errUnsupported("buffered read")
	}
	if f.br.Buffered() == 0 {
		if _, err := f.br.Peek(1); err != nil && err != io.EOF {
			return nil, FromStdError(err)
		}
	}
	// Peek of exactly Buffered() bytes cannot fail; at end of input it
	// yields the empty view the contract asks for.
	b, _ := f.br.Peek(f.br.Buffered())
	return b, nil
}

func (f *FromStd) Consume(n int) {
	if f.br == nil {
		panic("iox: consume without buffered read capability")
	}
	if n > f.br.Buffered() {
		panic("iox: consume beyond buffered data")
	}
	f.br.Discard(n)
}

func (f *FromStd) Write(p []byte) (int, error) {
	if f.w == nil {
		return 0, errUnsupported("write")
	}
	n, err := f.w.Write(p)
	return n, FromStdError(err)
}

func (f *FromStd) WriteAll(p []byte) error {
	if f.w == nil {
		return errUnsupported("write")
	}
	for len(p) > 0 {
		n, err := f.w.Write(p)
		if err != nil {
			return FromStdError(err)
		}
		if n == 0 {
			return &Error{Kind: KindShortWrite}
		}
		p = p[n:]
	}
	return nil
}

func (f *FromStd) Flush() error {
	if f.fl == nil {
		return nil
	}
	return FromStdError(f.fl.Flush())
}

// ToStd bridges a value implementing the iox capability set into the
// standard library's I/O interfaces, rewriting errors with ToStdError.
// Like FromStd it keeps the other face usable: its method set satisfies
// Reader and Writer directly.
type ToStd struct {
	inner interface{}
	r     Reader
	br    BufReader
	w     Writer
}

// NewToStd wraps a core I/O value.
func NewToStd(inner interface{}) *ToStd {
	t := &ToStd{inner: inner}
	t.r, _ = inner.(Reader)
	t.br, _ = inner.(BufReader)
	t.w, _ = inner.(Writer)
	return t
}

// Inner returns the wrapped value.
func (t *ToStd) Inner() interface{} { return t.inner }

func (t *ToStd) Read(p []byte) (int, error) {
	if t.r == nil {
		return 0, ToStdError(errUnsupported("read"))
	}
	n, err := t.r.Read(p)
	return n, ToStdError(err)
}

// ReadByte serves the io.ByteReader face over a buffered inner value.
func (t *ToStd) ReadByte() (byte, error) {
	if t.br == nil {
		return 0, ToStdError(errUnsupported("buffered read"))
	}
	b, err := t.br.FillBuf()
	if err != nil {
		return 0, ToStdError(err)
	}
	if len(b) == 0 {
		return 0, io.EOF
	}
	c := b[0]
	t.br.Consume(1)
	return c, nil
}

func (t *ToStd) FillBuf() ([]byte, error) {
	if t.br == nil {
		return nil, ToStdError(errUnsupported("buffered read"))
	}
	b, err := t.br.FillBuf()
	return b, ToStdError(err)
}

func (t *ToStd) Consume(n int) {
	if t.br == nil {
		panic("iox: consume without buffered read capability")
	}
	t.br.Consume(n)
}

func (t *ToStd) Write(p []byte) (int, error) {
	if t.w == nil {
		return 0, ToStdError(errUnsupported("write"))
	}
	n, err := t.w.Write(p)
	return n, ToStdError(err)
}

func (t *ToStd) Flush() error {
	if t.w == nil {
		return nil
	}
	return ToStdError(t.w.Flush())
}

// Structural bridges: a standard buffered writer already satisfies the
// core Writer capability, Sink already satisfies the standard one, and
// both adapters keep their opposite face. Pinned at compile time.
var (
	_ Writer        = (*bufio.Writer)(nil)
	_ io.Writer     = Sink{}
	_ Writer        = Sink{}
	_ io.Reader     = (*FromStd)(nil)
	_ io.Writer     = (*FromStd)(nil)
	_ BufReader     = (*FromStd)(nil)
	_ Writer        = (*FromStd)(nil)
	_ Reader        = (*ToStd)(nil)
	_ BufReader     = (*ToStd)(nil)
	_ Writer        = (*ToStd)(nil)
	_ io.Reader     = (*ToStd)(nil)
	_ io.Writer     = (*ToStd)(nil)
	_ io.ByteReader = (*ToStd)(nil)
)
