// Package iox defines a minimal byte I/O capability set that does not
// depend on the standard library's io stack, together with bridges in
// both directions (see bridge.go). The capability set only moves raw
// bytes and delegates: it never buffers, retries or decodes anything
// on its own.
package iox

// Reader pulls bytes into a caller buffer. Read returns the number of
// bytes actually read, which may be less than len(p); end of input is
// reported through an error of kind KindEOF.
type Reader interface {
	Read(p []byte) (n int, err error)
}

// BufReader exposes an internal buffer without copying.
type BufReader interface {
	Reader
	// FillBuf returns a view of the buffered, unconsumed bytes, pulling
	// from the source only if nothing is buffered. The result is empty
	// only at end of input and stays valid until Consume is called.
	FillBuf() ([]byte, error)
	// Consume marks n bytes of the last FillBuf result as used. Passing
	// n larger than that result is a caller bug, not a recoverable
	// error.
	Consume(n int)
}

// Writer pushes bytes toward a destination. Write returns the number of
// bytes actually accepted. Flush forces internally buffered bytes out
// and is a no-op for unbuffered destinations.
type Writer interface {
	Write(p []byte) (n int, err error)
	Flush() error
}

// ReaderExact is implemented by readers with a native exact-read path;
// ReadExact prefers it over looping on Read.
type ReaderExact interface {
	ReadExact(p []byte) error
}

// WriterAll is implemented by writers with a native write-everything
// path; WriteAll prefers it over looping on Write.
type WriterAll interface {
	WriteAll(p []byte) error
}

// ReadExact fills p completely or fails. On failure the contents of p
// are unspecified and bytes already consumed from r stay consumed.
func ReadExact(r Reader, p []byte) error {
	if re, ok := r.(ReaderExact); ok {
		return re.ReadExact(p)
	}
	total := 0
	for total < len(p) {
		n, err := r.Read(p[total:])
		total += n
		if total == len(p) {
			return nil
		}
		if err != nil {
			if KindOf(err) == KindEOF && total > 0 {
				return &Error{Kind: KindUnexpectedEOF, Err: err}
			}
			return err
		}
		if n == 0 {
			return &Error{Kind: KindUnexpectedEOF}
		}
	}
	return nil
}

// WriteAll writes every byte of p or fails. On failure an unspecified
// prefix of p has been written.
func WriteAll(w Writer, p []byte) error {
	if wa, ok := w.(WriterAll); ok {
		return wa.WriteAll(p)
	}
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return &Error{Kind: KindShortWrite}
		}
		p = p[n:]
	}
	return nil
}

// Sink discards everything written to it and always succeeds. Its one
// method set satisfies both Writer and the standard io.Writer.
type Sink struct{}

func (Sink) Write(p []byte) (int, error) { return len(p), nil }

func (Sink) WriteAll(p []byte) error { return nil }

func (Sink) Flush() error { return nil }
