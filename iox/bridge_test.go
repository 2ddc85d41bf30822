package iox

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"
)

func TestFromStdReadExact(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	f := NewFromStd(br)
	buf := make([]byte, 4)
	if err := f.ReadExact(buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Fatalf("wrong bytes: %v", buf)
	}
	n, err := f.Read(buf)
	if n != 0 || KindOf(err) != KindEOF {
		t.Fatalf("expected end of input, got n=%d err=%v", n, err)
	}
}

func TestFromStdInner(t *testing.T) {
	b := &bytes.Buffer{}
	f := NewFromStd(b)
	if f.Inner() != b {
		t.Fatal("inner is not the wrapped value")
	}
	if err := f.WriteAll([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	// pass-through: the bytes land in the original buffer
	if b.String() != "abc" {
		t.Fatalf("wrong buffer content: %q", b.String())
	}
}

func TestFromStdFillBufConsume(t *testing.T) {
	f := NewBufReader(strings.NewReader("abcdef"))
	b, err := f.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 6 {
		t.Fatalf("expected 6 buffered bytes, got %d", len(b))
	}
	f.Consume(2)
	b, err = f.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "cdef" {
		t.Fatalf("consumed prefix re-exposed: %q", b)
	}
	f.Consume(4)
	b, err = f.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty view at end of input, got %q", b)
	}
}

func TestFromStdConsumeBeyondBuffered(t *testing.T) {
	f := NewBufReader(strings.NewReader("ab"))
	b, err := f.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("consuming past the buffered view did not panic")
		}
	}()
	f.Consume(len(b) + 1)
}

func TestFromStdWriteAllChunkedWriter(t *testing.T) {
	// a destination that accepts at most 2 bytes per call without
	// reporting an error; WriteAll must keep going until done
	w := &chunkedStdWriter{chunk: 2}
	f := NewFromStd(w)
	if err := f.WriteAll([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	if w.buf.String() != "abcdef" {
		t.Fatalf("short delivery: %q", w.buf.String())
	}
	if w.calls < 3 {
		t.Fatalf("expected at least 3 writes, got %d", w.calls)
	}
}

type chunkedStdWriter struct {
	buf   bytes.Buffer
	chunk int
	calls int
}

func (w *chunkedStdWriter) Write(p []byte) (int, error) {
	w.calls++
	if len(p) > w.chunk {
		p = p[:w.chunk]
	}
	return w.buf.Write(p)
}

func TestFromStdUnsupported(t *testing.T) {
	f := NewFromStd(strings.NewReader("x"))
	_, err := f.Write([]byte("y"))
	if KindOf(err) != KindUnsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if _, err := f.FillBuf(); KindOf(err) != KindUnsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestFromStdFlush(t *testing.T) {
	var b bytes.Buffer
	bw := bufio.NewWriter(&b)
	f := NewFromStd(bw)
	if err := f.WriteAll([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if b.String() != "hello" {
		t.Fatalf("flush did not reach destination: %q", b.String())
	}
}

func TestToStdRead(t *testing.T) {
	r := &coreReader{data: []byte("abcd"), chunk: 3}
	ts := NewToStd(r)
	buf := make([]byte, 4)
	if _, err := io.ReadFull(ts, buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "abcd" {
		t.Fatalf("wrong bytes: %q", buf)
	}
	if _, err := ts.Read(buf); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestToStdWrite(t *testing.T) {
	w := &coreWriter{chunk: 1 << 20}
	ts := NewToStd(w)
	if _, err := ts.Write([]byte("xyz")); err != nil {
		t.Fatal(err)
	}
	if err := ts.Flush(); err != nil {
		t.Fatal(err)
	}
	if w.buf.String() != "xyz" || w.flushes != 1 {
		t.Fatalf("write did not pass through: %q (%d flushes)", w.buf.String(), w.flushes)
	}
	if ts.Inner() != w {
		t.Fatal("inner is not the wrapped value")
	}
}

func TestToStdReadByte(t *testing.T) {
	// a core buffered reader built from the std side, read back out
	// through the std io.ByteReader face
	var enc bytes.Buffer
	uv := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(uv, 300)
	enc.Write(uv[:n])
	ts := NewToStd(NewBufReader(&enc))
	got, err := binary.ReadUvarint(ts)
	if err != nil {
		t.Fatal(err)
	}
	if got != 300 {
		t.Fatalf("wrong varint: %d", got)
	}
	if _, err := ts.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestToStdBufReader(t *testing.T) {
	// the wrapper keeps the buffered core face usable without
	// re-wrapping
	var br BufReader = NewToStd(NewBufReader(strings.NewReader("abcdef")))
	b, err := br.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "abcdef" {
		t.Fatalf("wrong view: %q", b)
	}
	br.Consume(2)
	b, err = br.FillBuf()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "cdef" {
		t.Fatalf("consumed prefix re-exposed: %q", b)
	}
}

func TestToStdBufReaderUnbound(t *testing.T) {
	ts := NewToStd(&coreReader{data: []byte("x"), chunk: 1})
	if _, err := ts.FillBuf(); err == nil {
		t.Fatal("expected error for unbuffered inner value")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("consume on unbuffered inner value did not panic")
		}
	}()
	ts.Consume(1)
}

func TestSinkAsStdWriter(t *testing.T) {
	var s Sink
	n, err := io.Copy(s, strings.NewReader("discard me"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Fatalf("copied %d bytes", n)
	}
}
