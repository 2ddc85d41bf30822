package network

import (
	"bytes"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/braidpool/btcio/iox"
)

func TestMessageSerialization(t *testing.T) {
	rnd := rand.New(rand.NewSource(114514))
	msg := Message{
		Command: "data",
		Payload: make([]byte, 188889),
	}
	rnd.Read(msg.Payload)
	var b bytes.Buffer
	err := EncodeMessage(iox.NewFromStd(&b), Regtest, msg)
	if err != nil {
		t.Fatal(err)
	}
	msg2, err := DecodeMessage(iox.NewBufReader(&b), Regtest)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(msg, msg2) {
		t.Fatal("not equal")
	}
}

func TestMessageWrongNetwork(t *testing.T) {
	var b bytes.Buffer
	err := EncodeMessage(iox.NewFromStd(&b), Bitcoin, Message{Command: "ping", Payload: []byte{}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = DecodeMessage(iox.NewBufReader(&b), Signet)
	if !errors.Is(err, errBadMagic) {
		t.Fatalf("expected magic mismatch, got %v", err)
	}
}

func TestMessageBadChecksum(t *testing.T) {
	var b bytes.Buffer
	err := EncodeMessage(iox.NewFromStd(&b), Regtest, Message{Command: "data", Payload: []byte("hello")})
	if err != nil {
		t.Fatal(err)
	}
	raw := b.Bytes()
	raw[len(raw)-1] ^= 0xff
	_, err = DecodeMessage(bytes.NewReader(raw), Regtest)
	if err == nil {
		t.Fatal("corrupted payload must not decode")
	}
}

func TestMessageCommandLimits(t *testing.T) {
	var b bytes.Buffer
	w := iox.NewFromStd(&b)
	err := EncodeMessage(w, Regtest, Message{Command: "waytoolongcommand"})
	if err == nil {
		t.Fatal("overlong command must not encode")
	}
	// exactly CommandLen is fine
	err = EncodeMessage(w, Regtest, Message{Command: "abcdefghijkl", Payload: []byte{}})
	if err != nil {
		t.Fatal(err)
	}
	msg, err := DecodeMessage(bytes.NewReader(b.Bytes()), Regtest)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Command != "abcdefghijkl" {
		t.Fatalf("wrong command: %q", msg.Command)
	}
}

func TestMessageTruncated(t *testing.T) {
	var b bytes.Buffer
	err := EncodeMessage(iox.NewFromStd(&b), Regtest, Message{Command: "data", Payload: []byte("hello")})
	if err != nil {
		t.Fatal(err)
	}
	raw := b.Bytes()[:b.Len()-3]
	_, err = DecodeMessage(bytes.NewReader(raw), Regtest)
	if iox.KindOf(err) != iox.KindUnexpectedEOF {
		t.Fatalf("expected unexpected end of input, got %v", err)
	}
}
