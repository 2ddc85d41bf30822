package network

import (
	"bytes"
	"testing"

	"github.com/braidpool/btcio/iox"
)

func TestMagicSerialization(t *testing.T) {
	want := map[Network][]byte{
		Bitcoin:  {0xf9, 0xbe, 0xb4, 0xd9},
		Testnet:  {0x0b, 0x11, 0x09, 0x07},
		Testnet4: {0x1c, 0x16, 0x3f, 0x28},
		Signet:   {0x0a, 0x03, 0xcf, 0x40},
		Regtest:  {0xfa, 0xbf, 0xb5, 0xda},
		CPUNet:   {0x63, 0x70, 0x75, 0x6e},
	}
	for n, wire := range want {
		var b bytes.Buffer
		if err := EncodeMagic(iox.NewFromStd(&b), n.Magic()); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b.Bytes(), wire) {
			t.Fatalf("%v magic serialized to %x, want %x", n, b.Bytes(), wire)
		}
		m, err := DecodeMagic(bytes.NewReader(wire))
		if err != nil {
			t.Fatal(err)
		}
		if m != n.Magic() {
			t.Fatalf("%x deserialized to %s", wire, m)
		}
	}
}

func TestDecodeMagicShortInput(t *testing.T) {
	_, err := DecodeMagic(bytes.NewReader([]byte{0xf9, 0xbe}))
	if iox.KindOf(err) != iox.KindUnexpectedEOF {
		t.Fatalf("expected unexpected end of input, got %v", err)
	}
}

func TestParseMagic(t *testing.T) {
	m, err := ParseMagic("f9beb4d9")
	if err != nil {
		t.Fatal(err)
	}
	if m != Bitcoin.Magic() {
		t.Fatalf("parsed wrong magic: %s", m)
	}
	if _, err := ParseMagic("f9be"); err == nil {
		t.Fatal("short magic must not parse")
	}
	if _, err := ParseMagic("not hex!"); err == nil {
		t.Fatal("non-hex magic must not parse")
	}
}

func TestParseChainHash(t *testing.T) {
	for _, n := range Networks {
		back, err := ParseChainHash(n.ChainHash().String())
		if err != nil {
			t.Fatal(err)
		}
		if back != n.ChainHash() {
			t.Fatalf("%v chain hash did not round trip", n)
		}
	}
	if _, err := ParseChainHash("00ff"); err == nil {
		t.Fatal("short chain hash must not parse")
	}
}
