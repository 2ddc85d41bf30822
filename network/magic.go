package network

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/braidpool/btcio/iox"
)

// MagicLen is the width of the wire magic field.
const MagicLen = 4

// Magic is the 4-byte sequence prefixed to every wire message to
// identify the network it belongs to. The array holds the bytes in
// wire order, which is the little-endian encoding of the historic
// 32-bit magic value.
type Magic [MagicLen]byte

func (m Magic) String() string { return hex.EncodeToString(m[:]) }

// ParseMagic parses the hex form produced by String.
func ParseMagic(s string) (Magic, error) {
	var m Magic
	b, err := hex.DecodeString(s)
	if err != nil {
		return m, fmt.Errorf("invalid magic %q: %v", s, err)
	}
	if len(b) != MagicLen {
		return m, fmt.Errorf("invalid magic %q: must be %d bytes", s, MagicLen)
	}
	copy(m[:], b)
	return m, nil
}

// EncodeMagic writes the magic in wire order.
func EncodeMagic(w iox.Writer, m Magic) error {
	return iox.WriteAll(w, m[:])
}

// DecodeMagic reads a magic in wire order.
func DecodeMagic(r iox.Reader) (Magic, error) {
	var m Magic
	err := iox.ReadExact(r, m[:])
	return m, err
}

// MarshalJSON encodes the magic as its hex form.
func (m Magic) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the hex form.
func (m *Magic) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseMagic(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ChainHashLen is the width of a chain hash.
const ChainHashLen = 32

// ChainHash is the genesis block hash identifying a chain. The array
// holds the bytes in internal (little-endian) order; String prints the
// reversed display order used by every bitcoin tool.
type ChainHash [ChainHashLen]byte

func (h ChainHash) String() string {
	var rev [ChainHashLen]byte
	for i, b := range h {
		rev[ChainHashLen-1-i] = b
	}
	return hex.EncodeToString(rev[:])
}

// ParseChainHash parses the display-order hex form produced by String.
func ParseChainHash(s string) (ChainHash, error) {
	var h ChainHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid chain hash %q: %v", s, err)
	}
	if len(b) != ChainHashLen {
		return h, fmt.Errorf("invalid chain hash %q: must be %d bytes", s, ChainHashLen)
	}
	for i, c := range b {
		h[ChainHashLen-1-i] = c
	}
	return h, nil
}

// MarshalJSON encodes the hash in display order.
func (h ChainHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes the display-order form.
func (h *ChainHash) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseChainHash(s)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
