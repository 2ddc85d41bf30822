package network

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/braidpool/btcio/iox"
)

// CommandLen is the fixed width of the NUL-padded command field.
const CommandLen = 12

// MaxPayloadLen caps a single message payload.
const MaxPayloadLen = 4 * 1024 * 1024

const headerLen = MagicLen + CommandLen + 8

var errBadMagic = errors.New("message magic mismatch")

// Message is one framed unit of wire traffic: a short command plus an
// opaque payload. On the wire it is prefixed with the network magic,
// the NUL-padded command, the payload length (little-endian) and the
// first four bytes of the payload's double-SHA256.
type Message struct {
	Command string
	Payload []byte
}

func payloadChecksum(p []byte) [4]byte {
	h := sha256.Sum256(p)
	h = sha256.Sum256(h[:])
	var c [4]byte
	copy(c[:], h[:4])
	return c
}

// EncodeMessage frames msg for netw and writes it out. The writer is
// not flushed; that is the caller's call to make.
func EncodeMessage(w iox.Writer, netw Network, msg Message) error {
	if len(msg.Command) > CommandLen {
		return fmt.Errorf("command %q too long", msg.Command)
	}
	if len(msg.Payload) > MaxPayloadLen {
		return errors.New("payload too large")
	}
	hdr := make([]byte, headerLen)
	m := netw.Magic()
	copy(hdr[:MagicLen], m[:])
	copy(hdr[MagicLen:MagicLen+CommandLen], msg.Command)
	binary.LittleEndian.PutUint32(hdr[MagicLen+CommandLen:], uint32(len(msg.Payload)))
	sum := payloadChecksum(msg.Payload)
	copy(hdr[MagicLen+CommandLen+4:], sum[:])
	if err := iox.WriteAll(w, hdr); err != nil {
		return err
	}
	return iox.WriteAll(w, msg.Payload)
}

// DecodeMessage reads one framed message, verifying that it belongs to
// netw and that the payload matches its checksum.
func DecodeMessage(r iox.Reader, netw Network) (Message, error) {
	var msg Message
	hdr := make([]byte, headerLen)
	if err := iox.ReadExact(r, hdr); err != nil {
		return msg, err
	}
	var m Magic
	copy(m[:], hdr[:MagicLen])
	if m != netw.Magic() {
		return msg, fmt.Errorf("%w: got %s on %s", errBadMagic, m, netw)
	}
	cmd := hdr[MagicLen : MagicLen+CommandLen]
	n := 0
	for n < CommandLen && cmd[n] != 0 {
		n++
	}
	for i := n; i < CommandLen; i++ {
		if cmd[i] != 0 {
			return msg, errors.New("command not NUL padded")
		}
	}
	msg.Command = string(cmd[:n])
	size := binary.LittleEndian.Uint32(hdr[MagicLen+CommandLen : MagicLen+CommandLen+4])
	if size > MaxPayloadLen {
		return Message{}, errors.New("payload too large")
	}
	var sum [4]byte
	copy(sum[:], hdr[MagicLen+CommandLen+4:])
	msg.Payload = make([]byte, size)
	if err := iox.ReadExact(r, msg.Payload); err != nil {
		return Message{}, err
	}
	if payloadChecksum(msg.Payload) != sum {
		return Message{}, errors.New("payload checksum mismatch")
	}
	return msg, nil
}
