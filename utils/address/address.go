// Package address encodes and decodes base58check addresses whose
// version byte is keyed to the network table, so a parsed address also
// tells you which network it belongs to.
package address

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/braidpool/btcio/network"

	"github.com/mr-tron/base58"
)

// PayloadLen is the hash160 payload length of a base58 address.
const PayloadLen = 20

const checksumLen = 4

func checkSum(b []byte) [checksumLen]byte {
	h := sha256.Sum256(b)
	h = sha256.Sum256(h[:])
	var c [checksumLen]byte
	copy(c[:], h[:checksumLen])
	return c
}

// EncodeAddr renders a p2pkh payload as a base58check address on netw.
func EncodeAddr(netw network.Network, payload [PayloadLen]byte) string {
	buf := make([]byte, 1+PayloadLen+checksumLen)
	buf[0] = netw.Params().PubKeyHashID
	copy(buf[1:1+PayloadLen], payload[:])
	c := checkSum(buf[:1+PayloadLen])
	copy(buf[1+PayloadLen:], c[:])
	return base58.Encode(buf)
}

// ParseAddr decodes a base58check address and reverse-maps its version
// byte to the network it belongs to. Networks sharing a version byte
// resolve to the first declared match, the way every bitcoin tool
// treats testnet-style addresses.
func ParseAddr(addr string) ([PayloadLen]byte, network.Network, error) {
	var payload [PayloadLen]byte
	buf, err := base58.Decode(addr)
	if err != nil {
		return payload, 0, err
	}
	if len(buf) != 1+PayloadLen+checksumLen {
		return payload, 0, errors.New("addr len invalid")
	}
	c := checkSum(buf[:1+PayloadLen])
	if !bytes.Equal(buf[1+PayloadLen:], c[:]) {
		return payload, 0, errors.New("addr checksum invalid")
	}
	for _, n := range network.Networks {
		if n.Params().PubKeyHashID == buf[0] {
			copy(payload[:], buf[1:1+PayloadLen])
			return payload, n, nil
		}
	}
	return payload, 0, fmt.Errorf("%w: address version 0x%02x", network.ErrUnknownNetwork, buf[0])
}
