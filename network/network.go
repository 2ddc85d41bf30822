// Package network identifies which chain instance we are operating on
// and carries the framed message transport between nodes. Every known
// network maps to a canonical name, a -chain= argument, a 4-byte wire
// magic and a genesis chain hash; all four mappings are exact inverses
// and unknown input to any reverse mapping is an error, never a
// fallback.
package network

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownNetwork is returned by every reverse lookup handed an
// identifier outside the table.
var ErrUnknownNetwork = errors.New("unknown network")

// Network is one of the known chain instances.
type Network int

const (
	// Bitcoin is mainnet.
	Bitcoin Network = iota
	// Testnet is the testnet3 network.
	Testnet
	// Testnet4 is the testnet4 network.
	Testnet4
	// Signet is the signet network.
	Signet
	// Regtest is the local regression test network.
	Regtest
	// CPUNet is the CPU-mineable development network.
	CPUNet
)

// Networks lists every known network in declaration order.
var Networks = []Network{Bitcoin, Testnet, Testnet4, Signet, Regtest, CPUNet}

// Params returns the network's fixed parameter block.
func (n Network) Params() *Params {
	if n < 0 || int(n) >= len(params) {
		panic("network: params of unknown network")
	}
	return &params[n]
}

// String returns the canonical lowercase name.
func (n Network) String() string { return n.Params().Name }

// ChainArg returns the network's -chain= argument name.
func (n Network) ChainArg() string { return n.Params().ChainArg }

// Magic returns the wire magic prefixed to every message on n.
func (n Network) Magic() Magic { return n.Params().Magic }

// ChainHash returns the genesis block hash identifying n.
func (n Network) ChainHash() ChainHash { return n.Params().ChainHash }

// IsMainnet reports whether this is real mainnet bitcoin. There is no
// IsTestnet: !IsMainnet is less ambiguous across signet, testnet and
// regtest.
func (n Network) IsMainnet() bool { return n == Bitcoin }

// NetKind classifies a network as mainnet or some kind of test network.
type NetKind int

const (
	KindMain NetKind = iota
	KindTest
)

// Kind returns the network's classification.
func (n Network) Kind() NetKind {
	if n == Bitcoin {
		return KindMain
	}
	return KindTest
}

// ParseNetwork maps a canonical name back to its network.
func ParseNetwork(s string) (Network, error) {
	for _, n := range Networks {
		if n.Params().Name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
}

// NetworkFromChainArg maps a -chain= argument name back to its network.
func NetworkFromChainArg(s string) (Network, error) {
	for _, n := range Networks {
		if n.Params().ChainArg == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: chain arg %q", ErrUnknownNetwork, s)
}

// NetworkFromMagic maps a wire magic back to its network.
func NetworkFromMagic(m Magic) (Network, error) {
	for _, n := range Networks {
		if n.Params().Magic == m {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: magic %s", ErrUnknownNetwork, m)
}

// NetworkFromChainHash maps a genesis chain hash back to its network.
func NetworkFromChainHash(h ChainHash) (Network, error) {
	for _, n := range Networks {
		if n.Params().ChainHash == h {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: chain hash %s", ErrUnknownNetwork, h)
}

// MarshalJSON encodes the network as its canonical name.
func (n Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON decodes a canonical name.
func (n *Network) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseNetwork(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}
