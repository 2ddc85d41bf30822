package network

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"net"
	"time"
)

const MaxTimeout = time.Second * 120
const HeartBeatTime = time.Second * 30
const DialTimeout = time.Second * 10

var errNetworkMismatch = errors.New("peer network mismatch")
var errSelf = errors.New("connecting to self")

// Params collects the fixed identification parameters of one network.
// The table below is the single source of truth for every forward and
// reverse mapping in this package.
type Params struct {
	Name         string    `json:"name"`
	ChainArg     string    `json:"chain_arg"`
	Magic        Magic     `json:"magic"`
	ChainHash    ChainHash `json:"chain_hash"`
	DefaultPort  int       `json:"default_port"`
	RPCPort      int       `json:"rpc_port"`
	PubKeyHashID byte      `json:"pubkey_hash_id"`
	ScriptHashID byte      `json:"script_hash_id"`
	WIFID        byte      `json:"wif_id"`
	Bech32HRP    string    `json:"bech32_hrp"`
}

var params = [...]Params{
	Bitcoin: {
		Name:     "bitcoin",
		ChainArg: "main",
		Magic:    Magic{0xf9, 0xbe, 0xb4, 0xd9},
		ChainHash: ChainHash{
			0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
			0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
			0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
			0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
		},
		DefaultPort:  8333,
		RPCPort:      8332,
		PubKeyHashID: 0x00,
		ScriptHashID: 0x05,
		WIFID:        0x80,
		Bech32HRP:    "bc",
	},
	Testnet: {
		Name:     "testnet",
		ChainArg: "test",
		Magic:    Magic{0x0b, 0x11, 0x09, 0x07},
		ChainHash: ChainHash{
			0x43, 0x49, 0x7f, 0xd7, 0xf8, 0x26, 0x95, 0x71,
			0x08, 0xf4, 0xa3, 0x0f, 0xd9, 0xce, 0xc3, 0xae,
			0xba, 0x79, 0x97, 0x20, 0x84, 0xe9, 0x0e, 0xad,
			0x01, 0xea, 0x33, 0x09, 0x00, 0x00, 0x00, 0x00,
		},
		DefaultPort:  18333,
		RPCPort:      18332,
		PubKeyHashID: 0x6f,
		ScriptHashID: 0xc4,
		WIFID:        0xef,
		Bech32HRP:    "tb",
	},
	Testnet4: {
		Name:     "testnet4",
		ChainArg: "testnet4",
		Magic:    Magic{0x1c, 0x16, 0x3f, 0x28},
		ChainHash: ChainHash{
			0x43, 0xf0, 0x8b, 0xda, 0xb0, 0x50, 0xe3, 0x5b,
			0x56, 0x7c, 0x86, 0x4b, 0x91, 0xf4, 0x7f, 0x50,
			0xae, 0x72, 0x5a, 0xe2, 0xde, 0x53, 0xbc, 0xfb,
			0xba, 0xf2, 0x84, 0xda, 0x00, 0x00, 0x00, 0x00,
		},
		DefaultPort:  48333,
		RPCPort:      48332,
		PubKeyHashID: 0x6f,
		ScriptHashID: 0xc4,
		WIFID:        0xef,
		Bech32HRP:    "tb",
	},
	Signet: {
		Name:     "signet",
		ChainArg: "signet",
		Magic:    Magic{0x0a, 0x03, 0xcf, 0x40},
		ChainHash: ChainHash{
			0xf6, 0x1e, 0xee, 0x3b, 0x63, 0xa3, 0x80, 0xa4,
			0x77, 0xa0, 0x63, 0xaf, 0x32, 0xb2, 0xbb, 0xc9,
			0x7c, 0x9f, 0xf9, 0xf0, 0x1f, 0x2c, 0x42, 0x25,
			0xe9, 0x73, 0x98, 0x81, 0x08, 0x00, 0x00, 0x00,
		},
		DefaultPort:  38333,
		RPCPort:      38332,
		PubKeyHashID: 0x6f,
		ScriptHashID: 0xc4,
		WIFID:        0xef,
		Bech32HRP:    "tb",
	},
	Regtest: {
		Name:     "regtest",
		ChainArg: "regtest",
		Magic:    Magic{0xfa, 0xbf, 0xb5, 0xda},
		ChainHash: ChainHash{
			0x06, 0x22, 0x6e, 0x46, 0x11, 0x1a, 0x0b, 0x59,
			0xca, 0xaf, 0x12, 0x60, 0x43, 0xeb, 0x5b, 0xbf,
			0x28, 0xc3, 0x4f, 0x3a, 0x5e, 0x33, 0x2a, 0x1f,
			0xc7, 0xb2, 0xb7, 0x3c, 0xf1, 0x88, 0x91, 0x0f,
		},
		DefaultPort:  18444,
		RPCPort:      18443,
		PubKeyHashID: 0x6f,
		ScriptHashID: 0xc4,
		WIFID:        0xef,
		Bech32HRP:    "bcrt",
	},
	CPUNet: {
		Name:     "cpunet",
		ChainArg: "cpunet",
		Magic:    Magic{0x63, 0x70, 0x75, 0x6e},
		ChainHash: ChainHash{
			0xe2, 0x9d, 0x5f, 0x37, 0x84, 0x0b, 0x6a, 0xc1,
			0x55, 0x98, 0x2d, 0xf4, 0x11, 0x7c, 0xc0, 0x9e,
			0x63, 0x41, 0xa8, 0x0f, 0xd6, 0x2b, 0x35, 0x77,
			0x19, 0x84, 0xc2, 0x5e, 0x08, 0x00, 0x00, 0x00,
		},
		DefaultPort:  28333,
		RPCPort:      28332,
		PubKeyHashID: 0x6f,
		ScriptHashID: 0xc4,
		WIFID:        0xef,
		Bech32HRP:    "cpu",
	},
}

type ClientConfig struct {
	Port           int
	MaxConnections int
	Path           string
}

func connStrId(s string) int {
	t := sha256.Sum256([]byte(s))
	return int(binary.LittleEndian.Uint64(t[:8])&0xfffffffffffffff) + 1
}

func connId(conn net.Conn) int {
	return connStrId(conn.RemoteAddr().String())
}
