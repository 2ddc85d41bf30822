package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	names := map[Network]string{
		Bitcoin:  "bitcoin",
		Testnet:  "testnet",
		Testnet4: "testnet4",
		Signet:   "signet",
		Regtest:  "regtest",
		CPUNet:   "cpunet",
	}
	for n, want := range names {
		if n.String() != want {
			t.Fatalf("%d stringifies to %q, want %q", n, n.String(), want)
		}
		back, err := ParseNetwork(want)
		if err != nil {
			t.Fatal(err)
		}
		if back != n {
			t.Fatalf("%q parsed to %v", want, back)
		}
	}
	if _, err := ParseNetwork("fakenet"); !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("expected unknown network, got %v", err)
	}
}

func TestChainArgRoundTrip(t *testing.T) {
	args := map[Network]string{
		Bitcoin:  "main",
		Testnet:  "test",
		Testnet4: "testnet4",
		Signet:   "signet",
		Regtest:  "regtest",
		CPUNet:   "cpunet",
	}
	for n, want := range args {
		if n.ChainArg() != want {
			t.Fatalf("%v chain arg is %q, want %q", n, n.ChainArg(), want)
		}
		back, err := NetworkFromChainArg(want)
		if err != nil {
			t.Fatal(err)
		}
		if back != n {
			t.Fatalf("chain arg %q mapped to %v", want, back)
		}
	}
	if _, err := NetworkFromChainArg("mainnet"); !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("expected unknown network, got %v", err)
	}
}

func TestMagicRoundTrip(t *testing.T) {
	for _, n := range Networks {
		back, err := NetworkFromMagic(n.Magic())
		if err != nil {
			t.Fatal(err)
		}
		if back != n {
			t.Fatalf("magic of %v mapped to %v", n, back)
		}
	}
	_, err := NetworkFromMagic(Magic{0xff, 0xff, 0xff, 0xff})
	if !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("expected unknown network, got %v", err)
	}
}

func TestChainHashRoundTrip(t *testing.T) {
	for _, n := range Networks {
		back, err := NetworkFromChainHash(n.ChainHash())
		if err != nil {
			t.Fatal(err)
		}
		if back != n {
			t.Fatalf("chain hash of %v mapped to %v", n, back)
		}
	}
	_, err := NetworkFromChainHash(ChainHash{})
	if !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("expected unknown network, got %v", err)
	}
}

func TestBitcoinChainHashDisplay(t *testing.T) {
	want := "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	if Bitcoin.ChainHash().String() != want {
		t.Fatalf("wrong genesis hash: %s", Bitcoin.ChainHash())
	}
	back, err := ParseChainHash(want)
	if err != nil {
		t.Fatal(err)
	}
	if back != Bitcoin.ChainHash() {
		t.Fatal("chain hash did not round trip through its display form")
	}
}

func TestKind(t *testing.T) {
	if !Bitcoin.IsMainnet() || Bitcoin.Kind() != KindMain {
		t.Fatal("bitcoin must be mainnet")
	}
	for _, n := range []Network{Testnet, Testnet4, Signet, Regtest, CPUNet} {
		if n.IsMainnet() || n.Kind() != KindTest {
			t.Fatalf("%v must not be mainnet", n)
		}
	}
}

func TestNetworkJSON(t *testing.T) {
	for _, n := range Networks {
		b, err := json.Marshal(n)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, []byte(`"`+n.String()+`"`)) {
			t.Fatalf("wrong json: %s", b)
		}
		var back Network
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatal(err)
		}
		if back != n {
			t.Fatalf("%s unmarshaled to %v", b, back)
		}
	}
	var n Network
	if err := json.Unmarshal([]byte(`"fakenet"`), &n); err == nil {
		t.Fatal("fakenet must not unmarshal")
	}
}

func TestDefaultPorts(t *testing.T) {
	if Bitcoin.Params().DefaultPort != 8333 || Bitcoin.Params().RPCPort != 8332 {
		t.Fatal("wrong mainnet ports")
	}
	seen := make(map[Magic]bool)
	for _, n := range Networks {
		if seen[n.Magic()] {
			t.Fatalf("duplicate magic %s", n.Magic())
		}
		seen[n.Magic()] = true
	}
}
