package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/braidpool/btcio/network"
	"github.com/braidpool/btcio/utils/address"

	"github.com/chzyer/readline"
)

func printParams(n network.Network) {
	p := n.Params()
	fmt.Printf("network:    %s\n", p.Name)
	fmt.Printf("chain arg:  %s\n", p.ChainArg)
	fmt.Printf("magic:      %s\n", p.Magic)
	fmt.Printf("chain hash: %s\n", p.ChainHash)
	fmt.Printf("p2p port:   %d\n", p.DefaultPort)
	fmt.Printf("rpc port:   %d\n", p.RPCPort)
	fmt.Printf("bech32 hrp: %s\n", p.Bech32HRP)
}

func runCmd(fields []string) {
	switch fields[0] {
	case "list":
		for _, n := range network.Networks {
			fmt.Printf("%-10s magic=%s chain=%s\n", n, n.Magic(), n.ChainArg())
		}
	case "net":
		if len(fields) != 2 {
			fmt.Println("usage: net <name>")
			return
		}
		n, err := network.ParseNetwork(fields[1])
		if err != nil {
			n, err = network.NetworkFromChainArg(fields[1])
		}
		if err != nil {
			fmt.Println(err)
			return
		}
		printParams(n)
	case "magic":
		if len(fields) != 2 {
			fmt.Println("usage: magic <hex>")
			return
		}
		m, err := network.ParseMagic(fields[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		n, err := network.NetworkFromMagic(m)
		if err != nil {
			fmt.Println(err)
			return
		}
		printParams(n)
	case "hash":
		if len(fields) != 2 {
			fmt.Println("usage: hash <hex>")
			return
		}
		h, err := network.ParseChainHash(fields[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		n, err := network.NetworkFromChainHash(h)
		if err != nil {
			fmt.Println(err)
			return
		}
		printParams(n)
	case "addr":
		if len(fields) != 2 {
			fmt.Println("usage: addr <address>")
			return
		}
		payload, n, err := address.ParseAddr(fields[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("network: %s\npayload: %x\n", n, payload)
	case "encode":
		if len(fields) != 3 {
			fmt.Println("usage: encode <network> <hex20>")
			return
		}
		n, err := network.ParseNetwork(fields[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		b, err := hex.DecodeString(fields[2])
		if err != nil || len(b) != address.PayloadLen {
			fmt.Printf("payload must be %d hex bytes\n", address.PayloadLen)
			return
		}
		var payload [address.PayloadLen]byte
		copy(payload[:], b)
		fmt.Println(address.EncodeAddr(n, payload))
	case "help":
		fmt.Println("commands: list, net <name>, magic <hex>, hash <hex>, addr <address>, encode <network> <hex20>, exit")
	default:
		fmt.Printf("unknown command %q, try help\n", fields[0])
	}
}

func main() {
	rl, err := readline.New("chainctl> ")
	if err != nil {
		log.Fatalf("failed to set up readline: %v", err)
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalf("read error: %v", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return
		}
		runCmd(fields)
	}
}
