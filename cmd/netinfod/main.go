package main

import (
	"flag"
	"log"
	"strings"

	"github.com/braidpool/btcio/network"
	"github.com/braidpool/btcio/utils/netrpc"
)

func main() {
	netName := flag.String("network", "bitcoin", "network to operate on")
	port := flag.Int("port", 0, "p2p listen port (0 = network default)")
	maxConn := flag.Int("maxconn", 32, "max peer connections")
	path := flag.String("path", "", "state directory for the peer address book")
	rpcAddr := flag.String("rpc", ":8400", "rpc listen addr")
	seeds := flag.String("seeds", "", "comma separated seed addresses")
	noP2P := flag.Bool("nop2p", false, "serve only the lookup table, no p2p client")
	flag.Parse()

	netw, err := network.ParseNetwork(*netName)
	if err != nil {
		netw, err = network.NetworkFromChainArg(*netName)
	}
	if err != nil {
		log.Fatalf("bad network: %v", err)
	}

	var c *network.Client
	if !*noP2P {
		ccp := make(chan network.ClientPacket, 100)
		c, err = network.NewClient(&network.ClientConfig{
			Port:           *port,
			MaxConnections: *maxConn,
			Path:           *path,
		}, ccp, netw)
		if err != nil {
			log.Fatalf("failed to set up network client: %v", err)
		}
		if *seeds != "" {
			c.AddPeers(strings.Split(*seeds, ","))
		}
		go func() {
			for pkt := range ccp {
				log.Printf("peer %d sent %d bytes", pkt.PeerId, len(pkt.Data))
			}
		}()
	}

	log.Printf("serving %s lookup table on %s", netw, *rpcAddr)
	rpc := netrpc.NewServer(c)
	rpc.Run(*rpcAddr)
}
