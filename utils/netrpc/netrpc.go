// Package netrpc serves the network identification table and its
// codecs as JSON over HTTP.
package netrpc

import (
	"encoding/hex"

	"github.com/braidpool/btcio/network"
	"github.com/braidpool/btcio/utils/address"

	"github.com/gin-gonic/gin"
)

type Server struct {
	r *gin.Engine
	c *network.Client
}

// NewServer builds the HTTP surface. c may be nil when no live client
// is attached; the lookup endpoints work either way.
func NewServer(c *network.Client) *Server {
	s := &Server{
		r: gin.New(),
		c: c,
	}
	s.r.GET("/networks", s.getNetworks)
	s.r.GET("/network/:name", s.getNetwork)
	s.r.GET("/magic/:hex", s.getMagic)
	s.r.GET("/chain_hash/:hex", s.getChainHash)
	s.r.POST("/decode_address", s.decodeAddress)
	s.r.GET("/peers", s.getPeers)
	return s
}

func (s *Server) getNetworks(c *gin.Context) {
	res := make([]*network.Params, 0, len(network.Networks))
	for _, n := range network.Networks {
		res = append(res, n.Params())
	}
	c.JSON(200, gin.H{"status": true, "networks": res})
}

func (s *Server) getNetwork(c *gin.Context) {
	name := c.Param("name")
	n, err := network.ParseNetwork(name)
	if err != nil {
		// accept the -chain= spelling too
		n, err = network.NetworkFromChainArg(name)
	}
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": true, "network": n, "params": n.Params()})
}

func (s *Server) getMagic(c *gin.Context) {
	m, err := network.ParseMagic(c.Param("hex"))
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	n, err := network.NetworkFromMagic(m)
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": true, "network": n, "params": n.Params()})
}

func (s *Server) getChainHash(c *gin.Context) {
	h, err := network.ParseChainHash(c.Param("hex"))
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	n, err := network.NetworkFromChainHash(h)
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": true, "network": n, "params": n.Params()})
}

func (s *Server) decodeAddress(c *gin.Context) {
	var body struct {
		Addr string `json:"addr"`
	}
	c.BindJSON(&body)
	payload, n, err := address.ParseAddr(body.Addr)
	if err != nil {
		c.JSON(200, gin.H{"status": false, "msg": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"status":  true,
		"network": n,
		"payload": hex.EncodeToString(payload[:]),
	})
}

func (s *Server) getPeers(c *gin.Context) {
	if s.c == nil {
		c.JSON(200, gin.H{"status": false, "msg": "no network client attached"})
		return
	}
	tot, act := s.c.GetPeerCount()
	c.JSON(200, gin.H{
		"status":  true,
		"network": s.c.Network(),
		"known":   s.c.GetAllPeerCons(),
		"total":   tot,
		"active":  act,
	})
}

func (s *Server) Run(addr string) {
	s.r.Run(addr)
}
