package network

import (
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/libp2p/go-reuseport"
	"github.com/patrickmn/go-cache"
)

// ClientPacket is one data payload received from a peer.
type ClientPacket struct {
	PeerId int
	Data   []byte
}

// Client maintains a mesh of peers on one network: it listens, dials
// out, exchanges peer addresses and relays data payloads. Known peer
// addresses and bans are held in expiring caches.
type Client struct {
	config      *ClientConfig
	netw        Network
	ln          net.Listener
	peers       map[int]*Peer
	peerCon     map[int]string
	ccp         chan ClientPacket
	cpp         chan peerMessage
	peerInfo    *cache.Cache
	banned      *cache.Cache
	allPeers    []int
	allPeerCons []string
	sendPeers   []byte
	stop        chan bool
	stopped     chan bool
	peersMut    sync.Mutex
	nonce       []byte
}

// NewClient starts a client for netw. A zero config port falls back to
// the network's default p2p port.
func NewClient(config *ClientConfig, ccp chan ClientPacket, netw Network) (*Client, error) {
	c := &Client{
		config:      config,
		netw:        netw,
		peers:       make(map[int]*Peer),
		peerCon:     make(map[int]string),
		ccp:         ccp,
		cpp:         make(chan peerMessage, 500),
		peerInfo:    cache.New(time.Hour*2, time.Minute*10),
		banned:      cache.New(cache.NoExpiration, time.Minute*10),
		allPeers:    []int{},
		allPeerCons: []string{},
		sendPeers:   []byte("[]"),
		stop:        make(chan bool, 50),
		stopped:     make(chan bool, 10),
		nonce:       make([]byte, 8),
	}
	_, err := crand.Read(c.nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to set up client nonce: %v", err)
	}
	port := config.Port
	if port == 0 {
		port = netw.Params().DefaultPort
	}
	if config.Path != "" {
		err = os.MkdirAll(filepath.Join(config.Path, "net"), 0o755)
		if err != nil {
			return nil, fmt.Errorf("error when creating network client: %v", err)
		}
	}
	c.ln, err = reuseport.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen port %d: %v", port, err)
	}
	go c.listen()
	for i := 0; i < 4; i++ {
		go c.readLoop()
	}
	go c.maintainSendPeers()
	go c.maintainPeers()
	go c.maintainConns()
	go c.broadcastFindPeer()
	if config.Path != "" {
		b, err := ioutil.ReadFile(filepath.Join(c.config.Path, "net", "peers.json"))
		if err == nil {
			var s []string
			if err := json.Unmarshal(b, &s); err == nil {
				c.AddPeers(s)
			}
		}
	}
	return c, nil
}

// Network returns the network this client operates on.
func (c *Client) Network() Network {
	return c.netw
}

func (c *Client) Stop() {
	c.istop()
	for i := 0; i < 10; i++ {
		<-c.stopped
	}
}

func (c *Client) istop() {
	for i := 0; i < 5; i++ {
		c.stop <- true
	}
	c.ln.Close()
	c.stopped <- true
	c.peersMut.Lock()
	for _, v := range c.peers {
		if v != nil {
			v.Stop()
		}
	}
	c.peers = make(map[int]*Peer)
	c.peerCon = make(map[int]string)
	c.peersMut.Unlock()
}

func (c *Client) countPeers() int {
	return len(c.peers)
}

func (c *Client) handleConn(id int, conn net.Conn) {
	c.peers[id] = nil
	go func() {
		p, err := NewPeer(id, c.netw, conn, c.cpp, c.nonce)
		if err == nil {
			rm := conn.RemoteAddr().String()
			c.peersMut.Lock()
			if p2, ok := c.peers[id]; !ok || p2 == nil {
				c.peers[id] = p
				c.peerCon[id] = rm
			}
			c.peersMut.Unlock()
		} else if errors.Is(err, errNetworkMismatch) || errors.Is(err, errSelf) {
			c.DiscardPeer(id, time.Hour*100000)
		} else {
			c.DiscardPeer(id, time.Minute*2)
		}
	}()
}

func (c *Client) listen() {
	defer c.istop()
	for {
		conn, err := c.ln.Accept()
		if err != nil {
			return
		}
		id := connId(conn)
		c.peersMut.Lock()
		if _, ok := c.peers[id]; !ok {
			if c.countPeers() < c.config.MaxConnections {
				c.handleConn(id, conn)
			} else {
				go conn.Close()
			}
		}
		c.peersMut.Unlock()
	}
}

func (c *Client) readLoop() {
	defer c.istop()
	for {
		var pm peerMessage
		select {
		case pm = <-c.cpp:
		case <-c.stop:
			return
		}
		c.peersMut.Lock()
		if si, ok := c.peerCon[pm.id]; ok {
			c.peerInfo.SetDefault(si, time.Now())
		}
		c.peersMut.Unlock()
		err := func() error {
			switch pm.msg.Command {
			case cmdPing:
			case cmdFindPeer:
				c.peersMut.Lock()
				k := c.sendPeers
				c.peersMut.Unlock()
				c.writeTo(pm.id, Message{
					Command: cmdPeerInfo,
					Payload: k,
				})
			case cmdPeerInfo:
				tmp := make([]string, 0)
				err := json.Unmarshal(pm.msg.Payload, &tmp)
				if err != nil {
					return err
				}
				c.AddPeers(tmp)
			case cmdData:
				c.ccp <- ClientPacket{
					PeerId: pm.id,
					Data:   pm.msg.Payload,
				}
			default:
				return errors.New("unknown message command")
			}
			return nil
		}()
		if err != nil {
			c.DiscardPeer(pm.id, time.Minute*2)
		}
	}
}

func (c *Client) maintainSendPeers() {
	defer c.istop()
	for {
		ts := time.Now()
		res := make(map[string]bool)
		c.peersMut.Lock()
		for _, k := range c.peerCon {
			res[k] = true
		}
		c.peersMut.Unlock()
		for k := range c.peerInfo.Items() {
			res[k] = true
		}
		t := make([]string, 0, len(res))
		for k := range res {
			t = append(t, k)
		}
		for i := 0; i < 20 && i < len(t); i++ {
			j := rand.Intn(len(t)-i) + i
			if j > i {
				t[i], t[j] = t[j], t[i]
			}
		}
		tu := t
		if len(t) > 20 {
			tu = t[:20]
		}
		c.peersMut.Lock()
		ti := make([]int, 0, len(c.peers))
		for k := range c.peers {
			ti = append(ti, k)
		}
		c.allPeers = ti
		c.allPeerCons = t
		c.sendPeers, _ = json.Marshal(tu)
		c.peersMut.Unlock()
		if c.config.Path != "" {
			b, err := json.Marshal(t)
			if err == nil {
				ioutil.WriteFile(filepath.Join(c.config.Path, "net", "peers.json"), b, 0o755)
			}
		}
		te := time.Now()
		slp := time.After(te.Sub(ts)*10 + time.Second)
		select {
		case <-slp:
		case <-c.stop:
			return
		}
	}
}

func (c *Client) writeTo(id int, msg Message) {
	c.peersMut.Lock()
	peer, ok := c.peers[id]
	c.peersMut.Unlock()
	if ok && peer != nil {
		peer.wq <- msg
	}
}

func (c *Client) broadcast(msg Message, count int) {
	o := make([]int, count)
	bpeers := make([]*Peer, 0, count)
	c.peersMut.Lock()
	le := len(c.allPeers)
	for i := 0; i < count && i < le; i++ {
		var x int
		for {
			x = rand.Intn(le)
			flag := true
			for j := 0; j < i; j++ {
				if o[j] == x {
					flag = false
				}
			}
			if flag {
				break
			}
		}
		o[i] = x
		id := c.allPeers[x]
		if peer, ok := c.peers[id]; ok && peer != nil {
			bpeers = append(bpeers, peer)
		}
	}
	c.peersMut.Unlock()
	for _, peer := range bpeers {
		peer.wq <- msg
	}
}

// WriteTo sends a data payload to one peer.
func (c *Client) WriteTo(id int, data []byte) {
	nd := make([]byte, len(data))
	copy(nd, data)
	c.writeTo(id, Message{
		Command: cmdData,
		Payload: nd,
	})
}

// Broadcast sends a data payload to up to count random peers.
func (c *Client) Broadcast(data []byte, count int) {
	nd := make([]byte, len(data))
	copy(nd, data)
	c.broadcast(Message{
		Command: cmdData,
		Payload: nd,
	}, count)
}

func (c *Client) tryConn(id int, host string) {
	port := c.config.Port
	if port == 0 {
		port = c.netw.Params().DefaultPort
	}
	la, _ := net.ResolveTCPAddr("tcp", ":"+strconv.Itoa(port))
	d := net.Dialer{
		Timeout:   DialTimeout,
		Control:   reuseport.Control,
		LocalAddr: la,
	}
	conn, err := d.Dial("tcp", host)
	c.peersMut.Lock()
	if err == nil {
		if p, ok := c.peers[id]; !ok || p == nil {
			c.handleConn(id, conn)
			c.peersMut.Unlock()
			return
		}
	}
	c.peersMut.Unlock()
	c.DiscardPeer(id, time.Duration(0))
}

func (c *Client) maintainPeers() {
	defer c.istop()
	for {
		slp := time.After(time.Second * 5)
		select {
		case <-slp:
		case <-c.stop:
			return
		}
		c.peersMut.Lock()
		if c.countPeers() < c.config.MaxConnections {
			for i := 0; i < 3 && len(c.allPeerCons) > 0; i++ {
				x := rand.Intn(len(c.allPeerCons))
				px := c.allPeerCons[x]
				if _, banned := c.banned.Get(px); banned {
					continue
				}
				id := connStrId(px)
				if _, ok := c.peers[id]; !ok {
					c.peers[id] = nil
					go c.tryConn(id, px)
				}
			}
		}
		c.peersMut.Unlock()
	}
}

func (c *Client) maintainConns() {
	defer c.istop()
	for {
		slp := time.After(time.Second * 5)
		select {
		case <-slp:
		case <-c.stop:
			return
		}
		q := []int{}
		c.peersMut.Lock()
		for id, p := range c.peers {
			if p != nil && p.Stopped() {
				q = append(q, id)
			}
		}
		c.peersMut.Unlock()
		for _, id := range q {
			go c.DiscardPeer(id, time.Duration(0))
		}
	}
}

// DiscardPeer drops a peer and bans its address for banTime.
func (c *Client) DiscardPeer(id int, banTime time.Duration) {
	c.peersMut.Lock()
	con, ok := c.peerCon[id]
	delete(c.peerCon, id)
	if ok && banTime > 0 {
		c.banned.Set(con, true, banTime)
	}
	peer, ok := c.peers[id]
	delete(c.peers, id)
	c.peersMut.Unlock()
	if ok && peer != nil {
		peer.Stop()
	}
}

// AddPeers records candidate peer addresses to dial later. Banned and
// already-known addresses are left alone.
func (c *Client) AddPeers(peers []string) {
	for _, ps := range peers {
		if len(ps) >= 100 {
			continue
		}
		if _, banned := c.banned.Get(ps); banned {
			continue
		}
		c.peerInfo.Add(ps, time.Now(), cache.DefaultExpiration)
	}
}

func (c *Client) broadcastFindPeer() {
	defer c.istop()
	empty := []byte{}
	for {
		c.broadcast(Message{
			Command: cmdFindPeer,
			Payload: empty,
		}, 3)
		slp := time.After(time.Second * 10)
		select {
		case <-c.stop:
			return
		case <-slp:
		}
	}
}

func (c *Client) GetAllPeerCons() []string {
	c.peersMut.Lock()
	defer c.peersMut.Unlock()
	return c.allPeerCons
}

func (c *Client) GetPeerCount() (int, int) {
	c.peersMut.Lock()
	defer c.peersMut.Unlock()
	act := 0
	for _, p := range c.peers {
		if p != nil {
			act++
		}
	}
	return len(c.peers), act
}
