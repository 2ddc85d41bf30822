package network

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/braidpool/btcio/iox"
)

const (
	cmdVersion  = "version"
	cmdPing     = "ping"
	cmdFindPeer = "findpeer"
	cmdPeerInfo = "peerinfo"
	cmdData     = "data"
)

type peerMessage struct {
	id  int
	msg Message
}

// Peer drives one connection: a read loop, a write loop and a
// heartbeat, all framing traffic as messages on the configured
// network. The connection's byte streams are reached through the iox
// bridges over bufio.
type Peer struct {
	id       int
	netw     Network
	conn     net.Conn
	r        iox.BufReader
	w        iox.Writer
	rq       chan peerMessage
	wq       chan Message
	stop     chan bool
	stopped  chan bool
	stopFlag int32
}

// NewPeer wraps conn and performs the version handshake. A peer on a
// different network (errNetworkMismatch) or this node itself (errSelf)
// is rejected and the connection closed.
func NewPeer(id int, netw Network, conn net.Conn, rq chan peerMessage, nonce []byte) (*Peer, error) {
	p := &Peer{
		id:      id,
		netw:    netw,
		conn:    conn,
		r:       iox.NewBufReader(conn),
		w:       iox.NewFromStd(bufio.NewWriter(conn)),
		rq:      rq,
		wq:      make(chan Message, 10),
		stop:    make(chan bool, 20),
		stopped: make(chan bool, 10),
	}
	if err := p.handshake(nonce); err != nil {
		conn.Close()
		return nil, err
	}
	go p.readFunc()
	go p.writeFunc()
	go p.heartBeat()
	return p, nil
}

func (p *Peer) handshake(nonce []byte) error {
	p.conn.SetDeadline(time.Now().Add(DialTimeout))
	err := EncodeMessage(p.w, p.netw, Message{Command: cmdVersion, Payload: nonce})
	if err != nil {
		return err
	}
	if err := p.w.Flush(); err != nil {
		return err
	}
	msg, err := DecodeMessage(p.r, p.netw)
	if err != nil {
		if errors.Is(err, errBadMagic) {
			return errNetworkMismatch
		}
		return err
	}
	if msg.Command != cmdVersion {
		return fmt.Errorf("expected version message, got %q", msg.Command)
	}
	if bytes.Equal(msg.Payload, nonce) {
		return errSelf
	}
	p.conn.SetDeadline(time.Time{})
	return nil
}

func (p *Peer) Stop() {
	p.istop()
	for i := 0; i < 4; i++ {
		<-p.stopped
	}
	p.conn.Close()
}

func (p *Peer) Stopped() bool {
	return atomic.LoadInt32(&p.stopFlag) == 1
}

func (p *Peer) istop() {
	atomic.StoreInt32(&p.stopFlag, 1)
	for i := 0; i < 5; i++ {
		p.stop <- true
	}
	p.stopped <- true
	p.conn.SetDeadline(time.Now())
}

func (p *Peer) readFunc() {
	defer p.istop()
	for {
		p.conn.SetDeadline(time.Now().Add(MaxTimeout))
		msg, err := DecodeMessage(p.r, p.netw)
		if err != nil {
			return
		}
		select {
		case <-p.stop:
			return
		default:
		}
		p.rq <- peerMessage{
			id:  p.id,
			msg: msg,
		}
	}
}

func (p *Peer) writeFunc() {
	defer p.istop()
	for {
		select {
		case msg := <-p.wq:
			err := EncodeMessage(p.w, p.netw, msg)
			if err != nil {
				return
			}
			if err := p.w.Flush(); err != nil {
				return
			}
		case <-p.stop:
			return
		}
	}
}

func (p *Peer) heartBeat() {
	defer p.istop()
	empty := []byte{}
	for {
		p.wq <- Message{Command: cmdPing, Payload: empty}
		slp := time.After(HeartBeatTime)
		select {
		case <-p.stop:
			return
		case <-slp:
		}
	}
}
