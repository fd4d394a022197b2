// Package socket implements the one-to-many transport abstraction a client
// uses to reach a domain server and its assignment clients: a single
// signaling Channel multiplexed over one WebSocket, paired with a set of
// WebRTC data channels keyed by remote node identity.
package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pion "github.com/pion/webrtc/v4"

	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/signaling"
	"github.com/vircadia/vircadia-client-go/internal/webrtc"
)

// Key identifies one data channel: the remote node's type byte plus its
// UUID (nil until the domain server assigns one during check-in).
type Key struct {
	NodeType byte
	NodeID   nodeuuid.UUID
}

func (k Key) String() string {
	return fmt.Sprintf("%c:%s", k.NodeType, k.NodeID)
}

// Entry is one negotiated data channel plus the PeerConnection backing it.
// Its Key is mutable (Rekey reassigns it once the domain handshake reveals
// the remote's real UUID), so reads and writes both go through keyMu
// rather than letting callbacks close over a stale value.
type Entry struct {
	keyMu sync.RWMutex
	key   Key

	pc *pion.PeerConnection
	dc *webrtc.DataChannel
}

// currentKey returns the entry's up-to-date Key.
func (e *Entry) currentKey() Key {
	e.keyMu.RLock()
	defer e.keyMu.RUnlock()
	return e.key
}

func (e *Entry) setKey(k Key) {
	e.keyMu.Lock()
	defer e.keyMu.Unlock()
	e.key = k
}

// State returns the entry's data channel state.
func (e *Entry) State() webrtc.State { return e.dc.State() }

// Socket owns exactly one signaling Channel and a set of data channels, one
// per remote node. It is safe for concurrent use.
type Socket struct {
	sig *signaling.Channel

	mu      sync.RWMutex
	entries map[Key]*Entry

	onChannelOpen []func(Key)
	onDatagram    []func(Key, []byte)
}

// New creates a Socket with no signaling channel yet attached.
func New() *Socket {
	return &Socket{entries: make(map[Key]*Entry)}
}

// OnChannelOpen registers a callback invoked whenever any data channel
// transitions to OPEN. Every registered callback fires for every channel
// (callers filter on the Key they care about) — NodeList registers one
// per activated node, alongside the one it registers for the domain
// server itself, so a later registration must never discard an earlier
// one.
func (s *Socket) OnChannelOpen(fn func(Key)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChannelOpen = append(s.onChannelOpen, fn)
}

// OnDatagram registers a callback invoked for every inbound data channel
// message, identified by the sending entry's Key.
func (s *Socket) OnDatagram(fn func(Key, []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDatagram = append(s.onDatagram, fn)
}

// ConnectToHost opens the signaling channel to url (if not already open)
// and negotiates a new data channel for nodeType, offering first. The
// returned Key has a nil NodeID until the caller learns the remote's real
// identity from the application-layer handshake.
func (s *Socket) ConnectToHost(ctx context.Context, url string, nodeType byte) (Key, error) {
	if err := s.ensureSignaling(ctx, url); err != nil {
		return Key{}, err
	}

	pc, err := webrtc.NewPeerConnection()
	if err != nil {
		return Key{}, fmt.Errorf("socket: new peer connection: %w", err)
	}

	label := string(rune(nodeType))
	rawDC, err := webrtc.CreateDataChannel(pc, label)
	if err != nil {
		pc.Close()
		return Key{}, fmt.Errorf("socket: create data channel: %w", err)
	}

	dc := webrtc.New(nodeType, rawDC)
	key := Key{NodeType: nodeType}

	entry := &Entry{key: key, pc: pc, dc: dc}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	dc.OnOpen(func() {
		k := entry.currentKey()
		netlog.Info("socket: data channel %s open", k)
		s.mu.RLock()
		cbs := append([]func(Key){}, s.onChannelOpen...)
		s.mu.RUnlock()
		for _, cb := range cbs {
			cb(k)
		}
	})
	dc.OnMessage(func(data []byte) {
		k := entry.currentKey()
		s.mu.RLock()
		cbs := append([]func(Key, []byte){}, s.onDatagram...)
		s.mu.RUnlock()
		for _, cb := range cbs {
			cb(k, data)
		}
	})
	dc.OnClose(func() {
		netlog.Info("socket: data channel %s closed", entry.currentKey())
	})
	dc.OnError(func(err error) {
		netlog.Warning("socket: data channel %s error: %v", entry.currentKey(), err)
	})

	pc.OnICECandidate(func(c *pion.ICECandidate) {
		if c == nil {
			return
		}
		payload, _ := json.Marshal(c.ToJSON())
		s.sig.Send(signaling.Message{
			Type:      signaling.MsgTypeCandidate,
			To:        entry.currentKey().String(),
			Candidate: string(payload),
		})
	})

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return Key{}, fmt.Errorf("socket: create offer: %w", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		return Key{}, fmt.Errorf("socket: set local description: %w", err)
	}

	if err := s.sig.Send(signaling.Message{
		Type: signaling.MsgTypeOffer,
		To:   key.String(),
		SDP:  offer.SDP,
	}); err != nil {
		return Key{}, fmt.Errorf("socket: send offer: %w", err)
	}

	return key, nil
}

func (s *Socket) ensureSignaling(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sig != nil && s.sig.State() == webrtc.StateOpen {
		return nil
	}

	ch, err := signaling.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("socket: open signaling channel: %w", err)
	}
	ch.OnMessage(s.handleSignalingMessage)
	s.sig = ch
	return nil
}

func (s *Socket) handleSignalingMessage(msg signaling.Message) {
	s.mu.RLock()
	var target *Entry
	for k, e := range s.entries {
		if k.String() == msg.From || k.String() == msg.To {
			target = e
			break
		}
	}
	s.mu.RUnlock()
	if target == nil {
		netlog.Warning("socket: signaling message for unknown peer %q", msg.From)
		return
	}

	switch msg.Type {
	case signaling.MsgTypeAnswer:
		err := target.pc.SetRemoteDescription(pion.SessionDescription{
			Type: pion.SDPTypeAnswer,
			SDP:  msg.SDP,
		})
		if err != nil {
			netlog.Warning("socket: set remote description: %v", err)
		}
	case signaling.MsgTypeCandidate:
		var init pion.ICECandidateInit
		if err := json.Unmarshal([]byte(msg.Candidate), &init); err != nil {
			netlog.Warning("socket: decode ICE candidate: %v", err)
			return
		}
		if err := target.pc.AddICECandidate(init); err != nil {
			netlog.Warning("socket: add ICE candidate: %v", err)
		}
	}
}

// WriteDatagram sends payload on the data channel identified by key. It
// reports false if the channel is not OPEN, mirroring the underlying
// DataChannel.Send contract.
func (s *Socket) WriteDatagram(key Key, payload []byte) bool {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return entry.dc.Send(payload)
}

// State reports the data channel state for key, or CLOSED if no such
// channel exists.
func (s *Socket) State(key Key) webrtc.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return webrtc.StateClosed
	}
	return entry.State()
}

// Rekey reassigns an entry registered under a provisional key (NodeID nil)
// to its learned identity, once the domain handshake reveals it.
func (s *Socket) Rekey(old, new Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[old]
	if !ok {
		return
	}
	delete(s.entries, old)
	entry.setKey(new)
	s.entries[new] = entry
}

// ClearConnections closes every data channel but leaves the signaling
// channel open.
func (s *Socket) ClearConnections() {
	s.mu.Lock()
	entries := make([]*Entry, 0, len(s.entries))
	for k, e := range s.entries {
		entries = append(entries, e)
		delete(s.entries, k)
	}
	s.mu.Unlock()

	for _, e := range entries {
		e.dc.Close()
		e.pc.Close()
	}
}

// Abort tears down everything: all data channels and the signaling channel.
func (s *Socket) Abort() {
	s.ClearConnections()
	s.mu.Lock()
	sig := s.sig
	s.sig = nil
	s.mu.Unlock()
	if sig != nil {
		sig.Close()
	}
}
