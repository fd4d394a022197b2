package nodelist

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/vircadia/vircadia-client-go/internal/config"
	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/protocol"
	"github.com/vircadia/vircadia-client-go/internal/socket"
	"github.com/vircadia/vircadia-client-go/internal/webrtc"
)

// NodeList drives the domain-join state machine on top of a Socket: it
// sends the check-in heartbeat, maintains the Roster learned from
// DomainList packets, probes newly-advertised nodes for activation, prunes
// silent nodes, and reconnects after an unexpected disconnect.
type NodeList struct {
	cfg  config.Config
	sock *socket.Socket
	recv *protocol.Receiver

	roster *Roster

	mu          sync.RWMutex
	domainState DomainState
	domainKey   socket.Key
	ownID       nodeuuid.UUID
	url         string

	onStateChange   func(DomainState)
	onNodeAdded     func(*Node)
	onNodeKilled    func(*Node)
	onNodeActivated func(*Node)

	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
	loopOnce sync.Once
}

// New creates a NodeList with its own Socket, ready to Connect. Its
// context defaults to Background (a no-op cancel) so that roster/handler
// logic exercised directly, before Connect ever runs, never dereferences a
// nil context.
func New(cfg config.Config) *NodeList {
	ctx, cancel := context.WithCancel(context.Background())
	return &NodeList{
		cfg:    cfg,
		sock:   socket.New(),
		recv:   protocol.NewReceiver(),
		roster: newRoster(),
		ownID:  nodeuuid.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnStateChange registers a callback invoked whenever the DomainHandler's
// state changes.
func (nl *NodeList) OnStateChange(fn func(DomainState)) {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	nl.onStateChange = fn
}

// OnNodeAdded registers a callback invoked the moment a newly-advertised
// node is added to the roster, before its data channel has finished
// negotiating (the DISCONNECTED leg of a fresh node's lifecycle).
func (nl *NodeList) OnNodeAdded(fn func(*Node)) {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	nl.onNodeAdded = fn
}

// OnNodeKilled registers a callback invoked when a node is removed from
// the roster, whether by explicit kill or silent-node pruning.
func (nl *NodeList) OnNodeKilled(fn func(*Node)) {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	nl.onNodeKilled = fn
}

// OnNodeActivated registers a callback invoked the first time a roster
// node responds to its activation ping, transitioning Active() to true.
func (nl *NodeList) OnNodeActivated(fn func(*Node)) {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	nl.onNodeActivated = fn
}

func (nl *NodeList) setState(s DomainState) {
	nl.mu.Lock()
	nl.domainState = s
	cb := nl.onStateChange
	nl.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

// State returns the DomainHandler's current state.
func (nl *NodeList) State() DomainState {
	nl.mu.RLock()
	defer nl.mu.RUnlock()
	return nl.domainState
}

// Roster exposes the current set of known nodes.
func (nl *NodeList) Roster() []*Node {
	return nl.roster.all()
}

// Connect dials url's signaling endpoint, negotiates a data channel to the
// domain server, and begins the check-in heartbeat once it opens. The
// heartbeat loop persists for the life of the NodeList: it also drives
// reconnection after an unexpected disconnect (see checkIn), so Connect
// itself never needs to be re-invoked.
func (nl *NodeList) Connect(ctx context.Context, url string) error {
	nl.ctx, nl.cancel = context.WithCancel(ctx)
	nl.url = url
	nl.setState(DomainConnecting)

	nl.registerHandlers()

	key, err := nl.sock.ConnectToHost(nl.ctx, url, NodeTypeDomainServer)
	if err != nil {
		nl.setState(DomainError)
		return fmt.Errorf("nodelist: connect: %w", err)
	}
	nl.domainKey = key

	nl.sock.OnDatagram(func(k socket.Key, data []byte) {
		nl.recv.Dispatch(data)
	})

	nl.sock.OnChannelOpen(func(k socket.Key) {
		if k != nl.domainKey {
			return
		}
		nl.setState(DomainConnected)
		nl.sendConnectRequest()
	})

	nl.loopOnce.Do(func() {
		go nl.checkInLoop()
	})

	return nil
}

func (nl *NodeList) registerHandlers() {
	nl.recv.On(protocol.TypeDomainList, nl.handleDomainList)
	nl.recv.On(protocol.TypeDomainConnectionDenied, nl.handleConnectionDenied)
	nl.recv.On(protocol.TypeDomainServerRemovedNode, nl.handleRemovedNode)
	nl.recv.On(protocol.TypePong, nl.handlePong)
}

func (nl *NodeList) sendPacket(t protocol.Type, body []byte) {
	pkt := &protocol.Packet{
		Header: protocol.Header{Type: t, Version: 1, SenderID: nl.ownID},
		Body:   body,
	}
	data, err := protocol.Encode(pkt)
	if err != nil {
		netlog.Warning("nodelist: encode %s: %v", t, err)
		return
	}
	if !nl.sock.WriteDatagram(nl.domainKey, data) {
		netlog.Warning("nodelist: write %s failed, channel not open", t)
	}
}

func (nl *NodeList) sendConnectRequest() {
	nl.sendPacket(protocol.TypeDomainConnectRequest, nil)
}

// checkInLoop ticks once per CheckInPeriod for the lifetime of the
// NodeList, until the context is cancelled. Each tick either sends the
// DomainListRequest heartbeat and prunes silent roster nodes (domain
// channel open), waits out negotiation (domain channel still connecting),
// or drives a reconnect attempt (domain channel closed) — the loop itself
// never terminates on silence.
func (nl *NodeList) checkInLoop() {
	ticker := time.NewTicker(nl.cfg.CheckInPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			nl.checkIn()

		case <-nl.ctx.Done():
			return
		}
	}
}

func (nl *NodeList) checkIn() {
	switch nl.sock.State(nl.domainKey) {
	case webrtc.StateOpen:
		nl.sendPacket(protocol.TypeDomainListRequest, nil)
		nl.pruneSilentNodes()
	case webrtc.StateConnecting:
		// still negotiating; wait for the next tick.
	default:
		nl.reconnectDomain()
	}
}

// pruneSilentNodes removes roster nodes that have gone silent for longer
// than SilentNodeTimeout. The domain server itself is never considered:
// its liveness is tracked by the data channel state, not by check-in
// replies (see the design notes on this decision).
func (nl *NodeList) pruneSilentNodes() {
	pruned := nl.roster.pruneSilent(func(n *Node) bool {
		return n.SilentFor() > nl.cfg.SilentNodeTimeout
	})
	for _, n := range pruned {
		nl.notifyKilled(n)
	}
}

func (nl *NodeList) notifyKilled(n *Node) {
	nl.mu.RLock()
	cb := nl.onNodeKilled
	nl.mu.RUnlock()
	if cb != nil {
		cb(n)
	}
}

// reconnectDomain runs when the domain data channel is no longer OPEN
// between check-ins: it tears down the roster, waits out the configured
// quiescence window, then re-dials the same URL. OnChannelOpen was
// registered once in Connect and filters on nl.domainKey, so it fires
// again on its own once the new data channel opens, taking the handler
// back to CONNECTED and re-sending DomainConnectRequest with no further
// action required here.
func (nl *NodeList) reconnectDomain() {
	if nl.State() != DomainUnavailable {
		nl.setState(DomainUnavailable)
		nl.roster.clear()
	}

	select {
	case <-time.After(nl.cfg.ReconnectMinDelay):
	case <-nl.ctx.Done():
		return
	}

	netlog.Info("nodelist: attempting reconnect")
	key, err := nl.sock.ConnectToHost(nl.ctx, nl.url, NodeTypeDomainServer)
	if err != nil {
		netlog.Warning("nodelist: reconnect attempt failed: %v", err)
		return
	}
	nl.domainKey = key
}

// handleDomainList parses a roster snapshot: a sequence of one-byte node
// type + 16-byte UUID entries. Nodes not already known are added and
// queued for activation; nodes no longer listed are left alone (removal
// happens only via DomainServerRemovedNode or silent pruning).
func (nl *NodeList) handleDomainList(sender nodeuuid.UUID, pkt *protocol.Packet) {
	body := pkt.Body
	for len(body) >= 1+nodeuuid.Size {
		nodeType := body[0]
		id, err := nodeuuid.FromBE(body[1 : 1+nodeuuid.Size])
		if err != nil {
			netlog.Warning("nodelist: malformed DomainList entry: %v", err)
			return
		}
		body = body[1+nodeuuid.Size:]

		if n, ok := nl.roster.get(id); ok {
			n.Touch()
			continue
		}

		n := newNode(nodeType, id, socket.Key{NodeType: nodeType, NodeID: id})
		nl.roster.add(n)

		nl.mu.RLock()
		addedCb := nl.onNodeAdded
		nl.mu.RUnlock()
		if addedCb != nil {
			addedCb(n)
		}

		go nl.activate(n)
	}
}

// activate probes a newly-seen node by negotiating a data channel to it
// and sending a Ping, marking the node Active once a Pong is received.
func (nl *NodeList) activate(n *Node) {
	key, err := nl.sock.ConnectToHost(nl.ctx, "", n.Type)
	if err != nil {
		netlog.Warning("nodelist: activation of %s failed: %v", n.ID, err)
		return
	}
	nl.sock.Rekey(key, n.Key)

	nl.sock.OnChannelOpen(func(k socket.Key) {
		if k != n.Key {
			return
		}
		ts := make([]byte, 8)
		binary.LittleEndian.PutUint64(ts, uint64(time.Now().UnixNano()))
		pkt := &protocol.Packet{
			Header: protocol.Header{Type: protocol.TypePing, Version: 1, SenderID: nl.ownID},
			Body:   ts,
		}
		data, _ := protocol.Encode(pkt)
		nl.sock.WriteDatagram(n.Key, data)
	})
}

func (nl *NodeList) handlePong(sender nodeuuid.UUID, pkt *protocol.Packet) {
	n, ok := nl.roster.get(sender)
	if !ok {
		return
	}
	n.Touch()
	wasActive := n.Active()
	n.SetActive(true)
	if !wasActive {
		nl.mu.RLock()
		cb := nl.onNodeActivated
		nl.mu.RUnlock()
		if cb != nil {
			cb(n)
		}
	}
}

// handleConnectionDenied transitions the DomainHandler to REFUSED. The
// connection attempt must be explicitly retried by the caller.
func (nl *NodeList) handleConnectionDenied(sender nodeuuid.UUID, pkt *protocol.Packet) {
	netlog.Warning("nodelist: domain connection denied: %s", string(pkt.Body))
	nl.setState(DomainRefused)
}

// handleRemovedNode implements processKillNode: the node is removed from
// the roster and nodeKilled fires. Its data channel is not closed; the
// Socket entry stays in place until ClearConnections or Abort. If the same
// UUID is later re-advertised via DomainList it is treated as a fresh node.
func (nl *NodeList) handleRemovedNode(sender nodeuuid.UUID, pkt *protocol.Packet) {
	if len(pkt.Body) < 1+nodeuuid.Size {
		return
	}
	id, err := nodeuuid.FromBE(pkt.Body[1 : 1+nodeuuid.Size])
	if err != nil {
		return
	}

	n, ok := nl.roster.get(id)
	if !ok {
		return
	}
	nl.roster.remove(id)
	nl.notifyKilled(n)
}

// OnPacket registers fn as the handler for packets of type t, for use by
// layers above NodeList (e.g. entity edit/data packets, which NodeList
// itself has no opinion about).
func (nl *NodeList) OnPacket(t protocol.Type, fn func(sender nodeuuid.UUID, pkt *protocol.Packet)) {
	nl.recv.On(t, fn)
}

// SendToNodeType encodes body as a packet of type t and sends it to the
// first active roster node of the given type, reporting false if no such
// node is active or the send fails.
func (nl *NodeList) SendToNodeType(nodeType byte, t protocol.Type, body []byte) bool {
	for _, n := range nl.roster.all() {
		if n.Type != nodeType || !n.Active() {
			continue
		}
		pkt := &protocol.Packet{
			Header: protocol.Header{Type: t, Version: 1, SenderID: nl.ownID},
			Body:   body,
		}
		data, err := protocol.Encode(pkt)
		if err != nil {
			netlog.Warning("nodelist: encode %s: %v", t, err)
			return false
		}
		return nl.sock.WriteDatagram(n.Key, data)
	}
	return false
}

// Disconnect tears down the domain connection and every activated node's
// data channel, and stops the check-in loop.
func (nl *NodeList) Disconnect() {
	nl.once.Do(func() {
		if nl.cancel != nil {
			nl.cancel()
		}
		nl.sock.Abort()
		nl.roster.clear()
		nl.setState(DomainDisconnected)
	})
}
