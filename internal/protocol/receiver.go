package protocol

import (
	"sync"

	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// Handler processes one decoded packet from the given sender. Handlers run
// on the delivering data channel's callback and must not block on network
// I/O (the socket has exactly one reader per channel).
type Handler func(sender nodeuuid.UUID, pkt *Packet)

// Receiver dispatches decoded packets to handlers registered by type.
// Unknown types are logged once and discarded.
type Receiver struct {
	mu       sync.RWMutex
	handlers map[Type]Handler
	warned   map[Type]bool
}

// NewReceiver creates an empty Receiver.
func NewReceiver() *Receiver {
	return &Receiver{
		handlers: make(map[Type]Handler),
		warned:   make(map[Type]bool),
	}
}

// On registers fn as the handler for packets of type t, replacing any
// previous handler for that type.
func (r *Receiver) On(t Type, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = fn
}

// Dispatch decodes data and routes it to the registered handler for its
// type. A decode error or an unregistered type is logged and the packet is
// dropped; Dispatch never returns an error to the caller since a malformed
// or unexpected inbound packet must not interrupt the data channel's
// delivery loop.
func (r *Receiver) Dispatch(data []byte) {
	pkt, err := Decode(data)
	if err != nil {
		netlog.Warning("protocol: dropping malformed packet: %v", err)
		return
	}

	r.mu.RLock()
	fn, ok := r.handlers[pkt.Header.Type]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		if !r.warned[pkt.Header.Type] {
			netlog.Warning("protocol: no handler for packet type %s, dropping", pkt.Header.Type)
			r.warned[pkt.Header.Type] = true
		}
		r.mu.Unlock()
		return
	}

	fn(pkt.Header.SenderID, pkt)
}
