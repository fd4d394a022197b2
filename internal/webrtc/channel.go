package webrtc

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

// State is the observable lifecycle of a DataChannel.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// DataChannel wraps a pion DataChannel with the CONNECTING/OPEN/CLOSING/
// CLOSED state machine specified for the transport layer. Send does no
// backpressure or buffered-amount tracking.
type DataChannel struct {
	raw      *webrtc.DataChannel
	nodeType byte

	mu    sync.RWMutex
	state State

	onOpen    []func()
	onClose   []func()
	onError   []func(error)
	onMessage []func([]byte)
}

// New wraps raw, which must have just been created (and is therefore in
// pion's own "connecting" readyState), and wires the open/close/error
// callbacks that drive the State machine.
func New(nodeType byte, raw *webrtc.DataChannel) *DataChannel {
	dc := &DataChannel{
		raw:      raw,
		nodeType: nodeType,
		state:    StateConnecting,
	}

	raw.OnOpen(func() {
		dc.mu.Lock()
		if dc.state == StateConnecting {
			dc.state = StateOpen
		}
		cbs := append([]func(){}, dc.onOpen...)
		dc.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
	})

	raw.OnClose(func() {
		dc.mu.Lock()
		dc.state = StateClosed
		cbs := append([]func(){}, dc.onClose...)
		dc.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
	})

	raw.OnError(func(err error) {
		dc.mu.Lock()
		dc.state = StateClosed
		errCbs := append([]func(error){}, dc.onError...)
		closeCbs := append([]func(){}, dc.onClose...)
		dc.mu.Unlock()
		for _, cb := range errCbs {
			cb(err)
		}
		for _, cb := range closeCbs {
			cb()
		}
	})

	raw.OnMessage(func(msg webrtc.DataChannelMessage) {
		dc.mu.RLock()
		cbs := append([]func([]byte){}, dc.onMessage...)
		dc.mu.RUnlock()
		for _, cb := range cbs {
			cb(msg.Data)
		}
	})

	return dc
}

// NodeType returns the remote node type this channel was created for.
func (dc *DataChannel) NodeType() byte { return dc.nodeType }

// State returns the current observable state.
func (dc *DataChannel) State() State {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.state
}

// Send transmits payload iff the channel is OPEN. It never panics or
// returns an error on a closed channel — it simply returns false, matching
// the spec's "send after close returns false" contract.
func (dc *DataChannel) Send(payload []byte) bool {
	dc.mu.RLock()
	open := dc.state == StateOpen
	dc.mu.RUnlock()
	if !open {
		return false
	}
	if err := dc.raw.Send(payload); err != nil {
		dc.mu.Lock()
		dc.state = StateClosed
		errCbs := append([]func(error){}, dc.onError...)
		closeCbs := append([]func(){}, dc.onClose...)
		dc.mu.Unlock()
		for _, cb := range errCbs {
			cb(err)
		}
		for _, cb := range closeCbs {
			cb()
		}
		return false
	}
	return true
}

// Close transitions the channel through CLOSING to CLOSED. Idempotent.
func (dc *DataChannel) Close() error {
	dc.mu.Lock()
	if dc.state == StateClosed {
		dc.mu.Unlock()
		return nil
	}
	dc.state = StateClosing
	dc.mu.Unlock()

	err := dc.raw.Close()

	dc.mu.Lock()
	dc.state = StateClosed
	cbs := append([]func(){}, dc.onClose...)
	dc.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}

	return err
}

// OnOpen registers a callback invoked when the channel transitions to OPEN.
func (dc *DataChannel) OnOpen(fn func()) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onOpen = append(dc.onOpen, fn)
}

// OnClose registers a callback invoked when the channel transitions to
// CLOSED, whether by explicit Close, remote close, or error.
func (dc *DataChannel) OnClose(fn func()) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onClose = append(dc.onClose, fn)
}

// OnError registers a callback invoked on a transport-level error.
func (dc *DataChannel) OnError(fn func(error)) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onError = append(dc.onError, fn)
}

// OnMessage registers a callback invoked for every inbound message.
func (dc *DataChannel) OnMessage(fn func([]byte)) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onMessage = append(dc.onMessage, fn)
}

// Raw exposes the underlying pion DataChannel for signaling-layer use
// (SDP negotiation does not go through this wrapper).
func (dc *DataChannel) Raw() *webrtc.DataChannel { return dc.raw }
