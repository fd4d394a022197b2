package signaling

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/webrtc"
)

// Channel is the one signaling WebSocket a Socket holds, carrying its own
// CONNECTING/OPEN/CLOSING/CLOSED state machine independent of any data
// channel negotiated over it.
type Channel struct {
	mu    sync.RWMutex
	conn  *websocket.Conn
	state webrtc.State

	onOpen    []func()
	onClose   []func()
	onError   []func(error)
	onMessage []func(Message)

	closeOnce sync.Once
	readDone  chan struct{}
}

// Open dials url and starts the read pump. Open blocks until the dial
// completes; on success the returned Channel is OPEN, on failure Open
// returns a nil Channel and the dial error.
func Open(ctx context.Context, url string) (*Channel, error) {
	ch := &Channel{
		state:    webrtc.StateConnecting,
		readDone: make(chan struct{}),
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		ch.mu.Lock()
		ch.state = webrtc.StateClosed
		ch.mu.Unlock()
		close(ch.readDone)
		return nil, fmt.Errorf("signaling: dial %q: %w", url, err)
	}

	ch.conn = conn
	ch.mu.Lock()
	ch.state = webrtc.StateOpen
	ch.mu.Unlock()

	go ch.readPump()

	ch.mu.RLock()
	openCbs := append([]func(){}, ch.onOpen...)
	ch.mu.RUnlock()
	for _, cb := range openCbs {
		cb()
	}

	return ch, nil
}

func (c *Channel) readPump() {
	defer close(c.readDone)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.fail(err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			netlog.Warning("signaling: dropping malformed message: %v", err)
			continue
		}

		c.mu.RLock()
		cbs := append([]func(Message){}, c.onMessage...)
		c.mu.RUnlock()
		for _, cb := range cbs {
			cb(msg)
		}
	}
}

func (c *Channel) fail(err error) {
	c.mu.Lock()
	if c.state == webrtc.StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = webrtc.StateClosed
	errCbs := append([]func(error){}, c.onError...)
	closeCbs := append([]func(){}, c.onClose...)
	c.mu.Unlock()

	for _, cb := range errCbs {
		cb(err)
	}
	for _, cb := range closeCbs {
		cb()
	}
}

// State returns the channel's current observable state.
func (c *Channel) State() webrtc.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Send marshals msg as JSON and writes it. It fails if the channel is not
// OPEN; a failed write also moves the channel to CLOSED.
func (c *Channel) Send(msg Message) error {
	c.mu.RLock()
	open := c.state == webrtc.StateOpen
	c.mu.RUnlock()
	if !open {
		return fmt.Errorf("signaling: send on channel in state %s", c.State())
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("signaling: marshal message: %w", err)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.fail(err)
		return fmt.Errorf("signaling: write: %w", err)
	}
	return nil
}

// Close transitions the channel through CLOSING to CLOSED. Idempotent.
func (c *Channel) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		if c.state == webrtc.StateClosed {
			c.mu.Unlock()
			return
		}
		c.state = webrtc.StateClosing
		conn := c.conn
		c.mu.Unlock()

		if conn != nil {
			closeErr = conn.Close()
			<-c.readDone
		}

		c.mu.Lock()
		c.state = webrtc.StateClosed
		cbs := append([]func(){}, c.onClose...)
		c.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
	})
	return closeErr
}

// OnOpen registers a callback invoked once the dial succeeds. Since Open
// only returns after a successful dial, a callback registered on an OPEN
// channel is invoked immediately.
func (c *Channel) OnOpen(fn func()) {
	c.mu.Lock()
	c.onOpen = append(c.onOpen, fn)
	open := c.state == webrtc.StateOpen
	c.mu.Unlock()
	if open {
		fn()
	}
}

// OnClose registers a callback invoked when the channel becomes CLOSED.
func (c *Channel) OnClose(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClose = append(c.onClose, fn)
}

// OnError registers a callback invoked on a transport-level error.
func (c *Channel) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = append(c.onError, fn)
}

// OnMessage registers a callback invoked for every decoded inbound Message.
func (c *Channel) OnMessage(fn func(Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = append(c.onMessage, fn)
}
