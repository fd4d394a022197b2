package nodelist

import (
	"sync"
	"time"

	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/socket"
)

// Node is one assignment client the domain server has advertised: an
// active data channel, or the record of one pending activation.
type Node struct {
	Type byte
	ID   nodeuuid.UUID
	Key  socket.Key

	mu         sync.Mutex
	lastHeard  time.Time
	active     bool
	killed     bool
}

func newNode(t byte, id nodeuuid.UUID, key socket.Key) *Node {
	return &Node{Type: t, ID: id, Key: key, lastHeard: time.Now()}
}

// Touch records that traffic was just heard from this node, resetting the
// silent-node timeout.
func (n *Node) Touch() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastHeard = time.Now()
}

// SilentFor reports how long it has been since traffic was last heard.
func (n *Node) SilentFor() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return time.Since(n.lastHeard)
}

// SetActive marks the node as having completed activation (its data
// channel responded to a ping probe).
func (n *Node) SetActive(active bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = active
}

// Active reports whether the node has completed activation.
func (n *Node) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}
