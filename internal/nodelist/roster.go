package nodelist

import (
	"sync"

	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// Roster is the set of assignment-client Nodes currently known, keyed by
// UUID. Grounded on the teacher's route-table-plus-mutex shape.
type Roster struct {
	mu    sync.RWMutex
	nodes map[nodeuuid.UUID]*Node
}

func newRoster() *Roster {
	return &Roster{nodes: make(map[nodeuuid.UUID]*Node)}
}

func (r *Roster) add(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[n.ID] = n
}

func (r *Roster) get(id nodeuuid.UUID) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	return n, ok
}

func (r *Roster) remove(id nodeuuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, id)
}

func (r *Roster) all() []*Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	return out
}

func (r *Roster) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = make(map[nodeuuid.UUID]*Node)
}

// pruneSilent removes and returns every node for which timeout reports
// true.
func (r *Roster) pruneSilent(timeout func(*Node) bool) []*Node {
	r.mu.Lock()
	var pruned []*Node
	for id, n := range r.nodes {
		if timeout(n) {
			pruned = append(pruned, n)
			delete(r.nodes, id)
		}
	}
	r.mu.Unlock()

	for _, n := range pruned {
		netlog.Info("nodelist: pruning silent node %s (%c)", n.ID, n.Type)
	}
	return pruned
}
