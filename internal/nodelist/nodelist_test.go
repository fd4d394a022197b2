package nodelist

import (
	"testing"
	"time"

	"github.com/vircadia/vircadia-client-go/internal/config"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/protocol"
)

func newTestNodeList() *NodeList {
	cfg := config.Default()
	cfg.SilentNodeTimeout = 20 * time.Millisecond
	return New(cfg)
}

func TestHandleDomainListAddsNewNodes(t *testing.T) {
	nl := newTestNodeList()

	id1 := nodeuuid.New()
	id2 := nodeuuid.New()

	body := make([]byte, 0, 2*(1+nodeuuid.Size))
	body = append(body, NodeTypeEntityServer)
	buf1 := make([]byte, nodeuuid.Size)
	id1.PutBE(buf1)
	body = append(body, buf1...)

	body = append(body, NodeTypeAudioMixer)
	buf2 := make([]byte, nodeuuid.Size)
	id2.PutBE(buf2)
	body = append(body, buf2...)

	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})

	if len(nl.Roster()) != 2 {
		t.Fatalf("expected 2 nodes in roster, got %d", len(nl.Roster()))
	}
	if _, ok := nl.roster.get(id1); !ok {
		t.Fatalf("expected id1 in roster")
	}
	if _, ok := nl.roster.get(id2); !ok {
		t.Fatalf("expected id2 in roster")
	}
}

func TestHandleDomainListTouchesExistingNode(t *testing.T) {
	nl := newTestNodeList()
	id := nodeuuid.New()

	buf := make([]byte, nodeuuid.Size)
	id.PutBE(buf)
	body := append([]byte{NodeTypeEntityServer}, buf...)

	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})
	n, ok := nl.roster.get(id)
	if !ok {
		t.Fatalf("expected node present after first DomainList")
	}
	first := n

	time.Sleep(5 * time.Millisecond)
	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})

	again, ok := nl.roster.get(id)
	if !ok || again != first {
		t.Fatalf("expected the same Node instance to be touched, not replaced")
	}
}

func TestPruneSilentNodesRemovesStale(t *testing.T) {
	nl := newTestNodeList()
	id := nodeuuid.New()

	buf := make([]byte, nodeuuid.Size)
	id.PutBE(buf)
	body := append([]byte{NodeTypeEntityServer}, buf...)
	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})

	var killed []*Node
	nl.OnNodeKilled(func(n *Node) { killed = append(killed, n) })

	time.Sleep(30 * time.Millisecond)
	nl.pruneSilentNodes()

	if len(nl.Roster()) != 0 {
		t.Fatalf("expected roster empty after pruning, got %d", len(nl.Roster()))
	}
	if len(killed) != 1 || killed[0].ID != id {
		t.Fatalf("expected nodeKilled callback for %s, got %+v", id, killed)
	}
}

func TestHandleRemovedNodeKillsAndAllowsRejoin(t *testing.T) {
	nl := newTestNodeList()
	id := nodeuuid.New()

	buf := make([]byte, nodeuuid.Size)
	id.PutBE(buf)
	body := append([]byte{NodeTypeEntityServer}, buf...)
	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})

	var killed bool
	nl.OnNodeKilled(func(n *Node) { killed = true })

	removeBody := append([]byte{NodeTypeEntityServer}, buf...)
	nl.handleRemovedNode(nodeuuid.Nil, &protocol.Packet{Body: removeBody})

	if !killed {
		t.Fatalf("expected nodeKilled to fire")
	}
	if _, ok := nl.roster.get(id); ok {
		t.Fatalf("expected node removed from roster")
	}

	// Rejoin: the same UUID reappearing in a later DomainList is a fresh node.
	nl.handleDomainList(nodeuuid.Nil, &protocol.Packet{Body: body})
	if _, ok := nl.roster.get(id); !ok {
		t.Fatalf("expected rejoin to re-add the node")
	}
}

func TestHandleConnectionDeniedSetsRefused(t *testing.T) {
	nl := newTestNodeList()
	nl.handleConnectionDenied(nodeuuid.Nil, &protocol.Packet{Body: []byte("banned")})
	if nl.State() != DomainRefused {
		t.Fatalf("State = %v, want REFUSED", nl.State())
	}
}
