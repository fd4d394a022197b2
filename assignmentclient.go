package vircadia

import (
	"sync"

	"github.com/vircadia/vircadia-client-go/internal/nodelist"
)

// AssignmentClient tracks one assignment-client connection's lifecycle.
type AssignmentClient interface {
	State() AssignmentState
	OnStateChanged(func(AssignmentState))
}

// assignmentClient implements AssignmentClient by watching a NodeList for
// nodes of one particular type.
type assignmentClient struct {
	nodeType byte

	mu       sync.RWMutex
	state    AssignmentState
	onChange func(AssignmentState)
}

func newAssignmentClient(nl *nodelist.NodeList, nodeType byte) *assignmentClient {
	ac := &assignmentClient{nodeType: nodeType, state: AssignmentUnavailable}

	nl.OnNodeAdded(func(n *nodelist.Node) {
		if n.Type != nodeType {
			return
		}
		ac.setState(AssignmentDisconnected)
	})

	nl.OnNodeKilled(func(n *nodelist.Node) {
		if n.Type != nodeType {
			return
		}
		ac.setState(AssignmentUnavailable)
	})

	return ac
}

// noteActive transitions this assignment client to CONNECTED; called from
// client.go's NodeList.OnNodeActivated hook once this node type's
// activation ping gets a Pong back.
func (ac *assignmentClient) noteActive() {
	ac.setState(AssignmentConnected)
}

func (ac *assignmentClient) setState(s AssignmentState) {
	ac.mu.Lock()
	ac.state = s
	cb := ac.onChange
	ac.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

func (ac *assignmentClient) State() AssignmentState {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.state
}

func (ac *assignmentClient) OnStateChanged(fn func(AssignmentState)) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.onChange = fn
}
