package vircadia

import "github.com/vircadia/vircadia-client-go/internal/nodelist"

// DomainState is the connection lifecycle of a DomainServer.
type DomainState = nodelist.DomainState

const (
	DomainDisconnected = nodelist.DomainDisconnected
	DomainConnecting   = nodelist.DomainConnecting
	DomainConnected    = nodelist.DomainConnected
	DomainRefused      = nodelist.DomainRefused
	DomainUnavailable  = nodelist.DomainUnavailable
	DomainError        = nodelist.DomainError
)

// AssignmentState is the lifecycle of one assignment-client connection
// (avatar mixer, audio mixer, entity server, messages mixer): UNAVAILABLE
// before the domain server has advertised a node of this type (or after it
// is killed), a brief DISCONNECTED leg while a freshly-advertised node's
// data channel negotiates, then CONNECTED once its activation ping is
// answered.
type AssignmentState int

const (
	AssignmentUnavailable AssignmentState = iota
	AssignmentDisconnected
	AssignmentConnected
)

func (s AssignmentState) String() string {
	switch s {
	case AssignmentUnavailable:
		return "UNAVAILABLE"
	case AssignmentDisconnected:
		return "DISCONNECTED"
	case AssignmentConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}
