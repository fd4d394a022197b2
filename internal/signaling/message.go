// Package signaling handles the WebSocket-based signaling phase used to
// negotiate WebRTC data channels with a domain server or assignment client:
// SDP offer/answer exchange and trickled ICE candidates.
package signaling

// MessageType identifies the kind of signaling message.
type MessageType string

const (
	MsgTypeOffer     MessageType = "offer"
	MsgTypeAnswer    MessageType = "answer"
	MsgTypeCandidate MessageType = "candidate"
)

// Message is the JSON structure exchanged over the signaling WebSocket.
// To/From carry the node identity the message is addressed to or from; Echo
// marks a message reflected back by the server rather than relayed from a
// peer; nothing in this module reads it.
type Message struct {
	Type      MessageType `json:"type"`
	To        string      `json:"to,omitempty"`
	From      string      `json:"from,omitempty"`
	Echo      bool        `json:"echo,omitempty"`
	SDP       string      `json:"sdp,omitempty"`
	Candidate string      `json:"candidate,omitempty"` // JSON-encoded ICECandidateInit
}
