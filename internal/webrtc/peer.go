// Package webrtc wraps pion/webrtc PeerConnections and DataChannels with
// the observable state machines the domain protocol depends on.
package webrtc

import (
	"github.com/pion/webrtc/v4"
)

// STUN servers used for ICE candidate gathering. No TURN relay is
// configured: the client is expected to reach the domain server and its
// assignment clients directly or via a server-side relay outside this
// package's concern.
var stunServers = []string{
	"stun:stun.l.google.com:19302",
	"stun:stun1.l.google.com:19302",
}

// NewPeerConnection creates a PeerConnection configured with the default
// STUN servers.
func NewPeerConnection() (*webrtc.PeerConnection, error) {
	config := webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: stunServers},
		},
	}
	return webrtc.NewPeerConnection(config)
}

// CreateDataChannel creates an ordered, SDP-negotiated DataChannel labeled
// for the given remote node type. Ordered delivery is required here (unlike
// a raw byte tunnel) because the Packet Receiver observes packets on a
// single data channel in order (see the concurrency model's ordering rule).
func CreateDataChannel(pc *webrtc.PeerConnection, label string) (*webrtc.DataChannel, error) {
	ordered := true
	return pc.CreateDataChannel(label, &webrtc.DataChannelInit{
		Ordered: &ordered,
	})
}
