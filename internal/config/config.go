// Package config holds the client's tunable connection parameters.
package config

import "time"

// Default values named in the domain protocol's configuration surface.
const (
	DefaultMaxPacketSize     = 1492
	DefaultCheckInPeriod     = 1000 * time.Millisecond
	DefaultSilentNodeTimeout = 2000 * time.Millisecond
	DefaultReconnectMinDelay = 500 * time.Millisecond
)

// Config stores the parameters governing a single domain connection.
type Config struct {
	// SignalingURL is the WebSocket endpoint used to negotiate WebRTC
	// data channels with the domain server and its assignment clients.
	SignalingURL string

	// MaxPacketSize bounds the size of a single outgoing packet, typically
	// derived from the data channel's MTU.
	MaxPacketSize int

	// CheckInPeriod is the interval of the domain check-in timer.
	CheckInPeriod time.Duration

	// SilentNodeTimeout is how long a node may go without being heard from
	// before it is pruned from the roster.
	SilentNodeTimeout time.Duration

	// ReconnectMinDelay is the minimum quiescence window enforced between a
	// disconnect and the next connect to the same host.
	ReconnectMinDelay time.Duration
}

// Default returns a Config populated with the documented defaults and no
// SignalingURL (the caller must set one before connecting).
func Default() Config {
	return Config{
		MaxPacketSize:     DefaultMaxPacketSize,
		CheckInPeriod:     DefaultCheckInPeriod,
		SilentNodeTimeout: DefaultSilentNodeTimeout,
		ReconnectMinDelay: DefaultReconnectMinDelay,
	}
}
