// Package protocol defines the wire header shared by every packet sent over
// a data channel, and the type-keyed dispatch table that routes decoded
// packets to their handlers.
package protocol

import "github.com/vircadia/vircadia-client-go/internal/nodeuuid"

// Type is the single-byte packet-type discriminant.
type Type uint8

// Packet types understood by the domain-join protocol. Entity-edit and
// entity-data packets carry the property-flag-driven body defined by the
// internal/entity package; the rest are fixed small control packets handled
// directly by internal/nodelist.
const (
	TypeDomainConnectRequest   Type = 1
	TypeDomainList             Type = 2
	TypeDomainListRequest      Type = 3
	TypeDomainConnectionDenied Type = 4
	TypeDomainDisconnect       Type = 5
	TypeDomainServerRemovedNode Type = 6
	TypePing                   Type = 7
	TypePong                   Type = 8
	TypeEntityEdit             Type = 9
	TypeEntityData             Type = 10
)

func (t Type) String() string {
	switch t {
	case TypeDomainConnectRequest:
		return "DomainConnectRequest"
	case TypeDomainList:
		return "DomainList"
	case TypeDomainListRequest:
		return "DomainListRequest"
	case TypeDomainConnectionDenied:
		return "DomainConnectionDenied"
	case TypeDomainDisconnect:
		return "DomainDisconnect"
	case TypeDomainServerRemovedNode:
		return "DomainServerRemovedNode"
	case TypePing:
		return "Ping"
	case TypePong:
		return "Pong"
	case TypeEntityEdit:
		return "EntityEdit"
	case TypeEntityData:
		return "EntityData"
	default:
		return "Unknown"
	}
}

// HeaderSize is the fixed header width: 2-byte sequence+control, 1-byte
// type, 1-byte version, 16-byte sender UUID.
const HeaderSize = 2 + 1 + 1 + nodeuuid.Size

// sequenceMask isolates the 14-bit sequence number from the 2 high control
// bits packed into the same little-endian uint16.
const sequenceMask = 0x3FFF

const (
	flagReliable uint16 = 1 << 15
	flagMessage  uint16 = 1 << 14
)

// Header is the fixed preamble of every packet.
type Header struct {
	Sequence uint16 // 14-bit sequence number
	Reliable bool
	Message  bool // multipart flag
	Type     Type
	Version  uint8
	SenderID nodeuuid.UUID // zero before authentication
}

// Packet pairs a decoded Header with its type-specific body bytes.
type Packet struct {
	Header Header
	Body   []byte
}
