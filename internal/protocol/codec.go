package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// EncodeHeader writes h into buf[:HeaderSize] and returns HeaderSize.
// All scalar fields are little-endian except the sender UUID, which is
// big-endian per the domain protocol's numeric discipline.
func EncodeHeader(buf []byte, h Header) (int, error) {
	if len(buf) < HeaderSize {
		return 0, fmt.Errorf("protocol: buffer too small for header: have %d, need %d", len(buf), HeaderSize)
	}
	if h.Sequence > sequenceMask {
		return 0, fmt.Errorf("protocol: sequence number %d exceeds 14-bit range", h.Sequence)
	}

	seqAndFlags := h.Sequence
	if h.Reliable {
		seqAndFlags |= flagReliable
	}
	if h.Message {
		seqAndFlags |= flagMessage
	}

	binary.LittleEndian.PutUint16(buf[0:2], seqAndFlags)
	buf[2] = byte(h.Type)
	buf[3] = h.Version
	h.SenderID.PutBE(buf[4:20])

	return HeaderSize, nil
}

// DecodeHeader parses a Header from buf[:HeaderSize].
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("protocol: packet too short: %d bytes (need at least %d)", len(buf), HeaderSize)
	}

	seqAndFlags := binary.LittleEndian.Uint16(buf[0:2])
	senderID, err := nodeuuid.FromBE(buf[4:20])
	if err != nil {
		return Header{}, err
	}

	return Header{
		Sequence: seqAndFlags & sequenceMask,
		Reliable: seqAndFlags&flagReliable != 0,
		Message:  seqAndFlags&flagMessage != 0,
		Type:     Type(buf[2]),
		Version:  buf[3],
		SenderID: senderID,
	}, nil
}

// Encode serializes a full Packet (header + body) into a new byte slice.
func Encode(pkt *Packet) ([]byte, error) {
	buf := make([]byte, HeaderSize+len(pkt.Body))
	if _, err := EncodeHeader(buf, pkt.Header); err != nil {
		return nil, err
	}
	copy(buf[HeaderSize:], pkt.Body)
	return buf, nil
}

// Decode parses a full Packet (header + body) from data. The returned
// Packet's Body aliases a copy of the trailing bytes, not the input slice.
func Decode(data []byte) (*Packet, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	var body []byte
	if len(data) > HeaderSize {
		body = make([]byte, len(data)-HeaderSize)
		copy(body, data[HeaderSize:])
	}

	return &Packet{Header: h, Body: body}, nil
}
