// Package nodeuuid implements the wire codec for the protocol's one 128-bit
// integer path: node and entity identifiers. Per the domain spec, all other
// multi-byte fields are ordinary little-endian scalars; UUIDs alone require
// endianness-correct 128-bit I/O, built from two 64-bit halves.
package nodeuuid

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Size is the wire width of a UUID: 16 bytes.
const Size = 16

// Nil is the zero UUID, used for an unauthenticated sender.
var Nil UUID

// UUID is a 128-bit node/entity identifier.
type UUID [Size]byte

// New returns a random v4 UUID.
func New() UUID {
	return UUID(uuid.New())
}

// Parse parses the canonical string form (e.g. "a82f40b6-ee89-46cc-b504-02b88d72a546").
func Parse(s string) (UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("nodeuuid: parse %q: %w", s, err)
	}
	return UUID(u), nil
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// IsNil reports whether u is the all-zero UUID.
func (u UUID) IsNil() bool {
	return u == Nil
}

// PutBE writes u to buf[:16] in big-endian byte order (the wire order used
// by the packet codec for sender/entity UUIDs).
func (u UUID) PutBE(buf []byte) {
	_ = buf[15]
	copy(buf[:Size], u[:])
}

// FromBE reads a big-endian-encoded UUID from buf[:16].
func FromBE(buf []byte) (UUID, error) {
	if len(buf) < Size {
		return UUID{}, fmt.Errorf("nodeuuid: need %d bytes, got %d", Size, len(buf))
	}
	var u UUID
	copy(u[:], buf[:Size])
	return u, nil
}

// PutLE writes u to buf[:16] as two little-endian 64-bit halves, high half
// first — the only other multi-word arrangement this codec ever produces,
// kept for symmetry with PutBE/FromBE.
func (u UUID) PutLE(buf []byte) {
	_ = buf[15]
	hi := binary.BigEndian.Uint64(u[0:8])
	lo := binary.BigEndian.Uint64(u[8:16])
	binary.LittleEndian.PutUint64(buf[0:8], hi)
	binary.LittleEndian.PutUint64(buf[8:16], lo)
}

// FromLE reads a UUID encoded as two little-endian 64-bit halves (as
// produced by PutLE).
func FromLE(buf []byte) (UUID, error) {
	if len(buf) < Size {
		return UUID{}, fmt.Errorf("nodeuuid: need %d bytes, got %d", Size, len(buf))
	}
	hi := binary.LittleEndian.Uint64(buf[0:8])
	lo := binary.LittleEndian.Uint64(buf[8:16])
	var u UUID
	binary.BigEndian.PutUint64(u[0:8], hi)
	binary.BigEndian.PutUint64(u[8:16], lo)
	return u, nil
}
