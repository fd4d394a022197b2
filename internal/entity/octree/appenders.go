package octree

import (
	"encoding/binary"
	"math"

	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// Vec2, Vec3, Color, Quaternion, Rect and AACube are the small value types
// the entity encoder packs; they exist here (rather than importing a math
// library) because each one's wire layout, not its arithmetic, is this
// package's concern.
type Vec2 struct{ X, Y float32 }
type Vec3 struct{ X, Y, Z float32 }
type Color struct{ R, G, B uint8 }
type Quaternion struct{ X, Y, Z, W float32 }
type Rect struct{ X, Y, Width, Height float32 }
type AACube struct {
	Corner Vec3
	Scale  float32
}

// AppendBool writes a single byte: 1 or 0.
func AppendBool(c *PacketContext, v bool) AppendState {
	mk := c.mark()
	buf := c.reserve(1)
	if buf == nil {
		c.rollback(mk)
		return StateNone
	}
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	c.commit(1)
	return StateCompleted
}

// AppendUint8 writes a single byte.
func AppendUint8(c *PacketContext, v uint8) AppendState {
	buf := c.reserve(1)
	if buf == nil {
		return StateNone
	}
	buf[0] = v
	c.commit(1)
	return StateCompleted
}

// AppendUint16 writes v little-endian.
func AppendUint16(c *PacketContext, v uint16) AppendState {
	buf := c.reserve(2)
	if buf == nil {
		return StateNone
	}
	binary.LittleEndian.PutUint16(buf, v)
	c.commit(2)
	return StateCompleted
}

// AppendUint32 writes v little-endian.
func AppendUint32(c *PacketContext, v uint32) AppendState {
	buf := c.reserve(4)
	if buf == nil {
		return StateNone
	}
	binary.LittleEndian.PutUint32(buf, v)
	c.commit(4)
	return StateCompleted
}

// AppendUint64 writes v little-endian.
func AppendUint64(c *PacketContext, v uint64) AppendState {
	buf := c.reserve(8)
	if buf == nil {
		return StateNone
	}
	binary.LittleEndian.PutUint64(buf, v)
	c.commit(8)
	return StateCompleted
}

// maxFiniteMagnitude is the largest magnitude a valid float32 value may
// have; NaN and ±Inf are rejected outright rather than clamped to this.
const maxFiniteMagnitude = 3.4028235e38

// isFiniteFloat32 reports whether v is neither NaN, ±Inf, nor larger in
// magnitude than a float32 can represent.
func isFiniteFloat32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) <= maxFiniteMagnitude
}

// AppendFloat32 writes v little-endian. NaN, ±Inf, and out-of-range
// magnitudes are rejected: nothing is written and ctx is left untouched.
func AppendFloat32(c *PacketContext, v float32) AppendState {
	if !isFiniteFloat32(v) {
		netlog.Error("octree: cannot write invalid float32 value %v", v)
		return StateNone
	}
	return AppendUint32(c, math.Float32bits(v))
}

// AppendColor writes an RGB triple, one byte per channel.
func AppendColor(c *PacketContext, v Color) AppendState {
	buf := c.reserve(3)
	if buf == nil {
		return StateNone
	}
	buf[0], buf[1], buf[2] = v.R, v.G, v.B
	c.commit(3)
	return StateCompleted
}

// AppendVec2 writes two little-endian float32s.
func AppendVec2(c *PacketContext, v Vec2) AppendState {
	mk := c.mark()
	if AppendFloat32(c, v.X) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	if AppendFloat32(c, v.Y) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	return StateCompleted
}

// AppendVec3 writes three little-endian float32s.
func AppendVec3(c *PacketContext, v Vec3) AppendState {
	mk := c.mark()
	if AppendFloat32(c, v.X) != StateCompleted ||
		AppendFloat32(c, v.Y) != StateCompleted ||
		AppendFloat32(c, v.Z) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	return StateCompleted
}

// AppendRect writes an x/y/width/height quad of float32s.
func AppendRect(c *PacketContext, v Rect) AppendState {
	mk := c.mark()
	if AppendFloat32(c, v.X) != StateCompleted ||
		AppendFloat32(c, v.Y) != StateCompleted ||
		AppendFloat32(c, v.Width) != StateCompleted ||
		AppendFloat32(c, v.Height) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	return StateCompleted
}

// AppendAACube writes a corner Vec3 followed by a scalar scale. A negative
// scale is invalid (an axis-aligned cube cannot have negative extent) and
// is rejected without touching ctx, like any other invalid value.
func AppendAACube(c *PacketContext, v AACube) AppendState {
	if v.Scale < 0 {
		netlog.Error("octree: cannot write invalid AACube value: negative scale %v", v.Scale)
		return StateNone
	}
	mk := c.mark()
	if AppendVec3(c, v.Corner) != StateCompleted || AppendFloat32(c, v.Scale) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	return StateCompleted
}

// packedQuaternionRange is the [-1/sqrt2, 1/sqrt2] range the three smallest
// components of a unit quaternion fall into, mapped onto the full 15-bit
// unsigned range used by AppendPackedQuaternion.
const packedQuaternionRange = 0.70710678118

// packedQuaternionBits is the per-component quantization width. 15 bits
// over the sqrt2-wide [-1/sqrt2, 1/sqrt2] range gives each component an error no greater than
// 2^-14, the packing precision entities are allowed to drift by on a
// decode round trip.
const packedQuaternionBits = 15

// AppendPackedQuaternion writes a unit quaternion in 8 bytes using the
// "smallest three" compression: the largest-magnitude component is
// dropped (it is reconstructible since the quaternion is unit length), its
// index is stored in 2 bits, and the remaining three components are each
// quantized to 15 bits over [-1/sqrt2, 1/sqrt2].
func AppendPackedQuaternion(c *PacketContext, v Quaternion) AppendState {
	comps := [4]float32{v.X, v.Y, v.Z, v.W}

	largest := 0
	for i := 1; i < 4; i++ {
		if math.Abs(float64(comps[i])) > math.Abs(float64(comps[largest])) {
			largest = i
		}
	}
	// Normalize sign so the dropped component is positive; the decoder
	// reconstructs it as +sqrt(1 - sum(others^2)).
	sign := float32(1)
	if comps[largest] < 0 {
		sign = -1
	}

	var packed uint64
	packed |= uint64(largest) << 45

	shift := 30
	for i := 0; i < 4; i++ {
		if i == largest {
			continue
		}
		q := quantize15(comps[i] * sign)
		packed |= uint64(q) << uint(shift)
		shift -= packedQuaternionBits
	}

	return AppendUint64(c, packed)
}

func quantize15(v float32) uint16 {
	clamped := v
	if clamped > packedQuaternionRange {
		clamped = packedQuaternionRange
	}
	if clamped < -packedQuaternionRange {
		clamped = -packedQuaternionRange
	}
	normalized := (clamped + packedQuaternionRange) / (2 * packedQuaternionRange)
	return uint16(normalized * 32767)
}

// AppendUUID writes a node/entity identifier as a variable-length value:
// the nil UUID encodes as a 2-byte length of 0; any other UUID as a 2-byte
// length of 16 followed by the 16 big-endian bytes, per the protocol's
// UUID wire convention.
func AppendUUID(c *PacketContext, v nodeuuid.UUID) AppendState {
	if v.IsNil() {
		return AppendUint16(c, 0)
	}
	mk := c.mark()
	if AppendUint16(c, nodeuuid.Size) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	if appendUUIDRaw(c, v) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	return StateCompleted
}

// appendUUIDRaw writes the fixed 16-byte big-endian form with no length
// prefix. The UUID array appender below uses this directly: its wire
// format is a flat count-prefixed run of fixed-size elements ("UUID
// array(2 + 16*n)"), unlike the singular, variable-length AppendUUID.
func appendUUIDRaw(c *PacketContext, v nodeuuid.UUID) AppendState {
	buf := c.reserve(nodeuuid.Size)
	if buf == nil {
		return StateNone
	}
	v.PutBE(buf)
	c.commit(nodeuuid.Size)
	return StateCompleted
}

// AppendString writes a uint16 byte-length prefix followed by the UTF-8
// bytes. A string is atomic: it is either written whole or not at all,
// since a truncated string cannot be distinguished from a short one by a
// decoder.
func AppendString(c *PacketContext, s string) AppendState {
	data := []byte(s)
	if len(data) > math.MaxUint16 {
		return StateNone
	}
	mk := c.mark()
	if AppendUint16(c, uint16(len(data))) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	buf := c.reserve(len(data))
	if buf == nil {
		c.rollback(mk)
		return StateNone
	}
	copy(buf, data)
	c.commit(len(data))
	return StateCompleted
}

// AppendByteArray writes a uint16 length prefix followed by as much of
// data as fits. If the whole of data fits, it returns COMPLETED; if only a
// prefix fits (and at least one byte was written) it writes that prefix
// with its true (shorter) length and returns PARTIAL; if not even the
// 2-byte length prefix fits, it returns NONE and writes nothing. Callers
// must reject arrays longer than 65535 bytes, matching the other
// uint16-length-prefixed array appenders.
func AppendByteArray(c *PacketContext, data []byte) AppendState {
	if len(data) > math.MaxUint16 {
		return StateNone
	}
	if c.Remaining() < 2 {
		return StateNone
	}

	n := len(data)
	if c.Remaining()-2 < n {
		n = c.Remaining() - 2
	}
	if n == 0 && len(data) > 0 {
		return StateNone
	}

	mk := c.mark()
	if AppendUint16(c, uint16(n)) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}
	if n > 0 {
		buf := c.reserve(n)
		copy(buf, data[:n])
		c.commit(n)
	}

	if n == len(data) {
		return StateCompleted
	}
	return StatePartial
}

// AppendVec3Array writes a uint16 element-count prefix followed by as many
// whole Vec3 elements as fit, PARTIAL semantics matching AppendByteArray.
func AppendVec3Array(c *PacketContext, values []Vec3) AppendState {
	const elemSize = 12
	return appendArray(c, len(values), elemSize, func(i int) AppendState {
		return AppendVec3(c, values[i])
	})
}

// AppendQuatArray writes a uint16 element-count prefix followed by as many
// whole packed-quaternion elements (8 bytes each, see AppendPackedQuaternion)
// as fit.
func AppendQuatArray(c *PacketContext, values []Quaternion) AppendState {
	const elemSize = 8
	return appendArray(c, len(values), elemSize, func(i int) AppendState {
		return AppendPackedQuaternion(c, values[i])
	})
}

// AppendUUIDArray writes a uint16 element-count prefix followed by as many
// whole UUID elements as fit.
func AppendUUIDArray(c *PacketContext, values []nodeuuid.UUID) AppendState {
	const elemSize = nodeuuid.Size
	return appendArray(c, len(values), elemSize, func(i int) AppendState {
		return appendUUIDRaw(c, values[i])
	})
}

// appendArray implements the shared count-prefix + best-effort-elements
// contract used by the fixed-element-size array appenders above.
func appendArray(c *PacketContext, count, elemSize int, writeOne func(i int) AppendState) AppendState {
	if c.Remaining() < 2 {
		return StateNone
	}

	maxFit := (c.Remaining() - 2) / elemSize
	written := count
	if written > maxFit {
		written = maxFit
	}

	mk := c.mark()
	if AppendUint16(c, uint16(written)) != StateCompleted {
		c.rollback(mk)
		return StateNone
	}

	for i := 0; i < written; i++ {
		if writeOne(i) != StateCompleted {
			// Should not happen given the maxFit precomputation, but
			// fail safe by rolling back entirely.
			c.rollback(mk)
			return StateNone
		}
	}

	if written == count {
		return StateCompleted
	}
	if written == 0 {
		c.rollback(mk)
		return StateNone
	}
	return StatePartial
}
