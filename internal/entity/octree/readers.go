package octree

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// Reader walks a decoded packet body, the read-side counterpart to
// PacketContext. Unlike the appenders, reads never partially succeed: the
// writer only ever committed whole values (or, for arrays/byte strings, a
// value whose embedded length prefix already reflects what fit), so a read
// either returns a complete value or a truncation error.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reads.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("octree: truncated read: need %d bytes, have %d", n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadColor() (Color, error) {
	b, err := r.take(3)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

func (r *Reader) ReadVec2() (Vec2, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return Vec2{}, err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

func (r *Reader) ReadVec3() (Vec3, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return Vec3{}, err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return Vec3{}, err
	}
	z, err := r.ReadFloat32()
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: x, Y: y, Z: z}, nil
}

func (r *Reader) ReadRect() (Rect, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return Rect{}, err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return Rect{}, err
	}
	w, err := r.ReadFloat32()
	if err != nil {
		return Rect{}, err
	}
	h, err := r.ReadFloat32()
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (r *Reader) ReadAACube() (AACube, error) {
	corner, err := r.ReadVec3()
	if err != nil {
		return AACube{}, err
	}
	scale, err := r.ReadFloat32()
	if err != nil {
		return AACube{}, err
	}
	return AACube{Corner: corner, Scale: scale}, nil
}

// ReadUUID reads the variable-length form written by AppendUUID: a 2-byte
// length of 0 for the nil UUID, or a 2-byte length of 16 followed by 16
// big-endian bytes.
func (r *Reader) ReadUUID() (nodeuuid.UUID, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nodeuuid.UUID{}, err
	}
	switch n {
	case 0:
		return nodeuuid.Nil, nil
	case nodeuuid.Size:
		return r.readUUIDRaw()
	default:
		return nodeuuid.UUID{}, fmt.Errorf("octree: invalid UUID length %d", n)
	}
}

// readUUIDRaw reads the fixed 16-byte big-endian form with no length
// prefix, the counterpart to appendUUIDRaw used by the UUID array reader.
func (r *Reader) readUUIDRaw() (nodeuuid.UUID, error) {
	b, err := r.take(nodeuuid.Size)
	if err != nil {
		return nodeuuid.UUID{}, err
	}
	return nodeuuid.FromBE(b)
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadVec3Array() ([]Vec3, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	out := make([]Vec3, n)
	for i := range out {
		out[i], err = r.ReadVec3()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) ReadQuatArray() ([]Quaternion, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	out := make([]Quaternion, n)
	for i := range out {
		out[i], err = r.ReadPackedQuaternion()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) ReadUUIDArray() ([]nodeuuid.UUID, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	out := make([]nodeuuid.UUID, n)
	for i := range out {
		out[i], err = r.readUUIDRaw()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadPackedQuaternion decodes the 8-byte smallest-three-component
// quaternion written by AppendPackedQuaternion.
func (r *Reader) ReadPackedQuaternion() (Quaternion, error) {
	packed, err := r.ReadUint64()
	if err != nil {
		return Quaternion{}, err
	}

	largest := int(packed >> 45)
	var comps [4]float32
	var sumSquares float32

	shift := 30
	for i := 0; i < 4; i++ {
		if i == largest {
			continue
		}
		q := uint16((packed >> uint(shift)) & 0x7FFF)
		shift -= packedQuaternionBits
		v := (float32(q)/32767)*(2*packedQuaternionRange) - packedQuaternionRange
		comps[i] = v
		sumSquares += v * v
	}

	remainder := float32(1) - sumSquares
	if remainder < 0 {
		remainder = 0
	}
	comps[largest] = float32(math.Sqrt(float64(remainder)))

	return Quaternion{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}, nil
}
