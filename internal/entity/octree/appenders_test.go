package octree

import (
	"math"
	"testing"

	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

func TestAppendBoolFitsAndDoesNot(t *testing.T) {
	ctx := NewPacketContext(1)
	if st := AppendBool(ctx, true); st != StateCompleted {
		t.Fatalf("expected COMPLETED, got %v", st)
	}
	if ctx.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", ctx.Remaining())
	}

	ctx2 := NewPacketContext(0)
	if st := AppendBool(ctx2, true); st != StateNone {
		t.Fatalf("expected NONE on zero-capacity buffer, got %v", st)
	}
}

func TestAppendVec3RollsBackOnPartialFit(t *testing.T) {
	// 8 bytes is enough for two float32s but not three: the whole Vec3
	// append must fail atomically and leave the buffer untouched.
	ctx := NewPacketContext(8)
	if st := AppendVec3(ctx, Vec3{1, 2, 3}); st != StateNone {
		t.Fatalf("expected NONE, got %v", st)
	}
	if ctx.Remaining() != 8 {
		t.Fatalf("expected full rollback, remaining=%d", ctx.Remaining())
	}
}

func TestAppendByteArrayPartialFit(t *testing.T) {
	// 2-byte length prefix + 6 bytes of room = 6 of 10 requested bytes.
	ctx := NewPacketContext(8)
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	st := AppendByteArray(ctx, data)
	if st != StatePartial {
		t.Fatalf("expected PARTIAL, got %v", st)
	}
	if ctx.Remaining() != 0 {
		t.Fatalf("expected buffer fully consumed, remaining=%d", ctx.Remaining())
	}

	written := ctx.Bytes()
	n := uint16(written[0]) | uint16(written[1])<<8
	if n != 6 {
		t.Fatalf("expected length prefix 6, got %d", n)
	}
}

func TestAppendByteArrayCompletedAndNone(t *testing.T) {
	data := []byte{1, 2, 3}

	ctx := NewPacketContext(2 + len(data))
	if st := AppendByteArray(ctx, data); st != StateCompleted {
		t.Fatalf("expected COMPLETED, got %v", st)
	}

	ctx2 := NewPacketContext(1) // not even enough for the length prefix
	if st := AppendByteArray(ctx2, data); st != StateNone {
		t.Fatalf("expected NONE, got %v", st)
	}
}

func TestAppendVec3ArrayPartialFit(t *testing.T) {
	values := []Vec3{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}
	// 2-byte count prefix + room for exactly 2 of 3 elements (12 bytes each).
	ctx := NewPacketContext(2 + 24)

	st := AppendVec3Array(ctx, values)
	if st != StatePartial {
		t.Fatalf("expected PARTIAL, got %v", st)
	}
	if ctx.Remaining() != 0 {
		t.Fatalf("expected buffer fully consumed, remaining=%d", ctx.Remaining())
	}
}

func TestAppendUUIDArrayNoneWhenCountPrefixDoesNotFit(t *testing.T) {
	ctx := NewPacketContext(1)
	values := []nodeuuid.UUID{nodeuuid.New()}
	if st := AppendUUIDArray(ctx, values); st != StateNone {
		t.Fatalf("expected NONE, got %v", st)
	}
}

func TestAppendPackedQuaternionRoundTripsApprox(t *testing.T) {
	ctx := NewPacketContext(8)
	q := Quaternion{X: 0, Y: 0, Z: 0, W: 1}
	if st := AppendPackedQuaternion(ctx, q); st != StateCompleted {
		t.Fatalf("expected COMPLETED, got %v", st)
	}
	if ctx.Remaining() != 0 {
		t.Fatalf("expected exactly 8 bytes consumed, remaining=%d", ctx.Remaining())
	}

	r := NewReader(ctx.Bytes())
	got, err := r.ReadPackedQuaternion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const epsilon = 1.0 / (1 << 14)
	if diff := got.W - q.W; diff > epsilon || diff < -epsilon {
		t.Fatalf("W component drifted by more than 2^-14: got %v want %v", got.W, q.W)
	}
}

func TestAppendFloat32RejectsNonFinite(t *testing.T) {
	for _, v := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		ctx := NewPacketContext(4)
		if st := AppendFloat32(ctx, v); st != StateNone {
			t.Fatalf("expected NONE for %v, got %v", v, st)
		}
		if ctx.Remaining() != 4 {
			t.Fatalf("expected no mutation for %v, remaining=%d", v, ctx.Remaining())
		}
	}
}

func TestAppendAACubeRejectsNegativeScale(t *testing.T) {
	ctx := NewPacketContext(16)
	v := AACube{Corner: Vec3{1, 2, 3}, Scale: -1}
	if st := AppendAACube(ctx, v); st != StateNone {
		t.Fatalf("expected NONE for negative scale, got %v", st)
	}
	if ctx.Remaining() != 16 {
		t.Fatalf("expected no mutation, remaining=%d", ctx.Remaining())
	}
}

func TestAppendUUIDNilIsTwoBytes(t *testing.T) {
	ctx := NewPacketContext(18)
	if st := AppendUUID(ctx, nodeuuid.Nil); st != StateCompleted {
		t.Fatalf("expected COMPLETED, got %v", st)
	}
	if ctx.Remaining() != 16 {
		t.Fatalf("expected nil UUID to cost 2 bytes, remaining=%d", ctx.Remaining())
	}

	r := NewReader(ctx.Bytes())
	got, err := r.ReadUUID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNil() {
		t.Fatalf("expected nil UUID round trip, got %v", got)
	}
}

func TestAppendUUIDNonNilRoundTrips(t *testing.T) {
	ctx := NewPacketContext(18)
	v := nodeuuid.New()
	if st := AppendUUID(ctx, v); st != StateCompleted {
		t.Fatalf("expected COMPLETED, got %v", st)
	}
	if ctx.Remaining() != 0 {
		t.Fatalf("expected exactly 18 bytes consumed, remaining=%d", ctx.Remaining())
	}

	r := NewReader(ctx.Bytes())
	got, err := r.ReadUUID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != v {
		t.Fatalf("expected round trip, got %v want %v", got, v)
	}
}

func TestAppendStringAtomic(t *testing.T) {
	ctx := NewPacketContext(2 + 4) // enough for prefix but not full string
	if st := AppendString(ctx, "hello"); st != StateNone {
		t.Fatalf("expected NONE for a string that cannot fit fully, got %v", st)
	}
	if ctx.Remaining() != 6 {
		t.Fatalf("expected full rollback, remaining=%d", ctx.Remaining())
	}
}
