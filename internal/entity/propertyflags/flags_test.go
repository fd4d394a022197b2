package propertyflags

import "testing"

func TestEmptyRoundTrip(t *testing.T) {
	f := New()
	buf := f.Encode(nil)
	if len(buf) == 0 {
		t.Fatalf("encode of empty set produced no bytes")
	}

	got, n, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d bytes, want %d", n, len(buf))
	}
	if !got.IsEmpty() {
		t.Fatalf("decoded set is not empty")
	}
}

func TestSingleBitRoundTrip(t *testing.T) {
	f := New()
	f.Set(PropVisible)

	buf := f.Encode(nil)
	got, _, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Has(PropVisible) {
		t.Fatalf("decoded set missing PropVisible")
	}
	if got.Has(PropName) {
		t.Fatalf("decoded set has unexpected PropName")
	}
}

func TestManyBitsRoundTrip(t *testing.T) {
	f := New()
	props := []Property{
		PropPosition, PropRotation, PropDimensions, PropColor,
		PropModelURL, PropAnimationURL, PropLightIntensity,
		PropPolyVoxVoxelData,
	}
	for _, p := range props {
		f.Set(p)
	}

	buf := f.Encode(nil)
	got, consumed, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed %d, want %d", consumed, len(buf))
	}
	for _, p := range props {
		if !got.Has(p) {
			t.Fatalf("decoded set missing %v", p)
		}
	}
}

func TestUnionDifferenceIntersect(t *testing.T) {
	a := New()
	a.Set(PropPosition)
	a.Set(PropRotation)

	b := New()
	b.Set(PropRotation)
	b.Set(PropColor)

	union := a.Union(b)
	if !union.Has(PropPosition) || !union.Has(PropRotation) || !union.Has(PropColor) {
		t.Fatalf("union missing expected members")
	}

	diff := a.Difference(b)
	if !diff.Has(PropPosition) || diff.Has(PropRotation) {
		t.Fatalf("difference incorrect: %+v", diff)
	}

	inter := a.Intersect(b)
	if !inter.Has(PropRotation) || inter.Has(PropPosition) || inter.Has(PropColor) {
		t.Fatalf("intersection incorrect: %+v", inter)
	}
}

func TestEncodeAppendsToPrefix(t *testing.T) {
	f := New()
	f.Set(PropName)

	prefix := []byte{0xAA, 0xBB}
	buf := f.Encode(prefix)
	if buf[0] != 0xAA || buf[1] != 0xBB {
		t.Fatalf("Encode must append, not overwrite prefix: got %v", buf[:2])
	}

	got, _, err := Decode(buf[2:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Has(PropName) {
		t.Fatalf("decoded set missing PropName")
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	f := New()
	f.Set(PropPolyVoxVoxelData)
	buf := f.Encode(nil)

	if _, _, err := Decode(buf[:len(buf)-1]); err == nil {
		t.Fatalf("expected error decoding truncated buffer")
	}
}
