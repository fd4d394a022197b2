package entity

import (
	"fmt"

	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
)

// EditResult is the output of Encode: the packed flags+body bytes plus
// bookkeeping on which requested properties actually made it in.
type EditResult struct {
	Data     []byte
	Encoded  propertyflags.Flags // properties whose bytes are present in Data
	DidntFit propertyflags.Flags // properties that must be re-requested
	State    octree.AppendState  // COMPLETED, PARTIAL, or NONE, per the overall edit
}

// walker accumulates encode/decode outcomes for one property across the
// fixed field order, shared by every Encode/Decode call.
type walker struct {
	ctx      *octree.PacketContext
	encoded  propertyflags.Flags
	didntFit propertyflags.Flags
}

func (w *walker) record(p propertyflags.Property, st octree.AppendState) {
	switch st {
	case octree.StateCompleted:
		w.encoded.Set(p)
	case octree.StatePartial:
		w.encoded.Set(p)
		w.didntFit.Set(p)
	case octree.StateNone:
		w.didntFit.Set(p)
	}
}

// Encode packs the properties of p that are set in requested into a
// packet body no larger than maxSize (flags block included), greedily
// skipping any property whose value does not fit and continuing with the
// rest. The caller re-requests whatever ends up in EditResult.DidntFit on
// a subsequent edit.
func Encode(p *Properties, requested propertyflags.Flags, maxSize int) (*EditResult, error) {
	reserved := propertyflags.MaxEncodedSize()
	if maxSize <= reserved {
		return nil, fmt.Errorf("entity: maxSize %d too small to reserve %d bytes for flags", maxSize, reserved)
	}

	w := &walker{ctx: octree.NewPacketContext(maxSize - reserved)}

	encodeCommon(w, &p.Common, requested)
	encodeSubclass(w, p, requested)

	flagBytes := w.encoded.Encode(nil)
	data := append(flagBytes, w.ctx.Bytes()...)

	state := octree.StateCompleted
	switch {
	case w.encoded.IsEmpty():
		state = octree.StateNone
	case !w.didntFit.IsEmpty():
		state = octree.StatePartial
	}

	return &EditResult{Data: data, Encoded: w.encoded, DidntFit: w.didntFit, State: state}, nil
}

// Decode parses a packet body produced by Encode back into a Properties
// value. t selects which subclass block, if any, to expect.
func Decode(t Type, data []byte) (*Properties, error) {
	flags, n, err := propertyflags.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("entity: decode flags: %w", err)
	}

	r := octree.NewReader(data[n:])
	p := &Properties{Type: t}

	if err := decodeCommon(r, &p.Common, flags); err != nil {
		return nil, err
	}
	if err := decodeSubclass(r, p, flags); err != nil {
		return nil, err
	}

	return p, nil
}
