// Package entity implements the common-block-plus-subclass entity edit
// codec: deriving which properties a packet asks for, packing as many of
// them as fit using internal/entity/octree's typed appenders, and tracking
// which ones didn't fit so the caller can re-request them.
package entity

// Type is the entity subclass discriminant. Order here is the fixed order
// subclass blocks are walked when present in Properties, matching the wire
// layout's requirement that every encoder/decoder pair agree on ordering.
type Type uint8

const (
	TypeShape Type = iota
	TypeModel
	TypeLight
	TypeZone
	TypeWeb
	TypeImage
	TypeText
	TypeGrid
	TypeGizmo
	TypeMaterial
	TypeParticleEffect
	TypePolyLine
	TypePolyVox
)

func (t Type) String() string {
	names := [...]string{
		"Shape", "Model", "Light", "Zone", "Web", "Image", "Text", "Grid",
		"Gizmo", "Material", "ParticleEffect", "PolyLine", "PolyVox",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}
