package entity

import (
	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

// Pulse groups the five pulse-animation fields shared by every subclass.
type Pulse struct {
	Min        float32
	Max        float32
	Period     float32
	ColorMode  uint8
	AlphaMode  uint8
}

// Grab groups the three grab-interaction fields shared by every subclass.
type Grab struct {
	Grabbable  bool
	Kinematic  bool
	Equippable bool
}

// Common holds the fields present on every entity regardless of subclass.
type Common struct {
	SimulationOwner       nodeuuid.UUID
	ParentID              nodeuuid.UUID
	ParentJointIndex      uint16
	Visible               bool
	Name                  string
	Locked                bool
	UserData              string
	Href                  string
	Script                string
	Position              octree.Vec3
	Dimensions            octree.Vec3
	Rotation              octree.Quaternion
	RegistrationPoint     octree.Vec3
	Created               uint64
	LastEditedBy          nodeuuid.UUID
	EntityHostType        uint8
	OwningAvatarID        nodeuuid.UUID
	QueryAACube           octree.AACube
	CanCastShadow         bool
	RenderLayer           uint8
	PrimitiveMode         uint8
	IgnorePickIntersection bool
	Color                 octree.Color
	Alpha                 float32
	Pulse                 Pulse
	Lifetime              float32
	ClientOnly            bool
	Cloneable             bool
	Grab                  Grab
}

// Animation groups a model's playback fields.
type Animation struct {
	URL        string
	FPS        float32
	FrameIndex float32
	Playing    bool
}

// ShapeProps is the Shape subclass block.
type ShapeProps struct {
	ShapeType        uint8
	CompoundShapeURL string
}

// ModelProps is the Model subclass block.
type ModelProps struct {
	ModelURL           string
	Textures           string
	ShapeMaterial      string
	Animation          Animation
	RelayParentJoints  bool
}

// LightProps is the Light subclass block.
type LightProps struct {
	Color         octree.Color
	Intensity     float32
	FalloffRadius float32
	Exponent      float32
	Cutoff        float32
	Spotlight     bool
}

// KeyLight groups a zone's directional key-light fields.
type KeyLight struct {
	Color     octree.Color
	Intensity float32
	Direction octree.Vec3
}

// Skybox groups a zone's skybox fields.
type Skybox struct {
	Color octree.Color
	URL   string
}

// Haze groups a zone's atmospheric haze fields.
type Haze struct {
	Range float32
	Color octree.Color
}

// AmbientLight groups a zone's ambient-light fields.
type AmbientLight struct {
	Intensity float32
	URL       string
}

// Bloom groups a zone's bloom post-process fields.
type Bloom struct {
	Intensity float32
	Threshold float32
	Size      float32
}

// Tonemapping groups a zone's tonemapping curve fields.
type Tonemapping struct {
	Curve    uint8
	Exposure float32
}

// ZoneProps is the Zone subclass block.
type ZoneProps struct {
	ShapeType        uint8
	CompoundShapeURL string
	KeyLight         KeyLight
	Skybox           Skybox
	Haze             Haze
	AmbientLight     AmbientLight
	Bloom            Bloom
	Tonemapping      Tonemapping
}

// WebProps is the Web subclass block.
type WebProps struct {
	SourceURL string
	DPI       uint16
}

// ImageProps is the Image subclass block.
type ImageProps struct {
	URL      string
	Emissive bool
}

// TextProps is the Text subclass block.
type TextProps struct {
	Text            string
	LineHeight      float32
	Color           octree.Color
	BackgroundColor octree.Color
}

// GridProps is the Grid subclass block.
type GridProps struct {
	Color        octree.Color
	MajorSpacing float32
	MinorSpacing float32
}

// GizmoProps is the Gizmo subclass block.
type GizmoProps struct {
	GizmoType uint8
}

// MaterialProps is the Material subclass block.
type MaterialProps struct {
	URL           string
	MappingMode   uint8
	Priority      uint16
}

// ParticleEffectProps is the ParticleEffect subclass block.
type ParticleEffectProps struct {
	ShapeType    uint8
	MaxParticles uint32
	Lifespan     float32
	EmitRate     float32
}

// PolyLineProps is the PolyLine subclass block.
type PolyLineProps struct {
	Vertices []octree.Vec3
	Width    float32
}

// PolyVoxProps is the PolyVox subclass block.
type PolyVoxProps struct {
	VoxelVolumeSize octree.Vec3
	VoxelData       []byte
}

// Properties bundles the common block with one active subclass block,
// selected by Type. Exactly one of the pointer fields matching Type should
// be non-nil; Encode/Decode only ever look at the one selected by Type.
type Properties struct {
	Type   Type
	Common Common

	Shape          *ShapeProps
	Model          *ModelProps
	Light          *LightProps
	Zone           *ZoneProps
	Web            *WebProps
	Image          *ImageProps
	Text           *TextProps
	Grid           *GridProps
	Gizmo          *GizmoProps
	Material       *MaterialProps
	ParticleEffect *ParticleEffectProps
	PolyLine       *PolyLineProps
	PolyVox        *PolyVoxProps
}
