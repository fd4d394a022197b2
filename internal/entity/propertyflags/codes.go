package propertyflags

// Property is a single bit position in the entity property enumeration.
// The exact assignment is internal to this module — what matters for the
// wire protocol is that both encoder and decoder agree on it, not that it
// matches any external numbering.
type Property int

// Common block, present on every entity subclass.
const (
	PropSimulationOwner Property = iota
	PropParentID
	PropParentJointIndex
	PropVisible
	PropName
	PropLocked
	PropUserData
	PropHref
	PropScript
	PropPosition
	PropDimensions
	PropRotation
	PropRegistrationPoint
	PropCreated
	PropLastEditedBy
	PropEntityHostType
	PropOwningAvatarID
	PropQueryAACube
	PropCanCastShadow
	PropRenderLayer
	PropPrimitiveMode
	PropIgnorePickIntersection
	PropColor
	PropAlpha
	PropPulseMin
	PropPulseMax
	PropPulsePeriod
	PropPulseColorMode
	PropPulseAlphaMode
	PropLifetime
	PropClientOnly
	PropCloneable
	PropGrabbable
	PropGrabKinematic
	PropGrabEquippable

	// Shape
	PropShapeType
	PropCompoundShapeURL

	// Model
	PropModelURL
	PropTextures
	PropShapeMaterial
	PropAnimationURL
	PropAnimationFPS
	PropAnimationFrameIndex
	PropAnimationPlaying
	PropRelayParentJoints

	// Light
	PropLightColor
	PropLightIntensity
	PropLightFalloffRadius
	PropLightExponent
	PropLightCutoff
	PropLightSpotlight

	// Zone
	PropZoneShapeType
	PropZoneCompoundShapeURL
	PropKeyLightColor
	PropKeyLightIntensity
	PropKeyLightDirection
	PropSkyboxColor
	PropSkyboxURL
	PropHazeRange
	PropHazeColor
	PropAmbientLightIntensity
	PropAmbientLightURL
	PropBloomIntensity
	PropBloomThreshold
	PropBloomSize
	PropTonemappingCurve
	PropTonemappingExposure

	// Web
	PropWebSourceURL
	PropWebDPI

	// Image
	PropImageURL
	PropImageEmissive

	// Text
	PropTextText
	PropTextLineHeight
	PropTextColor
	PropTextBackgroundColor

	// Grid
	PropGridColor
	PropGridMajorSpacing
	PropGridMinorSpacing

	// Gizmo
	PropGizmoType

	// Material
	PropMaterialURL
	PropMaterialMappingMode
	PropMaterialPriority

	// ParticleEffect
	PropParticleShapeType
	PropParticleMaxParticles
	PropParticleLifespan
	PropParticleEmitRate

	// PolyLine
	PropPolyLineVertices
	PropPolyLineWidth

	// PolyVox
	PropPolyVoxVoxelVolumeSize
	PropPolyVoxVoxelData

	// numProperties must be last: it is not a real property, only the
	// sentinel used to size the bitset.
	numProperties
)
