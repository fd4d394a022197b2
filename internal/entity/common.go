package entity

import (
	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
)

// encodeCommon appends every requested common-block field, in the field
// order also used by decodeCommon.
func encodeCommon(w *walker, c *Common, requested propertyflags.Flags) {
	if requested.Has(propertyflags.PropSimulationOwner) {
		w.record(propertyflags.PropSimulationOwner, octree.AppendUUID(w.ctx, c.SimulationOwner))
	}
	if requested.Has(propertyflags.PropParentID) {
		w.record(propertyflags.PropParentID, octree.AppendUUID(w.ctx, c.ParentID))
	}
	if requested.Has(propertyflags.PropParentJointIndex) {
		w.record(propertyflags.PropParentJointIndex, octree.AppendUint16(w.ctx, c.ParentJointIndex))
	}
	if requested.Has(propertyflags.PropVisible) {
		w.record(propertyflags.PropVisible, octree.AppendBool(w.ctx, c.Visible))
	}
	if requested.Has(propertyflags.PropName) {
		w.record(propertyflags.PropName, octree.AppendString(w.ctx, c.Name))
	}
	if requested.Has(propertyflags.PropLocked) {
		w.record(propertyflags.PropLocked, octree.AppendBool(w.ctx, c.Locked))
	}
	if requested.Has(propertyflags.PropUserData) {
		w.record(propertyflags.PropUserData, octree.AppendString(w.ctx, c.UserData))
	}
	if requested.Has(propertyflags.PropHref) {
		w.record(propertyflags.PropHref, octree.AppendString(w.ctx, c.Href))
	}
	if requested.Has(propertyflags.PropScript) {
		w.record(propertyflags.PropScript, octree.AppendString(w.ctx, c.Script))
	}
	if requested.Has(propertyflags.PropPosition) {
		w.record(propertyflags.PropPosition, octree.AppendVec3(w.ctx, c.Position))
	}
	if requested.Has(propertyflags.PropDimensions) {
		w.record(propertyflags.PropDimensions, octree.AppendVec3(w.ctx, c.Dimensions))
	}
	if requested.Has(propertyflags.PropRotation) {
		w.record(propertyflags.PropRotation, octree.AppendPackedQuaternion(w.ctx, c.Rotation))
	}
	if requested.Has(propertyflags.PropRegistrationPoint) {
		w.record(propertyflags.PropRegistrationPoint, octree.AppendVec3(w.ctx, c.RegistrationPoint))
	}
	if requested.Has(propertyflags.PropCreated) {
		w.record(propertyflags.PropCreated, octree.AppendUint64(w.ctx, c.Created))
	}
	if requested.Has(propertyflags.PropLastEditedBy) {
		w.record(propertyflags.PropLastEditedBy, octree.AppendUUID(w.ctx, c.LastEditedBy))
	}
	if requested.Has(propertyflags.PropEntityHostType) {
		w.record(propertyflags.PropEntityHostType, octree.AppendUint8(w.ctx, c.EntityHostType))
	}
	if requested.Has(propertyflags.PropOwningAvatarID) {
		w.record(propertyflags.PropOwningAvatarID, octree.AppendUUID(w.ctx, c.OwningAvatarID))
	}
	if requested.Has(propertyflags.PropQueryAACube) {
		w.record(propertyflags.PropQueryAACube, octree.AppendAACube(w.ctx, c.QueryAACube))
	}
	if requested.Has(propertyflags.PropCanCastShadow) {
		w.record(propertyflags.PropCanCastShadow, octree.AppendBool(w.ctx, c.CanCastShadow))
	}
	if requested.Has(propertyflags.PropRenderLayer) {
		w.record(propertyflags.PropRenderLayer, octree.AppendUint8(w.ctx, c.RenderLayer))
	}
	if requested.Has(propertyflags.PropPrimitiveMode) {
		w.record(propertyflags.PropPrimitiveMode, octree.AppendUint8(w.ctx, c.PrimitiveMode))
	}
	if requested.Has(propertyflags.PropIgnorePickIntersection) {
		w.record(propertyflags.PropIgnorePickIntersection, octree.AppendBool(w.ctx, c.IgnorePickIntersection))
	}
	if requested.Has(propertyflags.PropColor) {
		w.record(propertyflags.PropColor, octree.AppendColor(w.ctx, c.Color))
	}
	if requested.Has(propertyflags.PropAlpha) {
		w.record(propertyflags.PropAlpha, octree.AppendFloat32(w.ctx, c.Alpha))
	}
	if requested.Has(propertyflags.PropPulseMin) {
		w.record(propertyflags.PropPulseMin, octree.AppendFloat32(w.ctx, c.Pulse.Min))
	}
	if requested.Has(propertyflags.PropPulseMax) {
		w.record(propertyflags.PropPulseMax, octree.AppendFloat32(w.ctx, c.Pulse.Max))
	}
	if requested.Has(propertyflags.PropPulsePeriod) {
		w.record(propertyflags.PropPulsePeriod, octree.AppendFloat32(w.ctx, c.Pulse.Period))
	}
	if requested.Has(propertyflags.PropPulseColorMode) {
		w.record(propertyflags.PropPulseColorMode, octree.AppendUint8(w.ctx, c.Pulse.ColorMode))
	}
	if requested.Has(propertyflags.PropPulseAlphaMode) {
		w.record(propertyflags.PropPulseAlphaMode, octree.AppendUint8(w.ctx, c.Pulse.AlphaMode))
	}
	if requested.Has(propertyflags.PropLifetime) {
		w.record(propertyflags.PropLifetime, octree.AppendFloat32(w.ctx, c.Lifetime))
	}
	if requested.Has(propertyflags.PropClientOnly) {
		w.record(propertyflags.PropClientOnly, octree.AppendBool(w.ctx, c.ClientOnly))
	}
	if requested.Has(propertyflags.PropCloneable) {
		w.record(propertyflags.PropCloneable, octree.AppendBool(w.ctx, c.Cloneable))
	}
	if requested.Has(propertyflags.PropGrabbable) {
		w.record(propertyflags.PropGrabbable, octree.AppendBool(w.ctx, c.Grab.Grabbable))
	}
	if requested.Has(propertyflags.PropGrabKinematic) {
		w.record(propertyflags.PropGrabKinematic, octree.AppendBool(w.ctx, c.Grab.Kinematic))
	}
	if requested.Has(propertyflags.PropGrabEquippable) {
		w.record(propertyflags.PropGrabEquippable, octree.AppendBool(w.ctx, c.Grab.Equippable))
	}
}

// decodeCommon reads every common-block field marked present in flags, in
// the same field order encodeCommon writes them.
func decodeCommon(r *octree.Reader, c *Common, flags propertyflags.Flags) error {
	var err error

	read := func(p propertyflags.Property, fn func() error) {
		if err != nil || !flags.Has(p) {
			return
		}
		err = fn()
	}

	read(propertyflags.PropSimulationOwner, func() (e error) { c.SimulationOwner, e = r.ReadUUID(); return })
	read(propertyflags.PropParentID, func() (e error) { c.ParentID, e = r.ReadUUID(); return })
	read(propertyflags.PropParentJointIndex, func() (e error) { c.ParentJointIndex, e = r.ReadUint16(); return })
	read(propertyflags.PropVisible, func() (e error) { c.Visible, e = r.ReadBool(); return })
	read(propertyflags.PropName, func() (e error) { c.Name, e = r.ReadString(); return })
	read(propertyflags.PropLocked, func() (e error) { c.Locked, e = r.ReadBool(); return })
	read(propertyflags.PropUserData, func() (e error) { c.UserData, e = r.ReadString(); return })
	read(propertyflags.PropHref, func() (e error) { c.Href, e = r.ReadString(); return })
	read(propertyflags.PropScript, func() (e error) { c.Script, e = r.ReadString(); return })
	read(propertyflags.PropPosition, func() (e error) { c.Position, e = r.ReadVec3(); return })
	read(propertyflags.PropDimensions, func() (e error) { c.Dimensions, e = r.ReadVec3(); return })
	read(propertyflags.PropRotation, func() (e error) { c.Rotation, e = r.ReadPackedQuaternion(); return })
	read(propertyflags.PropRegistrationPoint, func() (e error) { c.RegistrationPoint, e = r.ReadVec3(); return })
	read(propertyflags.PropCreated, func() (e error) { c.Created, e = r.ReadUint64(); return })
	read(propertyflags.PropLastEditedBy, func() (e error) { c.LastEditedBy, e = r.ReadUUID(); return })
	read(propertyflags.PropEntityHostType, func() (e error) { c.EntityHostType, e = r.ReadUint8(); return })
	read(propertyflags.PropOwningAvatarID, func() (e error) { c.OwningAvatarID, e = r.ReadUUID(); return })
	read(propertyflags.PropQueryAACube, func() (e error) { c.QueryAACube, e = r.ReadAACube(); return })
	read(propertyflags.PropCanCastShadow, func() (e error) { c.CanCastShadow, e = r.ReadBool(); return })
	read(propertyflags.PropRenderLayer, func() (e error) { c.RenderLayer, e = r.ReadUint8(); return })
	read(propertyflags.PropPrimitiveMode, func() (e error) { c.PrimitiveMode, e = r.ReadUint8(); return })
	read(propertyflags.PropIgnorePickIntersection, func() (e error) { c.IgnorePickIntersection, e = r.ReadBool(); return })
	read(propertyflags.PropColor, func() (e error) { c.Color, e = r.ReadColor(); return })
	read(propertyflags.PropAlpha, func() (e error) { c.Alpha, e = r.ReadFloat32(); return })
	read(propertyflags.PropPulseMin, func() (e error) { c.Pulse.Min, e = r.ReadFloat32(); return })
	read(propertyflags.PropPulseMax, func() (e error) { c.Pulse.Max, e = r.ReadFloat32(); return })
	read(propertyflags.PropPulsePeriod, func() (e error) { c.Pulse.Period, e = r.ReadFloat32(); return })
	read(propertyflags.PropPulseColorMode, func() (e error) { c.Pulse.ColorMode, e = r.ReadUint8(); return })
	read(propertyflags.PropPulseAlphaMode, func() (e error) { c.Pulse.AlphaMode, e = r.ReadUint8(); return })
	read(propertyflags.PropLifetime, func() (e error) { c.Lifetime, e = r.ReadFloat32(); return })
	read(propertyflags.PropClientOnly, func() (e error) { c.ClientOnly, e = r.ReadBool(); return })
	read(propertyflags.PropCloneable, func() (e error) { c.Cloneable, e = r.ReadBool(); return })
	read(propertyflags.PropGrabbable, func() (e error) { c.Grab.Grabbable, e = r.ReadBool(); return })
	read(propertyflags.PropGrabKinematic, func() (e error) { c.Grab.Kinematic, e = r.ReadBool(); return })
	read(propertyflags.PropGrabEquippable, func() (e error) { c.Grab.Equippable, e = r.ReadBool(); return })

	return err
}
