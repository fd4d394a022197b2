package entity

import (
	"fmt"

	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
)

// encodeSubclass walks the subclass-specific property block matching
// p.Type, if one is set, skipping entirely when p.Type carries no payload
// (e.g. a malformed edit the caller built without filling the block).
func encodeSubclass(w *walker, p *Properties, requested propertyflags.Flags) {
	switch p.Type {
	case TypeShape:
		if s := p.Shape; s != nil {
			if requested.Has(propertyflags.PropShapeType) {
				w.record(propertyflags.PropShapeType, octree.AppendUint8(w.ctx, s.ShapeType))
			}
			if requested.Has(propertyflags.PropCompoundShapeURL) {
				w.record(propertyflags.PropCompoundShapeURL, octree.AppendString(w.ctx, s.CompoundShapeURL))
			}
		}

	case TypeModel:
		if m := p.Model; m != nil {
			if requested.Has(propertyflags.PropModelURL) {
				w.record(propertyflags.PropModelURL, octree.AppendString(w.ctx, m.ModelURL))
			}
			if requested.Has(propertyflags.PropTextures) {
				w.record(propertyflags.PropTextures, octree.AppendString(w.ctx, m.Textures))
			}
			if requested.Has(propertyflags.PropShapeMaterial) {
				w.record(propertyflags.PropShapeMaterial, octree.AppendString(w.ctx, m.ShapeMaterial))
			}
			if requested.Has(propertyflags.PropAnimationURL) {
				w.record(propertyflags.PropAnimationURL, octree.AppendString(w.ctx, m.Animation.URL))
			}
			if requested.Has(propertyflags.PropAnimationFPS) {
				w.record(propertyflags.PropAnimationFPS, octree.AppendFloat32(w.ctx, m.Animation.FPS))
			}
			if requested.Has(propertyflags.PropAnimationFrameIndex) {
				w.record(propertyflags.PropAnimationFrameIndex, octree.AppendFloat32(w.ctx, m.Animation.FrameIndex))
			}
			if requested.Has(propertyflags.PropAnimationPlaying) {
				w.record(propertyflags.PropAnimationPlaying, octree.AppendBool(w.ctx, m.Animation.Playing))
			}
			if requested.Has(propertyflags.PropRelayParentJoints) {
				w.record(propertyflags.PropRelayParentJoints, octree.AppendBool(w.ctx, m.RelayParentJoints))
			}
		}

	case TypeLight:
		if l := p.Light; l != nil {
			if requested.Has(propertyflags.PropLightColor) {
				w.record(propertyflags.PropLightColor, octree.AppendColor(w.ctx, l.Color))
			}
			if requested.Has(propertyflags.PropLightIntensity) {
				w.record(propertyflags.PropLightIntensity, octree.AppendFloat32(w.ctx, l.Intensity))
			}
			if requested.Has(propertyflags.PropLightFalloffRadius) {
				w.record(propertyflags.PropLightFalloffRadius, octree.AppendFloat32(w.ctx, l.FalloffRadius))
			}
			if requested.Has(propertyflags.PropLightExponent) {
				w.record(propertyflags.PropLightExponent, octree.AppendFloat32(w.ctx, l.Exponent))
			}
			if requested.Has(propertyflags.PropLightCutoff) {
				w.record(propertyflags.PropLightCutoff, octree.AppendFloat32(w.ctx, l.Cutoff))
			}
			if requested.Has(propertyflags.PropLightSpotlight) {
				w.record(propertyflags.PropLightSpotlight, octree.AppendBool(w.ctx, l.Spotlight))
			}
		}

	case TypeZone:
		if z := p.Zone; z != nil {
			if requested.Has(propertyflags.PropZoneShapeType) {
				w.record(propertyflags.PropZoneShapeType, octree.AppendUint8(w.ctx, z.ShapeType))
			}
			if requested.Has(propertyflags.PropZoneCompoundShapeURL) {
				w.record(propertyflags.PropZoneCompoundShapeURL, octree.AppendString(w.ctx, z.CompoundShapeURL))
			}
			if requested.Has(propertyflags.PropKeyLightColor) {
				w.record(propertyflags.PropKeyLightColor, octree.AppendColor(w.ctx, z.KeyLight.Color))
			}
			if requested.Has(propertyflags.PropKeyLightIntensity) {
				w.record(propertyflags.PropKeyLightIntensity, octree.AppendFloat32(w.ctx, z.KeyLight.Intensity))
			}
			if requested.Has(propertyflags.PropKeyLightDirection) {
				w.record(propertyflags.PropKeyLightDirection, octree.AppendVec3(w.ctx, z.KeyLight.Direction))
			}
			if requested.Has(propertyflags.PropSkyboxColor) {
				w.record(propertyflags.PropSkyboxColor, octree.AppendColor(w.ctx, z.Skybox.Color))
			}
			if requested.Has(propertyflags.PropSkyboxURL) {
				w.record(propertyflags.PropSkyboxURL, octree.AppendString(w.ctx, z.Skybox.URL))
			}
			if requested.Has(propertyflags.PropHazeRange) {
				w.record(propertyflags.PropHazeRange, octree.AppendFloat32(w.ctx, z.Haze.Range))
			}
			if requested.Has(propertyflags.PropHazeColor) {
				w.record(propertyflags.PropHazeColor, octree.AppendColor(w.ctx, z.Haze.Color))
			}
			if requested.Has(propertyflags.PropAmbientLightIntensity) {
				w.record(propertyflags.PropAmbientLightIntensity, octree.AppendFloat32(w.ctx, z.AmbientLight.Intensity))
			}
			if requested.Has(propertyflags.PropAmbientLightURL) {
				w.record(propertyflags.PropAmbientLightURL, octree.AppendString(w.ctx, z.AmbientLight.URL))
			}
			if requested.Has(propertyflags.PropBloomIntensity) {
				w.record(propertyflags.PropBloomIntensity, octree.AppendFloat32(w.ctx, z.Bloom.Intensity))
			}
			if requested.Has(propertyflags.PropBloomThreshold) {
				w.record(propertyflags.PropBloomThreshold, octree.AppendFloat32(w.ctx, z.Bloom.Threshold))
			}
			if requested.Has(propertyflags.PropBloomSize) {
				w.record(propertyflags.PropBloomSize, octree.AppendFloat32(w.ctx, z.Bloom.Size))
			}
			if requested.Has(propertyflags.PropTonemappingCurve) {
				w.record(propertyflags.PropTonemappingCurve, octree.AppendUint8(w.ctx, z.Tonemapping.Curve))
			}
			if requested.Has(propertyflags.PropTonemappingExposure) {
				w.record(propertyflags.PropTonemappingExposure, octree.AppendFloat32(w.ctx, z.Tonemapping.Exposure))
			}
		}

	case TypeWeb:
		if web := p.Web; web != nil {
			if requested.Has(propertyflags.PropWebSourceURL) {
				w.record(propertyflags.PropWebSourceURL, octree.AppendString(w.ctx, web.SourceURL))
			}
			if requested.Has(propertyflags.PropWebDPI) {
				w.record(propertyflags.PropWebDPI, octree.AppendUint16(w.ctx, web.DPI))
			}
		}

	case TypeImage:
		if img := p.Image; img != nil {
			if requested.Has(propertyflags.PropImageURL) {
				w.record(propertyflags.PropImageURL, octree.AppendString(w.ctx, img.URL))
			}
			if requested.Has(propertyflags.PropImageEmissive) {
				w.record(propertyflags.PropImageEmissive, octree.AppendBool(w.ctx, img.Emissive))
			}
		}

	case TypeText:
		if txt := p.Text; txt != nil {
			if requested.Has(propertyflags.PropTextText) {
				w.record(propertyflags.PropTextText, octree.AppendString(w.ctx, txt.Text))
			}
			if requested.Has(propertyflags.PropTextLineHeight) {
				w.record(propertyflags.PropTextLineHeight, octree.AppendFloat32(w.ctx, txt.LineHeight))
			}
			if requested.Has(propertyflags.PropTextColor) {
				w.record(propertyflags.PropTextColor, octree.AppendColor(w.ctx, txt.Color))
			}
			if requested.Has(propertyflags.PropTextBackgroundColor) {
				w.record(propertyflags.PropTextBackgroundColor, octree.AppendColor(w.ctx, txt.BackgroundColor))
			}
		}

	case TypeGrid:
		if g := p.Grid; g != nil {
			if requested.Has(propertyflags.PropGridColor) {
				w.record(propertyflags.PropGridColor, octree.AppendColor(w.ctx, g.Color))
			}
			if requested.Has(propertyflags.PropGridMajorSpacing) {
				w.record(propertyflags.PropGridMajorSpacing, octree.AppendFloat32(w.ctx, g.MajorSpacing))
			}
			if requested.Has(propertyflags.PropGridMinorSpacing) {
				w.record(propertyflags.PropGridMinorSpacing, octree.AppendFloat32(w.ctx, g.MinorSpacing))
			}
		}

	case TypeGizmo:
		if g := p.Gizmo; g != nil {
			if requested.Has(propertyflags.PropGizmoType) {
				w.record(propertyflags.PropGizmoType, octree.AppendUint8(w.ctx, g.GizmoType))
			}
		}

	case TypeMaterial:
		if m := p.Material; m != nil {
			if requested.Has(propertyflags.PropMaterialURL) {
				w.record(propertyflags.PropMaterialURL, octree.AppendString(w.ctx, m.URL))
			}
			if requested.Has(propertyflags.PropMaterialMappingMode) {
				w.record(propertyflags.PropMaterialMappingMode, octree.AppendUint8(w.ctx, m.MappingMode))
			}
			if requested.Has(propertyflags.PropMaterialPriority) {
				w.record(propertyflags.PropMaterialPriority, octree.AppendUint16(w.ctx, m.Priority))
			}
		}

	case TypeParticleEffect:
		if pe := p.ParticleEffect; pe != nil {
			if requested.Has(propertyflags.PropParticleShapeType) {
				w.record(propertyflags.PropParticleShapeType, octree.AppendUint8(w.ctx, pe.ShapeType))
			}
			if requested.Has(propertyflags.PropParticleMaxParticles) {
				w.record(propertyflags.PropParticleMaxParticles, octree.AppendUint32(w.ctx, pe.MaxParticles))
			}
			if requested.Has(propertyflags.PropParticleLifespan) {
				w.record(propertyflags.PropParticleLifespan, octree.AppendFloat32(w.ctx, pe.Lifespan))
			}
			if requested.Has(propertyflags.PropParticleEmitRate) {
				w.record(propertyflags.PropParticleEmitRate, octree.AppendFloat32(w.ctx, pe.EmitRate))
			}
		}

	case TypePolyLine:
		if pl := p.PolyLine; pl != nil {
			if requested.Has(propertyflags.PropPolyLineVertices) {
				w.record(propertyflags.PropPolyLineVertices, octree.AppendVec3Array(w.ctx, pl.Vertices))
			}
			if requested.Has(propertyflags.PropPolyLineWidth) {
				w.record(propertyflags.PropPolyLineWidth, octree.AppendFloat32(w.ctx, pl.Width))
			}
		}

	case TypePolyVox:
		if pv := p.PolyVox; pv != nil {
			if requested.Has(propertyflags.PropPolyVoxVoxelVolumeSize) {
				w.record(propertyflags.PropPolyVoxVoxelVolumeSize, octree.AppendVec3(w.ctx, pv.VoxelVolumeSize))
			}
			if requested.Has(propertyflags.PropPolyVoxVoxelData) {
				w.record(propertyflags.PropPolyVoxVoxelData, octree.AppendByteArray(w.ctx, pv.VoxelData))
			}
		}
	}
}

// decodeSubclass allocates and populates the subclass block matching
// p.Type, reading only the fields flagged present.
func decodeSubclass(r *octree.Reader, p *Properties, flags propertyflags.Flags) error {
	var err error
	read := func(ok bool, fn func() error) {
		if err != nil || !ok {
			return
		}
		err = fn()
	}

	switch p.Type {
	case TypeShape:
		s := &ShapeProps{}
		read(flags.Has(propertyflags.PropShapeType), func() (e error) { s.ShapeType, e = r.ReadUint8(); return })
		read(flags.Has(propertyflags.PropCompoundShapeURL), func() (e error) { s.CompoundShapeURL, e = r.ReadString(); return })
		p.Shape = s

	case TypeModel:
		m := &ModelProps{}
		read(flags.Has(propertyflags.PropModelURL), func() (e error) { m.ModelURL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropTextures), func() (e error) { m.Textures, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropShapeMaterial), func() (e error) { m.ShapeMaterial, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropAnimationURL), func() (e error) { m.Animation.URL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropAnimationFPS), func() (e error) { m.Animation.FPS, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropAnimationFrameIndex), func() (e error) { m.Animation.FrameIndex, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropAnimationPlaying), func() (e error) { m.Animation.Playing, e = r.ReadBool(); return })
		read(flags.Has(propertyflags.PropRelayParentJoints), func() (e error) { m.RelayParentJoints, e = r.ReadBool(); return })
		p.Model = m

	case TypeLight:
		l := &LightProps{}
		read(flags.Has(propertyflags.PropLightColor), func() (e error) { l.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropLightIntensity), func() (e error) { l.Intensity, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropLightFalloffRadius), func() (e error) { l.FalloffRadius, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropLightExponent), func() (e error) { l.Exponent, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropLightCutoff), func() (e error) { l.Cutoff, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropLightSpotlight), func() (e error) { l.Spotlight, e = r.ReadBool(); return })
		p.Light = l

	case TypeZone:
		z := &ZoneProps{}
		read(flags.Has(propertyflags.PropZoneShapeType), func() (e error) { z.ShapeType, e = r.ReadUint8(); return })
		read(flags.Has(propertyflags.PropZoneCompoundShapeURL), func() (e error) { z.CompoundShapeURL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropKeyLightColor), func() (e error) { z.KeyLight.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropKeyLightIntensity), func() (e error) { z.KeyLight.Intensity, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropKeyLightDirection), func() (e error) { z.KeyLight.Direction, e = r.ReadVec3(); return })
		read(flags.Has(propertyflags.PropSkyboxColor), func() (e error) { z.Skybox.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropSkyboxURL), func() (e error) { z.Skybox.URL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropHazeRange), func() (e error) { z.Haze.Range, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropHazeColor), func() (e error) { z.Haze.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropAmbientLightIntensity), func() (e error) { z.AmbientLight.Intensity, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropAmbientLightURL), func() (e error) { z.AmbientLight.URL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropBloomIntensity), func() (e error) { z.Bloom.Intensity, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropBloomThreshold), func() (e error) { z.Bloom.Threshold, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropBloomSize), func() (e error) { z.Bloom.Size, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropTonemappingCurve), func() (e error) { z.Tonemapping.Curve, e = r.ReadUint8(); return })
		read(flags.Has(propertyflags.PropTonemappingExposure), func() (e error) { z.Tonemapping.Exposure, e = r.ReadFloat32(); return })
		p.Zone = z

	case TypeWeb:
		web := &WebProps{}
		read(flags.Has(propertyflags.PropWebSourceURL), func() (e error) { web.SourceURL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropWebDPI), func() (e error) { web.DPI, e = r.ReadUint16(); return })
		p.Web = web

	case TypeImage:
		img := &ImageProps{}
		read(flags.Has(propertyflags.PropImageURL), func() (e error) { img.URL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropImageEmissive), func() (e error) { img.Emissive, e = r.ReadBool(); return })
		p.Image = img

	case TypeText:
		txt := &TextProps{}
		read(flags.Has(propertyflags.PropTextText), func() (e error) { txt.Text, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropTextLineHeight), func() (e error) { txt.LineHeight, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropTextColor), func() (e error) { txt.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropTextBackgroundColor), func() (e error) { txt.BackgroundColor, e = r.ReadColor(); return })
		p.Text = txt

	case TypeGrid:
		g := &GridProps{}
		read(flags.Has(propertyflags.PropGridColor), func() (e error) { g.Color, e = r.ReadColor(); return })
		read(flags.Has(propertyflags.PropGridMajorSpacing), func() (e error) { g.MajorSpacing, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropGridMinorSpacing), func() (e error) { g.MinorSpacing, e = r.ReadFloat32(); return })
		p.Grid = g

	case TypeGizmo:
		g := &GizmoProps{}
		read(flags.Has(propertyflags.PropGizmoType), func() (e error) { g.GizmoType, e = r.ReadUint8(); return })
		p.Gizmo = g

	case TypeMaterial:
		m := &MaterialProps{}
		read(flags.Has(propertyflags.PropMaterialURL), func() (e error) { m.URL, e = r.ReadString(); return })
		read(flags.Has(propertyflags.PropMaterialMappingMode), func() (e error) { m.MappingMode, e = r.ReadUint8(); return })
		read(flags.Has(propertyflags.PropMaterialPriority), func() (e error) { m.Priority, e = r.ReadUint16(); return })
		p.Material = m

	case TypeParticleEffect:
		pe := &ParticleEffectProps{}
		read(flags.Has(propertyflags.PropParticleShapeType), func() (e error) { pe.ShapeType, e = r.ReadUint8(); return })
		read(flags.Has(propertyflags.PropParticleMaxParticles), func() (e error) { pe.MaxParticles, e = r.ReadUint32(); return })
		read(flags.Has(propertyflags.PropParticleLifespan), func() (e error) { pe.Lifespan, e = r.ReadFloat32(); return })
		read(flags.Has(propertyflags.PropParticleEmitRate), func() (e error) { pe.EmitRate, e = r.ReadFloat32(); return })
		p.ParticleEffect = pe

	case TypePolyLine:
		pl := &PolyLineProps{}
		read(flags.Has(propertyflags.PropPolyLineVertices), func() (e error) { pl.Vertices, e = r.ReadVec3Array(); return })
		read(flags.Has(propertyflags.PropPolyLineWidth), func() (e error) { pl.Width, e = r.ReadFloat32(); return })
		p.PolyLine = pl

	case TypePolyVox:
		pv := &PolyVoxProps{}
		read(flags.Has(propertyflags.PropPolyVoxVoxelVolumeSize), func() (e error) { pv.VoxelVolumeSize, e = r.ReadVec3(); return })
		read(flags.Has(propertyflags.PropPolyVoxVoxelData), func() (e error) { pv.VoxelData, e = r.ReadByteArray(); return })
		p.PolyVox = pv

	default:
		return fmt.Errorf("entity: unknown subclass type %d", p.Type)
	}

	return err
}
