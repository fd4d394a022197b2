package entity

import (
	"testing"

	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
)

func requestAll(props ...propertyflags.Property) propertyflags.Flags {
	f := propertyflags.New()
	for _, p := range props {
		f.Set(p)
	}
	return f
}

func TestEncodeDecodeShapeFullFit(t *testing.T) {
	p := &Properties{
		Type: TypeShape,
		Common: Common{
			Name:     "a-cube",
			Position: octree.Vec3{X: 1, Y: 2, Z: 3},
			Color:    octree.Color{R: 255, G: 0, B: 0},
			Visible:  true,
		},
		Shape: &ShapeProps{ShapeType: 2, CompoundShapeURL: ""},
	}

	requested := requestAll(
		propertyflags.PropName, propertyflags.PropPosition,
		propertyflags.PropColor, propertyflags.PropVisible,
		propertyflags.PropShapeType,
	)

	result, err := Encode(p, requested, 4096)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !result.DidntFit.IsEmpty() {
		t.Fatalf("expected everything to fit, didntFit=%+v", result.DidntFit)
	}
	if result.State != octree.StateCompleted {
		t.Fatalf("State = %v, want COMPLETED", result.State)
	}

	decoded, err := Decode(TypeShape, result.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Common.Name != "a-cube" {
		t.Fatalf("Name = %q, want a-cube", decoded.Common.Name)
	}
	if decoded.Common.Position != p.Common.Position {
		t.Fatalf("Position = %+v, want %+v", decoded.Common.Position, p.Common.Position)
	}
	if decoded.Common.Color != p.Common.Color {
		t.Fatalf("Color = %+v, want %+v", decoded.Common.Color, p.Common.Color)
	}
	if decoded.Shape == nil || decoded.Shape.ShapeType != 2 {
		t.Fatalf("Shape = %+v, want ShapeType 2", decoded.Shape)
	}
}

func TestEncodeNoFitWhenBudgetTooSmall(t *testing.T) {
	p := &Properties{
		Common: Common{UserData: "this will not fit in the tiny budget given to it"},
	}
	requested := requestAll(propertyflags.PropUserData)

	result, err := Encode(p, requested, propertyflags.MaxEncodedSize()+4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !result.DidntFit.Has(propertyflags.PropUserData) {
		t.Fatalf("expected PropUserData in DidntFit, got %+v", result.DidntFit)
	}
	if result.Encoded.Has(propertyflags.PropUserData) {
		t.Fatalf("expected PropUserData absent from Encoded")
	}
	if result.State != octree.StateNone {
		t.Fatalf("State = %v, want NONE", result.State)
	}
}

func TestEncodePartialFitOnArrayProperty(t *testing.T) {
	p := &Properties{
		Type: TypePolyLine,
		PolyLine: &PolyLineProps{
			Vertices: []octree.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}},
			Width:    1,
		},
	}
	requested := requestAll(propertyflags.PropPolyLineVertices, propertyflags.PropPolyLineWidth)

	// Room for the flags reservation, the width float, and only ~2 of 5 Vec3s.
	budget := propertyflags.MaxEncodedSize() + 4 /*width*/ + 2 /*count prefix*/ + 24 /*two vec3s*/
	result, err := Encode(p, requested, budget)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !result.Encoded.Has(propertyflags.PropPolyLineVertices) {
		t.Fatalf("expected vertices partially encoded and present")
	}
	if !result.DidntFit.Has(propertyflags.PropPolyLineVertices) {
		t.Fatalf("expected vertices flagged as didn't fully fit")
	}
	if !result.Encoded.Has(propertyflags.PropPolyLineWidth) {
		t.Fatalf("expected width to fit fully")
	}
	if result.State != octree.StatePartial {
		t.Fatalf("State = %v, want PARTIAL", result.State)
	}

	decoded, err := Decode(TypePolyLine, result.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.PolyLine.Vertices) == 0 || len(decoded.PolyLine.Vertices) >= 5 {
		t.Fatalf("expected a partial vertex list, got %d elements", len(decoded.PolyLine.Vertices))
	}
	if decoded.PolyLine.Width != 1 {
		t.Fatalf("Width = %v, want 1", decoded.PolyLine.Width)
	}
}

func TestEncodeDecodeZoneRoundTrip(t *testing.T) {
	p := &Properties{
		Type: TypeZone,
		Zone: &ZoneProps{
			KeyLight: KeyLight{
				Color:     octree.Color{R: 200, G: 200, B: 255},
				Intensity: 0.8,
				Direction: octree.Vec3{X: 0, Y: -1, Z: 0},
			},
			Haze: Haze{Range: 100, Color: octree.Color{R: 128, G: 128, B: 128}},
		},
	}
	requested := requestAll(
		propertyflags.PropKeyLightColor, propertyflags.PropKeyLightIntensity,
		propertyflags.PropKeyLightDirection, propertyflags.PropHazeRange,
		propertyflags.PropHazeColor,
	)

	result, err := Encode(p, requested, 4096)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(TypeZone, result.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Zone.KeyLight.Intensity != 0.8 {
		t.Fatalf("KeyLight.Intensity = %v, want 0.8", decoded.Zone.KeyLight.Intensity)
	}
	if decoded.Zone.Haze.Range != 100 {
		t.Fatalf("Haze.Range = %v, want 100", decoded.Zone.Haze.Range)
	}
}

func TestEncodeDecodeUUIDFields(t *testing.T) {
	owner := nodeuuid.New()
	p := &Properties{
		Type:   TypeModel,
		Common: Common{SimulationOwner: owner},
		Model:  &ModelProps{ModelURL: "atp:/model.fbx"},
	}
	requested := requestAll(propertyflags.PropSimulationOwner, propertyflags.PropModelURL)

	result, err := Encode(p, requested, 4096)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(TypeModel, result.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Common.SimulationOwner != owner {
		t.Fatalf("SimulationOwner mismatch")
	}
	if decoded.Model.ModelURL != "atp:/model.fbx" {
		t.Fatalf("ModelURL = %q", decoded.Model.ModelURL)
	}
}
