package vircadia

import (
	"testing"

	"github.com/vircadia/vircadia-client-go/internal/config"
	"github.com/vircadia/vircadia-client-go/internal/entity"
	"github.com/vircadia/vircadia-client-go/internal/entity/octree"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/protocol"
)

func TestNewClientStartsDisconnectedWithAllAssignmentsUnavailable(t *testing.T) {
	c := NewClient(config.Default())

	if c.State() != DomainDisconnected {
		t.Fatalf("expected DomainDisconnected, got %s", c.State())
	}
	for name, ac := range map[string]AssignmentClient{
		"avatar":   c.AvatarMixer(),
		"audio":    c.AudioMixer(),
		"entity":   c.EntityServer(),
		"messages": c.MessagesMixer(),
	} {
		if ac.State() != AssignmentUnavailable {
			t.Errorf("%s: expected AssignmentUnavailable, got %s", name, ac.State())
		}
	}
}

func TestEditEntityFailsWithNoActiveEntityServer(t *testing.T) {
	c := NewClient(config.Default())

	props := entity.Properties{
		Type: entity.TypeShape,
		Shape: &entity.ShapeProps{
			ShapeType: 1,
		},
	}

	if err := c.EditEntity(nodeuuid.New(), props); err == nil {
		t.Fatal("expected error with no active entity server")
	}
}

func TestHandleEntityDataInvokesCallbackWithDecodedType(t *testing.T) {
	c := NewClient(config.Default())

	id := nodeuuid.New()
	props := entity.Properties{
		Type: entity.TypeShape,
		Common: entity.Common{
			Position: octree.Vec3{X: 1, Y: 2, Z: 3},
		},
		Shape: &entity.ShapeProps{ShapeType: 2},
	}

	result, err := entity.Encode(&props, propertyflags.All(), 4096)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	idBuf := make([]byte, nodeuuid.Size)
	id.PutBE(idBuf)
	body := append([]byte{byte(entity.TypeShape)}, idBuf...)
	body = append(body, result.Data...)

	var got *entity.Properties
	c.OnEntityData(func(p entity.Properties) {
		got = &p
	})

	c.handleEntityData(id, &protocol.Packet{Body: body})

	if got == nil {
		t.Fatal("callback was not invoked")
	}
	if got.Type != entity.TypeShape {
		t.Errorf("expected TypeShape, got %s", got.Type)
	}
	if got.Shape == nil || got.Shape.ShapeType != 2 {
		t.Errorf("expected shape type 2, got %+v", got.Shape)
	}
}
