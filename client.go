package vircadia

import (
	"fmt"
	"sync"

	"github.com/vircadia/vircadia-client-go/internal/config"
	entitypkg "github.com/vircadia/vircadia-client-go/internal/entity"
	"github.com/vircadia/vircadia-client-go/internal/entity/propertyflags"
	"github.com/vircadia/vircadia-client-go/internal/netlog"
	"github.com/vircadia/vircadia-client-go/internal/nodelist"
	"github.com/vircadia/vircadia-client-go/internal/nodeuuid"
	"github.com/vircadia/vircadia-client-go/internal/protocol"
)

// Client is the joined-domain SDK surface: it tracks the four assignment
// clients a world session cares about and carries entity edits to and
// from the entity server. NewClient returns a value that also implements
// DomainServer, so Connect/Disconnect/State/OnStateChanged are available
// directly on it alongside Client's own methods.
type Client interface {
	AvatarMixer() AssignmentClient
	AudioMixer() AssignmentClient
	EntityServer() AssignmentClient
	MessagesMixer() AssignmentClient
	EditEntity(id nodeuuid.UUID, props entitypkg.Properties) error
	OnEntityData(func(entitypkg.Properties))
}

// client implements both DomainServer and Client on a single NodeList.
type client struct {
	*domainServer

	avatarMixer   *assignmentClient
	audioMixer    *assignmentClient
	entityServer  *assignmentClient
	messagesMixer *assignmentClient

	mu           sync.RWMutex
	onEntityData func(entitypkg.Properties)
}

// NewClient creates a joined-domain Client/DomainServer with the given
// configuration. Call Connect before using the assignment-client
// accessors or EditEntity.
func NewClient(cfg config.Config) *client {
	ds := newDomainServer(cfg)
	c := &client{
		domainServer:  ds,
		avatarMixer:   newAssignmentClient(ds.nl, nodelist.NodeTypeAvatarMixer),
		audioMixer:    newAssignmentClient(ds.nl, nodelist.NodeTypeAudioMixer),
		entityServer:  newAssignmentClient(ds.nl, nodelist.NodeTypeEntityServer),
		messagesMixer: newAssignmentClient(ds.nl, nodelist.NodeTypeMessagesMixer),
	}

	ds.nl.OnPacket(protocol.TypeEntityData, c.handleEntityData)
	ds.nl.OnNodeActivated(c.handleNodeActivated)

	return c
}

func (c *client) handleNodeActivated(n *nodelist.Node) {
	switch n.Type {
	case nodelist.NodeTypeAvatarMixer:
		c.avatarMixer.noteActive()
	case nodelist.NodeTypeAudioMixer:
		c.audioMixer.noteActive()
	case nodelist.NodeTypeEntityServer:
		c.entityServer.noteActive()
	case nodelist.NodeTypeMessagesMixer:
		c.messagesMixer.noteActive()
	}
}

func (c *client) AvatarMixer() AssignmentClient   { return c.avatarMixer }
func (c *client) AudioMixer() AssignmentClient    { return c.audioMixer }
func (c *client) EntityServer() AssignmentClient  { return c.entityServer }
func (c *client) MessagesMixer() AssignmentClient { return c.messagesMixer }

// EditEntity encodes props and sends it as an entity-edit packet to the
// active entity server. The entity subclass type and entity id travel
// ahead of the property-flags body so the decoder on the other end knows
// how to interpret it. Every property in the Common block and in the
// subclass block matching props.Type is requested, so callers build props
// as a full snapshot of the entity's state rather than a sparse patch.
func (c *client) EditEntity(id nodeuuid.UUID, props entitypkg.Properties) error {
	result, err := entitypkg.Encode(&props, propertyflags.All(), maxEntityEditSize)
	if err != nil {
		return fmt.Errorf("vircadia: encode entity edit: %w", err)
	}
	if !result.DidntFit.IsEmpty() {
		netlog.Warning("vircadia: entity edit for %s dropped some properties that didn't fit", id)
	}

	body := make([]byte, 0, 1+nodeuuid.Size+len(result.Data))
	body = append(body, byte(props.Type))
	idBuf := make([]byte, nodeuuid.Size)
	id.PutBE(idBuf)
	body = append(body, idBuf...)
	body = append(body, result.Data...)

	if !c.nl.SendToNodeType(nodelist.NodeTypeEntityServer, protocol.TypeEntityEdit, body) {
		return fmt.Errorf("vircadia: no active entity server to send edit to")
	}
	return nil
}

func (c *client) OnEntityData(fn func(entitypkg.Properties)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEntityData = fn
}

func (c *client) handleEntityData(sender nodeuuid.UUID, pkt *protocol.Packet) {
	if len(pkt.Body) < 1+nodeuuid.Size {
		netlog.Warning("vircadia: truncated entity-data packet")
		return
	}

	entityType := entitypkg.Type(pkt.Body[0])
	// pkt.Body[1:1+nodeuuid.Size] carries the entity id; OnEntityData's
	// callback signature only needs the decoded properties, not the id.

	props, err := entitypkg.Decode(entityType, pkt.Body[1+nodeuuid.Size:])
	if err != nil {
		netlog.Warning("vircadia: decode entity data: %v", err)
		return
	}

	c.mu.RLock()
	fn := c.onEntityData
	c.mu.RUnlock()
	if fn != nil {
		fn(*props)
	}
}

// maxEntityEditSize bounds a single entity-edit packet body, matching the
// domain protocol's default data channel MTU budget.
const maxEntityEditSize = config.DefaultMaxPacketSize - protocol.HeaderSize
