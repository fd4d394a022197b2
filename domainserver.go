// Package vircadia is the public SDK surface: a client for joining a
// virtual-world domain, watching its assignment clients come and go, and
// exchanging entity edits, built on the internal transport/protocol/entity
// layers.
package vircadia

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/vircadia/vircadia-client-go/internal/config"
	"github.com/vircadia/vircadia-client-go/internal/nodelist"
)

// DomainServer is the connection to one domain's check-in/roster protocol.
type DomainServer interface {
	Connect(ctx context.Context, url string) error
	Disconnect()
	State() DomainState
	ContextID() uint32
	OnStateChanged(func(DomainState))
}

// domainServer implements DomainServer on top of a NodeList.
type domainServer struct {
	nl *nodelist.NodeList

	mu        sync.RWMutex
	contextID uint32
}

func newDomainServer(cfg config.Config) *domainServer {
	return &domainServer{nl: nodelist.New(cfg)}
}

func (d *domainServer) Connect(ctx context.Context, url string) error {
	if err := d.nl.Connect(ctx, url); err != nil {
		return err
	}
	d.mu.Lock()
	d.contextID = binary.BigEndian.Uint32(hashURL(url))
	d.mu.Unlock()
	return nil
}

func (d *domainServer) Disconnect() {
	d.nl.Disconnect()
}

func (d *domainServer) State() DomainState {
	return d.nl.State()
}

// ContextID returns a stable per-connection identifier derived from the
// domain URL, used to distinguish edits/log lines across reconnects to
// different domains within one process.
func (d *domainServer) ContextID() uint32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.contextID
}

func (d *domainServer) OnStateChanged(fn func(DomainState)) {
	d.nl.OnStateChange(fn)
}

// hashURL derives a small deterministic fingerprint from url using FNV-1a,
// good enough for a human-legible ContextID without pulling in a crypto
// hash for a non-security identifier.
func hashURL(url string) []byte {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	var h uint32 = offset32
	for i := 0; i < len(url); i++ {
		h ^= uint32(url[i])
		h *= prime32
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, h)
	return buf
}
