package vircadia

import (
	"testing"

	"github.com/vircadia/vircadia-client-go/internal/config"
)

func TestHashURLIsDeterministicAndDiscriminating(t *testing.T) {
	a := hashURL("wss://domain.example.com/")
	b := hashURL("wss://domain.example.com/")
	c := hashURL("wss://other.example.com/")

	if string(a) != string(b) {
		t.Fatalf("hashURL not deterministic: %x != %x", a, b)
	}
	if string(a) == string(c) {
		t.Fatalf("hashURL collided for distinct URLs: %x", a)
	}
	if len(a) != 4 {
		t.Fatalf("expected 4-byte hash, got %d", len(a))
	}
}

func TestDomainServerContextIDUnsetBeforeConnect(t *testing.T) {
	d := newDomainServer(config.Default())
	if d.ContextID() != 0 {
		t.Fatalf("expected zero ContextID before Connect, got %d", d.ContextID())
	}
}
