// Vircadia-client — CLI entry point.
//
// Connects to a domain server's WebRTC signaling endpoint, prints
// connection-state and roster transitions as they happen, and stays
// connected until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/pterm/pterm"

	vircadia "github.com/vircadia/vircadia-client-go"
	"github.com/vircadia/vircadia-client-go/internal/config"
	"github.com/vircadia/vircadia-client-go/internal/entity"
	"github.com/vircadia/vircadia-client-go/internal/netlog"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	domainURL := flag.String("domain", "", "Domain server signaling URL (ws:// or wss://)")
	checkIn := flag.Duration("checkin", config.DefaultCheckInPeriod, "Check-in period")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debugMode {
		netlog.EnableDebug()
	}

	pterm.Info.Println(fmt.Sprintf("vircadia-client — v%s", version))
	pterm.Println()

	if *domainURL == "" {
		*domainURL = askDomainURL()
	}

	normalized, err := normalizeWSURL(*domainURL)
	if err != nil {
		netlog.Error("%v", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.SignalingURL = normalized
	cfg.CheckInPeriod = *checkIn

	c := vircadia.NewClient(cfg)

	c.OnStateChanged(func(s vircadia.DomainState) {
		netlog.Info("domain state: %s", s)
	})
	c.AvatarMixer().OnStateChanged(func(s vircadia.AssignmentState) {
		netlog.Info("avatar mixer: %s", s)
	})
	c.AudioMixer().OnStateChanged(func(s vircadia.AssignmentState) {
		netlog.Info("audio mixer: %s", s)
	})
	c.EntityServer().OnStateChanged(func(s vircadia.AssignmentState) {
		netlog.Info("entity server: %s", s)
	})
	c.MessagesMixer().OnStateChanged(func(s vircadia.AssignmentState) {
		netlog.Info("messages mixer: %s", s)
	})
	c.OnEntityData(func(p entity.Properties) {
		netlog.Debug("entity data: type=%s", p.Type)
	})

	if err := c.Connect(ctx, normalized); err != nil {
		netlog.Error("failed to connect: %v", err)
		os.Exit(1)
	}
	netlog.Success("connected to %s (context %08x)", normalized, c.ContextID())

	<-ctx.Done()
	c.Disconnect()
	netlog.Info("disconnected")
}

// normalizeWSURL validates and normalizes a raw WebSocket URL string,
// defaulting to wss:// when no scheme is given.
func normalizeWSURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "://") {
		trimmed = "wss://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid WebSocket URL: %s", raw)
	}
	scheme := "wss"
	if u.Scheme == "ws" || u.Scheme == "wss" {
		scheme = u.Scheme
	}
	return fmt.Sprintf("%s://%s%s", scheme, u.Host, u.Path), nil
}

// askDomainURL prompts for a domain URL until a valid one is entered.
func askDomainURL() string {
	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Domain server URL (e.g. wss://domain.example.com/)").
			Show()

		if _, err := normalizeWSURL(raw); err == nil {
			pterm.Println()
			return raw
		}

		pterm.Println()
		netlog.Warning("invalid input: please enter a valid host or URL")
	}
}
