package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/xrplayground/backend/internal/config"
	"github.com/soar/xrplayground/backend/internal/drag"
	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/gamepad/sdlinput"
	"github.com/soar/xrplayground/backend/internal/hub"
	"github.com/soar/xrplayground/backend/internal/locomotion"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/server"
	"github.com/soar/xrplayground/backend/internal/session"
	"github.com/soar/xrplayground/backend/internal/tray"
	"github.com/soar/xrplayground/backend/internal/ui"
)

// Ctrl+C on every platform, plus SIGTERM from service managers.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

const dragObjects = 25

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Input source: virtual devices are driven from the debug view
	var (
		source  gamepad.Source
		virtual *gamepad.VirtualSource
	)
	if cfg.Input == config.InputSDL {
		if !sdlinput.Available() {
			logger.Fatalf("input %s: %v", cfg.Input, sdlinput.ErrUnavailable)
		}
		source = sdlinput.New(logger)
	} else {
		virtual = gamepad.NewVirtualSource()
		source = virtual
	}

	sc := scene.New()
	s := session.New(sc, source,
		session.WithLogger(logger),
		session.WithFrameRate(cfg.FPS),
		session.WithVerbose(cfg.Verbose),
	)

	aimHand, turnHand := cfg.Hands()
	fade := locomotion.NewFade(sc, logger)
	teleport := locomotion.NewTeleport(aimHand, turnHand, fade)
	panel := ui.NewPanel(gamepad.HandLeft, "y")
	seed := uint64(time.Now().UnixNano())
	dragger := drag.New(drag.Scatter(rand.New(rand.NewPCG(seed, seed>>1)), dragObjects))

	h := hub.NewHub(logger)
	go h.Run(ctx)
	broadcaster := hub.NewBroadcaster(h, teleport, fade, panel)

	s.Setup(dragger)
	s.Setup(fade)
	s.Setup(teleport)
	s.Setup(panel)
	s.Setup(broadcaster)
	go broadcaster.Run(ctx)

	// Create and start HTTP server
	frontend, err := frontendFS()
	if err != nil {
		logger.Fatalf("frontend: %v", err)
	}
	commander := hub.NewInputCommander(s, virtual)
	srv := server.New(h, broadcaster, commander, frontend, cfg.Addr, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	url := tray.DebugURL(cfg.Addr)
	logger.Printf("XR Playground started: %s (input: %s, aim: %s, turn: %s)", url, cfg.Input, aimHand, turnHand)

	shutdownRequested := make(chan struct{})
	var t *tray.Tray
	if cfg.Tray {
		t = tray.New(url, tray.Actions{
			Recenter: func() { s.Do(s.Recenter) },
			Shutdown: func() { close(shutdownRequested) },
		}, logger)
		go t.Run(tray.GetIcon())
	} else {
		logger.Println("Press Ctrl+C to exit")
	}

	// The frame loop locks its own OS thread; SDL is opened and polled there
	sessionErrCh := make(chan error, 1)
	go func() {
		sessionErrCh <- s.Run(ctx)
	}()

	select {
	case <-sigCh:
		logger.Println("Shutting down...")
	case <-shutdownRequested:
		logger.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		logger.Printf("HTTP server error: %v", err)
	case err := <-sessionErrCh:
		logger.Printf("Session error: %v", err)
		sessionErrCh <- err
	}
	cancel()

	if err := <-sessionErrCh; err != nil {
		logger.Printf("Session stopped: %v", err)
	}
	if t != nil {
		t.Quit()
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server shutdown error: %v", err)
	}

	logger.Println("XR Playground stopped")
}
