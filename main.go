package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/soar/padbind/internal/config"
	"github.com/soar/padbind/internal/gamepad/sdl3"
	"github.com/soar/padbind/internal/hub"
	"github.com/soar/padbind/internal/input"
	"github.com/soar/padbind/internal/server"
	"github.com/soar/padbind/internal/store"
	"github.com/soar/padbind/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Input engine with file-backed bindings
	persister := input.NewPersister(store.NewFileStore(cfg.BindingsFile))
	engine := input.NewEngine(persister, cfg.CancelKey)

	// Create and start hub
	h := hub.NewHub()
	go h.Run()

	// The broadcaster is the engine's mapping display
	broadcaster := hub.NewBroadcaster(h, engine)
	engine.SetNotifier(broadcaster)
	go broadcaster.Run(ctx)

	// Restore persisted bindings before any client or pad event arrives
	engine.Load()

	// Gamepad reader
	reader := sdl3.NewReader(engine, cfg.PollInterval)
	readerDone := make(chan struct{})
	go func() {
		reader.Run(ctx)
		close(readerDone)
	}()

	// Create and start HTTP server
	frontendFS := getFrontendFS()
	srv := server.New(h, broadcaster, engine, frontendFS, cfg.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := "http://localhost" + cfg.Addr
	log.Printf("padbind started: %s", url)

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	// Initialize system tray on Windows only
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(url, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal, tray request, or server error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
	}

	// Wait for reader to finish
	<-readerDone

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("padbind stopped")
}
