package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/db"
	"github.com/danielhkuo/ballot-ledger/identity"
	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/memstore"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	// Open the ledger store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Ledger store ready", "type", cfg.DatabaseType)

	l := ledger.New(store, newProvider(cfg),
		ledger.WithAssertionTimeout(cfg.AssertionTimeout),
		ledger.WithLogger(slog.Default()),
	)

	// Create router
	mux := router.NewRouter(l, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		return
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "assertion", cfg.AssertionMode)
	err = serve(&server, ln, ctrlc, cfg.AssertionTimeout+5*time.Second)
	if err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// serve runs server on ln until stop fires, then drains in-flight requests
// for up to grace. It returns only after the drain, so callers may release
// the store afterwards.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, grace time.Duration) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal, then let in-flight votes finish
		if _, ok := <-stop; !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	<-drained
	return nil
}

// newLogger writes text to a terminal and JSON everywhere else
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func openStore(cfg cliparse.Config) (ledger.Store, func(), error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		return memstore.New(), func() {}, nil
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}, nil
}

func newProvider(cfg cliparse.Config) ledger.IdentityAssertionProvider {
	var provider ledger.IdentityAssertionProvider
	switch cfg.AssertionMode {
	case cliparse.AssertionApprove:
		provider = identity.Fixed{Success: true, Confidence: 1}
	default:
		provider = identity.NewSimulated(cfg.AssertionSuccessRate)
	}
	if cfg.AssertionMinConfidence > 0 {
		provider = identity.Threshold{Provider: provider, MinConfidence: cfg.AssertionMinConfidence}
	}
	return provider
}
