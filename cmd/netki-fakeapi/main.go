package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"netki/internal/fakeapi"
	"netki/internal/platform/config"
	"netki/internal/platform/httpserver"
	"netki/internal/platform/logger"
)

// main serves the in-memory partner API so the CLI and SDK can be tried
// without real credentials. It accepts exactly NETKI_API_KEY and
// NETKI_PARTNER_ID.
func main() {
	cfg := config.FromEnv()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	addr := os.Getenv("NETKI_FAKEAPI_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	if cfg.APIKey == "" || cfg.PartnerID == "" {
		log.Error("NETKI_API_KEY and NETKI_PARTNER_ID are required")
		os.Exit(1)
	}

	handler := fakeapi.New(fakeapi.NewInMemoryStore(), cfg.APIKey, cfg.PartnerID, fakeapi.WithLogger(log))
	srv := httpserver.New(addr, handler.Router())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Run(ctx, srv, log); err != nil {
		log.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}
