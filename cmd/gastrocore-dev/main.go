package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/carlsburger/gastrocore/config"
	"github.com/carlsburger/gastrocore/devserver"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))

	store, err := devserver.Open(cfg.Server.DSN)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	if staffID := os.Getenv("SEED_STAFF_ID"); staffID != "" {
		if err := store.Seed(staffID); err != nil {
			log.Fatalf("seeding: %v", err)
		}
		logger.Info("seeded development data", "staff_id", staffID)
	}

	srv := devserver.New(store, cfg.SigningSecret, logger)
	logger.Info("dev server listening", "addr", cfg.Server.Addr)
	if err := srv.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
