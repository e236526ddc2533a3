// Command admin manages tutorbook accounts: creating users with elevated
// roles, changing roles and resetting passwords.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/tutorbook/internal/config"
	"github.com/mmynk/tutorbook/internal/storage/mongostore"
	"github.com/mmynk/tutorbook/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("TUTORBOOK_CONFIG"), ".env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	cli := commandLine{ctx: ctx, store: store}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			slog.Error("Command failed", "error", err)
		}
		store.Close()
		os.Exit(1)
	}
}
