package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/pkg/config"
	"github.com/noah-isme/skynet-epr-api/pkg/database"
	"github.com/noah-isme/skynet-epr-api/pkg/logger"
)

func main() {
	command := flag.String("command", database.CommandUp, "migration command: up, down, status or reset")
	seed := flag.Bool("seed", false, "load demo data after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB, *command); err != nil {
		logr.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
	logr.Info("migration complete", zap.String("command", *command))

	if *seed {
		if err := database.Seed(ctx, db.DB); err != nil {
			logr.Fatal("seeding failed", zap.Error(err))
		}
		logr.Info("demo data loaded")
	}
}
