package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//go:embed seeds/demo.sql
var demoSeed string

var gooseMu sync.Mutex

// Migration commands understood by Migrate.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandReset  = "reset"
)

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, "migrations")
	case CommandDown:
		err = goose.DownContext(ctx, db, "migrations")
	case CommandStatus:
		err = goose.StatusContext(ctx, db, "migrations")
	case CommandReset:
		err = goose.ResetContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// Seed replaces table contents with the demo roster.
func Seed(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, demoSeed); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}
