// migrate applies the embedded SQL migrations to a PostgreSQL database.
//
// The connection string comes from --dsn, then DATABASE_URL, then the DB_*
// variables read by the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/config"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-attendance/migrations"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var dsn string
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("no --dsn given and config is unusable: %w", err)
		}
		dsn = cfg.DatabaseURL()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db, migrations.FS)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		logger.Info("database is up to date")
		return nil
	}
	for _, version := range applied {
		logger.Info("applied migration", "version", version)
	}
	return nil
}
