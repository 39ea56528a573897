package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"hrconsole/internal/platform/config"
	"hrconsole/internal/platform/db"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		action      string
		dir         string
		databaseURL string
	)
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVarP(&action, "action", "a", "up", "one of up, down, drop or version")
	flagSet.StringVar(&dir, "dir", cfg.MigrationsDir, "directory containing migration files")
	flagSet.StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "postgres connection string (defaults to DATABASE_URL)")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		action = flagSet.Arg(0)
	}
	if databaseURL == "" {
		return fmt.Errorf("database url is required")
	}

	result, err := db.Migrate(action, dir, databaseURL)
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}
	fmt.Printf("migration %s completed: %s\n", action, result)
	return nil
}
