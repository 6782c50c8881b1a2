package cmd

import (
	"database/sql"
	"fmt"

	"github.com/pixelplaque/pixelplaque/internal/config"
	"github.com/pixelplaque/pixelplaque/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations (DB_DRIVER / DB_CONNECTION from env)",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateSubCmd("down", "Roll back the most recent migration", db.MigrateDown),
		migrateSubCmd("status", "Show applied and pending migrations", db.MigrationStatus),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = database.Close() }()

			return run(database.DB, cfg.DBDriver)
		},
	}
}
