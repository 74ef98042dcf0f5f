package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres migrations",
	Long:  `Apply the embedded resumes schema to the Postgres database named by MONGO_URI or DATABASE_URL.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if !db.IsPostgresURI(cfg.StoreURI) {
		return fmt.Errorf("migrate requires a postgres:// store URI")
	}

	ctx := contextOrBackground(cmd.Context())
	sqlDB, err := db.OpenStore(ctx, cfg.StoreURI, db.ProfileMigrate)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	telemetry.Info("migrate.done", nil)
	return nil
}
