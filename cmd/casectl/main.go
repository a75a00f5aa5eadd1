// Package main implements casectl, the operator CLI for the court cases
// record store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/config"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/logging"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "casectl",
	Short: "Operator CLI for the court cases store",
	Long: `casectl runs maintenance against the court cases database using the
same DB_* environment variables (or .env file) as the servers.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logging.Setup()
	},
}

// openStore connects and migrates; callers close the handle.
func openStore() (*gorm.DB, *config.Config, error) {
	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, cfg, nil
}
