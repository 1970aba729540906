package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphawork/alphawork/internal/infrastructure/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations and exit",
	Long:  `Open the configured database, apply any pending schema migrations, and exit. Useful for upgrading a database out of band before deploying a new server version.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	// NewDB runs pending migrations as part of opening.
	db, err := sqlite.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database at %s is up to date\n", cfg.Database.Path)
	return nil
}
