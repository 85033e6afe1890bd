package cli

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/coaching-backend/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, db, err := newMigrationProvider()
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := provider.Up(cmd.Context())
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, db, err := newMigrationProvider()
		if err != nil {
			return err
		}
		defer db.Close()

		r, err := provider.Down(cmd.Context())
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", r.Source.Path)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, db, err := newMigrationProvider()
		if err != nil {
			return err
		}
		defer db.Close()

		statuses, err := provider.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", s.State, s.Source.Path)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

// goose requires *sql.DB, so migrations go through the pgx stdlib driver.
func newMigrationProvider() (*goose.Provider, *sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, db, nil
}
