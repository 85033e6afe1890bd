// Package cli implements the coachctl operator commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/app"
	"github.com/heartmarshall/coaching-backend/internal/config"
	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/pkg/ctxutil"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
	rootCmd = &cobra.Command{
		Use:   "coachctl",
		Short: "Operator tools for the coaching backend",
		Long: `coachctl manages the coaching backend outside of the HTTP API.

Configuration is read the same way as the server: CONFIG_PATH points at a
YAML file and environment variables override it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.LoadFrom(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			logger = app.NewLogger(cfg.Log)
			return nil
		},
	}
)

// Execute runs the root command. SIGINT cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(timelineCmd)
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w\nSet DATABASE_DSN environment variable", err)
	}
	return pool, nil
}

// operatorCtx returns a context acting as an admin, so inspection commands
// can read any client.
func operatorCtx(ctx context.Context) context.Context {
	return ctxutil.WithActor(ctx, uuid.New(), string(domain.UserRoleAdmin))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
