package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/genops-api/internal/config"
	"github.com/phrazzld/genops-api/internal/platform/postgres"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	envFile    string
	configDirs []string
}

// loadConfig reads configuration. With skipAuth the auth section is not
// validated, so no JWT secret is needed.
func (o *rootOptions) loadConfig(skipAuth bool) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.Options{
		EnvFile:     o.envFile,
		ConfigPaths: o.configDirs,
		SkipAuth:    skipAuth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.DefaultOptions()

	root := &cobra.Command{
		Use:   "genops-api",
		Short: "Generator Ops task API",
		Long: `genops-api serves the Generator Ops HTTP API: account registration,
login, and per-user maintenance task management backed by PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", defaults.EnvFile,
		"dotenv file to load before reading the environment")
	root.PersistentFlags().StringSliceVar(&opts.configDirs, "config-dir", defaults.ConfigPaths,
		"directories searched for config.yaml")

	root.AddCommand(newServeCommand(opts), newMigrateCommand(opts))
	return root
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Load configuration, connect to the database, apply pending migrations
when database.auto_migrate is set, and serve HTTP until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(false)
			if err != nil {
				return err
			}
			log, err := setupAppLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := setupAppDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			if cfg.Database.AutoMigrate {
				if err := runMigrations(ctx, db, log, "up"); err != nil {
					_ = db.Close()
					return err
				}
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				_ = db.Close()
				return err
			}
			return app.serve(ctx)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status|version|reset]",
		Short: "Run database migrations",
		Long: `Apply or inspect the embedded SQL migrations against the configured
database. Defaults to "up". Only the server and database settings are
required; no JWT secret is needed.`,
		ValidArgs: postgres.MigrationCommands,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := opts.loadConfig(true)
			if err != nil {
				return err
			}
			log, err := setupAppLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := setupAppDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database connection", "error", err)
				}
			}()

			return runMigrations(ctx, db, log, command)
		},
	}
}
