// Command roster is the CLI front end for the on-call duty roster engine:
// solving a quarter, validating a schedule standalone, ingesting the staff
// roster, and publishing a solved schedule.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vetclinic/oncall-roster/cmd/roster/commands"
	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/store"
	"github.com/vetclinic/oncall-roster/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Veterinary clinic on-call roster engine",
		Long:  "Solve, validate, ingest, and publish quarterly on-call duty rosters.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
			app.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "environment (required: dev, staging, prod, ...)")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.SolveCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.IngestCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app, rootCmd))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads the logger and config eagerly, and opens the Postgres store
// when DatabaseURL is set. The Sheets/Gmail clients are opened lazily by the
// commands that actually need them, so solve and validate run without
// Google OAuth when given --staff-csv and --vacations-csv.
func initApp(app *commands.AppContext) error {
	app.Env = env
	app.Ctx = context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	logger.Info("starting roster CLI", zap.String("environment", env))

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	if cfg.DatabaseURL != "" {
		st, err := store.New(app.Ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := st.Migrate(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Store = st
	}

	return nil
}
