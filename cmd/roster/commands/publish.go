package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vetclinic/oncall-roster/pkg/core/services"
)

// PublishCmd creates the "publish" command: export the persisted schedule
// for a quarter to CSV, optionally to a result sheet, and optionally email
// a notification.
func PublishCmd(app *AppContext) *cobra.Command {
	var csvPath string
	var email bool

	cmd := &cobra.Command{
		Use:   "publish <quarter-start>",
		Short: "Publish a solved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quarterStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid quarter-start %q: %w", args[0], err)
			}
			if app.Store == nil {
				return fmt.Errorf("publish requires a configured database (set databaseURL in the config file)")
			}

			sched, found, err := app.Store.LoadSchedule(app.Ctx, quarterStart)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no persisted schedule found for quarter starting %s", args[0])
			}

			var sheets = app.SheetsClient
			if app.Cfg.ResultSheetID != "" {
				sheets, err = ensureSheetsClient(app)
				if err != nil {
					return err
				}
			}

			var gmail = app.GmailClient
			if email {
				gmail, err = ensureGmailClient(app)
				if err != nil {
					return err
				}
			}

			if csvPath == "" {
				csvPath = fmt.Sprintf("roster_%s.csv", args[0])
			}

			if err := services.PublishRoster(sched, app.Cfg, csvPath, sheets, gmail, app.Logger); err != nil {
				return err
			}

			fmt.Printf("published schedule %s to %s\n", sched.ID, csvPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "output CSV path (default roster_<quarter-start>.csv)")
	cmd.Flags().BoolVar(&email, "email", false, "email a publish notification via Gmail")

	return cmd
}
