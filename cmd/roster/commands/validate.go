package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vetclinic/oncall-roster/pkg/core/validate"
)

// ValidateCmd creates the "validate" command: re-run the validator against
// a previously solved schedule, standalone.
func ValidateCmd(app *AppContext) *cobra.Command {
	var staffCSV, vacationsCSV string

	cmd := &cobra.Command{
		Use:   "validate <quarter-start>",
		Short: "Validate the persisted schedule for a quarter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quarterStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid quarter-start %q: %w", args[0], err)
			}
			if app.Store == nil {
				return fmt.Errorf("validate requires a configured database (set databaseURL in the config file)")
			}

			sched, found, err := app.Store.LoadSchedule(app.Ctx, quarterStart)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no persisted schedule found for quarter starting %s", args[0])
			}

			staff, vacations, err := loadRoster(app, staffCSV, vacationsCSV)
			if err != nil {
				return err
			}

			violations, penalties, err := validate.Validate(sched, staff, vacations, quarterStart, validate.Options{})
			if err != nil {
				return err
			}

			if len(violations) == 0 {
				fmt.Println("no hard-rule violations")
			} else {
				fmt.Printf("%d hard-rule violations:\n", len(violations))
				for _, v := range violations {
					fmt.Printf("  - [%s] %s\n", v.Rule, v.Detail)
				}
			}

			fmt.Println("soft penalty breakdown:")
			for name, score := range penalties {
				fmt.Printf("  %s: %.3f\n", name, score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&staffCSV, "staff-csv", "", "path to a staff roster CSV (overrides the configured Sheets source)")
	cmd.Flags().StringVar(&vacationsCSV, "vacations-csv", "", "path to a vacation calendar CSV (overrides the configured Sheets source)")

	return cmd
}
