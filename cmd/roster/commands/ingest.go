package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// IngestCmd creates the "ingest" command: pull the staff roster and
// vacation calendar from the configured source and print a summary,
// without running the solver.
func IngestCmd(app *AppContext) *cobra.Command {
	var staffCSV, vacationsCSV string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Pull the staff roster and vacation calendar and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, vacations, err := loadRoster(app, staffCSV, vacationsCSV)
			if err != nil {
				return err
			}

			app.Logger.Info("ingested roster", zap.Int("staff_count", len(staff)), zap.Int("staff_with_vacations", len(vacations)))

			fmt.Printf("staff: %d\n", len(staff))
			byRole := map[string]int{}
			for _, s := range staff {
				byRole[string(s.Role)]++
			}
			for role, count := range byRole {
				fmt.Printf("  %s: %d\n", role, count)
			}
			fmt.Printf("staff with recorded absences: %d\n", len(vacations))
			return nil
		},
	}

	cmd.Flags().StringVar(&staffCSV, "staff-csv", "", "path to a staff roster CSV (overrides the configured Sheets source)")
	cmd.Flags().StringVar(&vacationsCSV, "vacations-csv", "", "path to a vacation calendar CSV (overrides the configured Sheets source)")

	return cmd
}
