package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/services"
	"github.com/vetclinic/oncall-roster/pkg/core/solve"
	"github.com/vetclinic/oncall-roster/pkg/ingest"
)

// SolveCmd creates the "solve" command: ingest staff+vacations, run the
// engine, print the outcome.
func SolveCmd(app *AppContext) *cobra.Command {
	var staffCSV, vacationsCSV string
	var timeLimit time.Duration
	var seed int64

	cmd := &cobra.Command{
		Use:   "solve <quarter-start>",
		Short: "Solve the on-call roster for a quarter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quarterStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid quarter-start %q: %w", args[0], err)
			}

			staff, vacations, err := loadRoster(app, staffCSV, vacationsCSV)
			if err != nil {
				return err
			}

			opts := solveOptionsFromConfig(app, timeLimit, seed)

			result, err := services.SolveRoster(app.Ctx, staff, vacations, quarterStart, opts, app.Logger, storeOrNil(app))
			if err != nil {
				return err
			}

			printSolveResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&staffCSV, "staff-csv", "", "path to a staff roster CSV (overrides the configured Sheets source)")
	cmd.Flags().StringVar(&vacationsCSV, "vacations-csv", "", "path to a vacation calendar CSV (overrides the configured Sheets source)")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "solver time budget (defaults to config, then 120s)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "solver random seed (defaults to config, then 0)")

	return cmd
}

func solveOptionsFromConfig(app *AppContext, timeLimit time.Duration, seed int64) solve.Options {
	opts := solve.Options{
		EnforceMinParticipation:      app.Cfg.EnforceMinParticipation,
		ExemptRestrictedFromFairness: app.Cfg.ExemptRestrictedFromFairness,
	}
	if timeLimit > 0 {
		opts.TimeLimit = timeLimit
	} else if app.Cfg.TimeLimitSeconds > 0 {
		opts.TimeLimit = time.Duration(app.Cfg.TimeLimitSeconds) * time.Second
	}
	if seed != 0 {
		opts.Seed = seed
	} else if app.Cfg.Seed != nil {
		opts.Seed = *app.Cfg.Seed
	}
	return opts
}

// loadRoster reads the staff roster and vacation calendar from CSV when
// either path flag is given, otherwise from the configured Sheets source.
func loadRoster(app *AppContext, staffCSV, vacationsCSV string) ([]model.Staff, model.Vacations, error) {
	if staffCSV != "" || vacationsCSV != "" {
		if staffCSV == "" || vacationsCSV == "" {
			return nil, nil, fmt.Errorf("both --staff-csv and --vacations-csv must be given together")
		}
		staff, err := ingest.StaffFromCSV(staffCSV)
		if err != nil {
			return nil, nil, err
		}
		vacations, err := ingest.VacationsFromCSV(vacationsCSV)
		if err != nil {
			return nil, nil, err
		}
		return staff, vacations, nil
	}

	sheets, err := ensureSheetsClient(app)
	if err != nil {
		return nil, nil, err
	}
	staff, err := sheets.ListStaff(app.Cfg)
	if err != nil {
		return nil, nil, err
	}
	vacations, err := sheets.ListVacations(app.Cfg)
	if err != nil {
		return nil, nil, err
	}
	return staff, vacations, nil
}

func printSolveResult(result solve.Result) {
	fmt.Printf("status: %s\n", result.SolverStatus)
	fmt.Printf("feasible: %t\n", result.Feasible)
	fmt.Printf("proven optimal: %t\n", result.ProvenOptimal)
	if !result.Feasible {
		fmt.Printf("unsatisfiable constraints: %d\n", len(result.UnsatisfiableConstraints))
		for _, c := range result.UnsatisfiableConstraints {
			fmt.Printf("  - [%s] %s\n", c.Kind, c.Detail)
		}
		if result.Diagnostics != nil {
			fmt.Printf("starved slots: %d\n", len(result.Diagnostics.Starved))
		}
		return
	}
	fmt.Printf("schedule id: %s\n", result.Schedule.ID)
	fmt.Printf("assignments: %d\n", len(result.Schedule.Assignments))
}

func storeOrNil(app *AppContext) services.ScheduleStore {
	if app.Store == nil {
		return nil
	}
	return app.Store
}
