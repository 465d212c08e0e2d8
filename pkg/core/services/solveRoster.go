// Package services orchestrates the engine's core packages (solve,
// validate, store) into the operations cmd/roster exposes, the way the
// teacher's pkg/core/services package wires allocator+db+clients into a
// single call for its CLI.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/solve"
)

// ScheduleStore is the persistence surface SolveRoster needs; pkg/store.Store
// satisfies it in production, tests supply a fake.
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, sched model.Schedule, staff []model.Staff, status string, provenOptimal bool) error
}

// SolveRoster validates the roster, runs the solver, logs the outcome, and
// persists the result when store is non-nil and the solve is feasible.
func SolveRoster(ctx context.Context, staff []model.Staff, vacations model.Vacations, quarterStart time.Time, opts solve.Options, logger *zap.Logger, store ScheduleStore) (solve.Result, error) {
	logger.Info("starting roster solve",
		zap.Time("quarter_start", quarterStart),
		zap.Int("staff_count", len(staff)))

	if err := model.ValidateStaffList(staff); err != nil {
		logger.Error("staff list invalid", zap.Error(err))
		return solve.Result{}, fmt.Errorf("invalid staff list: %w", err)
	}
	if err := model.ValidateVacations(vacations, staff); err != nil {
		logger.Error("vacation calendar invalid", zap.Error(err))
		return solve.Result{}, fmt.Errorf("invalid vacation calendar: %w", err)
	}

	result := solve.Solve(staff, quarterStart, vacations, opts)

	logger.Info("solve finished",
		zap.String("status", string(result.SolverStatus)),
		zap.Bool("feasible", result.Feasible),
		zap.Bool("proven_optimal", result.ProvenOptimal),
		zap.Int("violation_count", len(result.Violations)))

	if !result.Feasible {
		if result.Diagnostics != nil {
			logger.Warn("infeasible solve", zap.Int("starved_slots", len(result.Diagnostics.Starved)))
		}
		return result, nil
	}

	if store != nil {
		if err := store.SaveSchedule(ctx, result.Schedule, staff, string(result.SolverStatus), result.ProvenOptimal); err != nil {
			logger.Error("failed to persist schedule", zap.Error(err))
			return result, fmt.Errorf("failed to persist schedule: %w", err)
		}
		logger.Info("schedule persisted", zap.String("schedule_id", result.Schedule.ID.String()))
	}

	return result, nil
}
