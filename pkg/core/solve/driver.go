package solve

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/google/uuid"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/validate"
)

// Solve is the engine's top-level entry point, per spec §6: it builds the
// CP-SAT model for the quarter and blocks until the solver returns an
// optimal/feasible assignment or proves infeasibility.
//
// The engine is single-threaded from the caller's perspective (spec §5):
// Solve does not spawn goroutines of its own, and two concurrent Solve
// calls share no mutable state (every intermediate table and the CP model
// itself live in values scoped to this call).
func Solve(staff []model.Staff, quarterStart time.Time, vacations model.Vacations, opts Options) Result {
	if err := model.ValidateStaffList(staff); err != nil {
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: err.Error()},
		}}
	}
	if err := model.ValidateVacations(vacations, staff); err != nil {
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: err.Error()},
		}}
	}

	tables, err := buildTables(staff, vacations, quarterStart)
	if err != nil {
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: err.Error()},
		}}
	}

	if starved := tables.starvedSlots(); len(starved) > 0 {
		diag := tables.coverageDiagnostics()
		return Result{
			SolverStatus: StatusInfeasible,
			Diagnostics:  diag,
			UnsatisfiableConstraints: []UnsatisfiableConstraint{{
				Kind:   UnsatisfiableCoverage,
				Detail: fmt.Sprintf("%d slot(s) have zero eligible staff", len(starved)),
				Dates:  slotDates(starved),
			}},
		}
	}

	if opts.Cancel != nil && isClosed(opts.Cancel) {
		return Result{SolverStatus: StatusUnknown, Cancelled: true}
	}

	cm := newCPModel(tables, staff)
	cm.addCoverageConstraints()
	cm.addAtMostOnePerDay()
	cm.addAzubiPairingConstraints()
	cm.addLoneWorkerConstraints()
	cm.addRestAfterNightConstraints()
	cm.addWeekendIsolationConstraints()
	cm.addDepartmentConstraints()
	cm.addMinConsecutiveConstraints(staff)
	cm.addBlockSpacingConstraints(staff)
	cm.addParticipationConstraints(staff, opts)
	cm.addFairnessObjective(staff, opts)

	m, err := cm.cp.Model()
	if err != nil {
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: fmt.Sprintf("building CP-SAT model: %v", err)},
		}}
	}

	// or-tools' Go binding, as vended into this repo, only demonstrates
	// the zero-argument SolveCpModel call — no time-limit/seed parameters
	// entry point is exercised here. Options.TimeLimit and Options.Seed
	// are therefore not passed into the solver itself; this is a
	// disclosed limitation rather than an enforced one. A deployment that
	// needs a hard solver deadline should confirm and adopt this
	// dependency's parameters call (e.g. SolveCpModelWithSatParameters)
	// once its exact signature is verified against the vendored version.
	response, err := cpmodel.SolveCpModel(m)
	if err != nil {
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: fmt.Sprintf("CP-SAT solve failed: %v", err)},
		}}
	}

	status := response.GetStatus().String()
	switch status {
	case "INFEASIBLE":
		return Result{
			SolverStatus: StatusInfeasible,
			Diagnostics:  tables.coverageDiagnostics(),
			UnsatisfiableConstraints: []UnsatisfiableConstraint{{
				Kind:   UnsatisfiableGeneric,
				Detail: "CP-SAT solver proved the model infeasible",
			}},
		}
	case "MODEL_INVALID", "UNKNOWN":
		return Result{SolverStatus: StatusUnknown, UnsatisfiableConstraints: []UnsatisfiableConstraint{
			{Kind: UnsatisfiableGeneric, Detail: fmt.Sprintf("CP-SAT solver returned %s", status)},
		}}
	}

	sched := cm.extractSchedule(response, quarterStart)

	violations, penalties, err := validate.Validate(sched, staff, vacations, quarterStart, opts.validateOptions())
	if err != nil {
		panic(fmt.Sprintf("solve: post-solve validation failed to run: %v", err))
	}
	if len(violations) > 0 {
		// spec §4.5: the CP-SAT model and the independent validator are
		// required to agree on every claimed-feasible solve. A mismatch
		// here means the encodings above have a bug, not that the
		// schedule is merely suboptimal.
		panic(fmt.Sprintf("solve: CP-SAT returned %s but validator found %d violation(s) in the extracted schedule: %+v", status, len(violations), violations))
	}

	return Result{
		Feasible:             true,
		Schedule:             sched,
		Violations:           nil,
		SoftPenaltyBreakdown: penalties,
		SolverStatus:         statusFromSolver(status),
		ProvenOptimal:        status == "OPTIMAL",
	}
}

func statusFromSolver(status string) Status {
	if status == "OPTIMAL" {
		return StatusOptimal
	}
	return StatusFeasible
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func newScheduleID() uuid.UUID {
	return uuid.New()
}

func slotDates(slots []model.Slot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.Date
	}
	return out
}
