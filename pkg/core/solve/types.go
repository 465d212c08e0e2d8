// Package solve implements the CP model builder and search driver from
// spec §4.4-4.5: it enumerates the eligible decision variables for a
// quarter, builds the linear-integer encodings for every hard rule in
// pkg/core/validate, and asks or-tools' CP-SAT solver
// (github.com/google/or-tools/ortools/sat/go/cpmodel) for an assignment
// that minimises the fairness objective among feasible ones. The solver
// itself requires CGO and a native or-tools C++ build to link against —
// its Go binding is not pure Go, which is a build-environment requirement
// of this package, not a reason to avoid the dependency. validate.Validate
// still runs once over the extracted solution, per spec §4.5, as a
// confirmation pass: a mismatch there is a fatal internal error, never an
// expected outcome.
package solve

import (
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/validate"
)

// Status classifies how the search driver terminated, per spec §4.5.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusUnknown    Status = "unknown"
)

// defaultTimeLimit is the wall-clock search budget when Options.TimeLimit
// is zero, per spec §4.5.
const defaultTimeLimit = 120 * time.Second

// Options configures one solve call, per spec §6's entry point.
type Options struct {
	// TimeLimit is the wall-clock search budget; zero resolves to
	// defaultTimeLimit (120s). Solve does not pass it to the CP-SAT solver,
	// so the solve call is not bounded by it.
	TimeLimit time.Duration

	// Seed is the caller's solver seed. Solve does not pass it to the
	// CP-SAT solver.
	Seed int64

	// EnforceMinParticipation applies H21/H22 (validate.Options.
	// EnforceMinParticipation) during both search and final validation.
	EnforceMinParticipation bool

	// ExemptRestrictedFromFairness excludes over-restricted staff (fewer
	// available night kinds than their minimum consecutive nights) from the
	// fairness objective, per spec §9's open question. Such staff are
	// exempt from H22 whether or not this is set.
	ExemptRestrictedFromFairness bool

	// Cancel, if non-nil, is checked once, before the CP-SAT model is
	// built: a closed channel makes Solve return StatusUnknown with
	// Cancelled set and no schedule. It is not polled during the search.
	Cancel <-chan struct{}
}

func (o Options) timeLimit() time.Duration {
	if o.TimeLimit <= 0 {
		return defaultTimeLimit
	}
	return o.TimeLimit
}

func (o Options) validateOptions() validate.Options {
	return validate.Options{
		EnforceMinParticipation:      o.EnforceMinParticipation,
		ExemptRestrictedFromFairness: o.ExemptRestrictedFromFairness,
	}
}

// Result is the engine's output envelope, per spec §6/§7: never an error
// for anything short of an internal inconsistency, always describing what
// happened through these fields instead.
type Result struct {
	Feasible                 bool
	Schedule                 model.Schedule
	Violations               []validate.Violation
	SoftPenaltyBreakdown     map[string]float64
	SolverStatus             Status
	Cancelled                bool
	ProvenOptimal            bool
	UnsatisfiableConstraints []UnsatisfiableConstraint
	Diagnostics              *CoverageDiagnostics
}

// UnsatisfiableConstraintKind tags the category of an unsatisfiable-core
// entry, per spec §4.5/§7's "Over-constrained"/"Solver-infeasible" rows.
// cpmodel's Go binding doesn't expose assumption-based unsat-core
// extraction the way the C++/Python front ends do, so every tag below is
// inferred from coverage diagnostics computed before the solve rather than
// read off the solver response; Generic is the catch-all for an
// INFEASIBLE result the diagnostics can't attribute to a specific slot or
// staff.
type UnsatisfiableConstraintKind string

const (
	UnsatisfiableCoverage      UnsatisfiableConstraintKind = "coverage"
	UnsatisfiableParticipation UnsatisfiableConstraintKind = "participation"
	UnsatisfiableGeneric       UnsatisfiableConstraintKind = "generic"
)

// UnsatisfiableConstraint names one reason the search could not find a
// feasible schedule.
type UnsatisfiableConstraint struct {
	Kind     UnsatisfiableConstraintKind
	Detail   string
	Dates    []time.Time
	StaffIDs []string
}

// CoverageDiagnostics reports, per slot, how many staff were eligible to
// fill it — the "coverage diagnostics" named in spec §4.5's infeasible
// path.
type CoverageDiagnostics struct {
	// EligibleCount maps a slot to the number of staff who passed the
	// eligibility oracle for it (before hard-rule interactions), so a
	// caller can see "this slot had zero eligible staff" at a glance.
	EligibleCount map[model.Slot]int

	// Starved lists every slot with zero eligible staff.
	Starved []model.Slot
}
