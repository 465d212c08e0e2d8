// Package validate implements the independent schedule validator from
// spec §4.3: an exhaustive, non-short-circuiting check of every hard rule
// plus the soft fairness/consecutive-night penalty breakdown. It exists
// independently of the solver so the two can be tested against each other
// (spec §9, "validator/solver redundancy is load-bearing").
package validate

import (
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/calendar"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// Violation is one hard-rule breach, carrying enough context (rule tag,
// staff, dates) to report or to drive the solver's diagnostics.
type Violation struct {
	Rule     string
	StaffIDs []string
	Dates    []time.Time
	Detail   string
}

// Options controls the validator's optional rules (spec §4.3, H21/H22) and
// the fairness-exemption open question (spec §9).
type Options struct {
	// EnforceMinParticipation applies H21/H22 (every weekend-eligible
	// TFA/Azubi works >=1 weekend slot; every night-eligible staff works
	// >=1 night).
	EnforceMinParticipation bool

	// ExemptRestrictedFromFairness, if true, excludes staff whose
	// available-night-kind count is smaller than their own
	// minimum-consecutive requirement from the fairness objective/penalty.
	// Default false: include everyone (spec §9 open question).
	ExemptRestrictedFromFairness bool
}

// Context bundles the inputs every rule needs.
type Context struct {
	Schedule     model.Schedule
	Staff        []model.Staff
	StaffByID    map[string]model.Staff
	Vacations    model.Vacations
	Slots        []model.Slot
	QuarterStart time.Time
	QuarterDays  int
	Options      Options
}

// rule is one hard or soft check. Hard rules return violations; soft rules
// are scored separately in scorePenalties.
type rule interface {
	Name() string
	Check(ctx *Context) []Violation
}

// hardRules lists every hard rule, H1-H22 from spec §4.3, in the order
// they're documented.
func hardRules() []rule {
	return []rule{
		coverageRule{},
		eligibilityRule{},
		doubleBookingRule{},
		azubiPairingRule{},
		loneWorkerRule{},
		minConsecutiveRule{},
		blockSpacingRule{},
		restAfterNightRule{},
		weekendIsolationRule{},
		departmentRule{},
		participationRule{},
	}
}

// Validate runs every hard rule against schedule (never short-circuiting)
// and computes the soft-penalty breakdown, per spec §4.3. quarterStart must
// satisfy calendar.ValidateQuarterStart; the slot calendar it generates
// feeds the coverage and participation rules.
func Validate(sched model.Schedule, staff []model.Staff, vacations model.Vacations, quarterStart time.Time, opts Options) ([]Violation, map[string]float64, error) {
	slots, err := calendar.Generate(quarterStart)
	if err != nil {
		return nil, nil, err
	}

	ctx := &Context{
		Schedule:     sched,
		Staff:        staff,
		StaffByID:    model.ByID(staff),
		Vacations:    vacations,
		Slots:        slots,
		QuarterStart: quarterStart,
		QuarterDays:  calendar.Days(quarterStart),
		Options:      opts,
	}

	var violations []Violation
	for _, r := range hardRules() {
		violations = append(violations, r.Check(ctx)...)
	}

	penalties := scorePenalties(ctx)

	return violations, penalties, nil
}
