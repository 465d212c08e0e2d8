package validate

import (
	"fmt"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// coverageRule checks H11: every Saturday/Sunday daytime slot has exactly
// one assignment; every night has one or two; N_So-Mo and N_Mo-Di have
// exactly one non-Azubi plus optionally one Azubi.
type coverageRule struct{}

func (coverageRule) Name() string { return "coverage" }

func (coverageRule) Check(ctx *Context) []Violation {
	var violations []Violation

	dateSlotKinds := collectDateKinds(ctx)
	for date, kinds := range dateSlotKinds {
		for kind := range kinds {
			assignments := assignmentsOnKind(ctx, date, kind)

			switch {
			case kind.IsWeekendDaytime():
				if len(assignments) != 1 {
					violations = append(violations, Violation{
						Rule:   "coverage",
						Dates:  []time.Time{date},
						Detail: fmt.Sprintf("%s on %s has %d assignments, want exactly 1", kind, date.Format("2006-01-02"), len(assignments)),
					})
				}
			case kind.IsNight():
				if len(assignments) < 1 || len(assignments) > 2 {
					violations = append(violations, Violation{
						Rule:   "coverage",
						Dates:  []time.Time{date},
						Detail: fmt.Sprintf("night %s on %s has %d assignments, want 1 or 2", kind, date.Format("2006-01-02"), len(assignments)),
					})
				}
				if kind == model.NightSoMo || kind == model.NightMoDi {
					nonAzubi, azubi := splitAzubi(ctx, assignments)
					if nonAzubi != 1 {
						violations = append(violations, Violation{
							Rule:   "coverage",
							Dates:  []time.Time{date},
							Detail: fmt.Sprintf("%s on %s has %d non-Azubi, want exactly 1", kind, date.Format("2006-01-02"), nonAzubi),
						})
					}
					if azubi > 1 {
						violations = append(violations, Violation{
							Rule:   "coverage",
							Dates:  []time.Time{date},
							Detail: fmt.Sprintf("%s on %s has %d Azubi, want at most 1", kind, date.Format("2006-01-02"), azubi),
						})
					}
				}
			}
		}
	}

	return violations
}

func splitAzubi(ctx *Context, assignments []model.Assignment) (nonAzubi, azubi int) {
	for _, a := range assignments {
		s := ctx.StaffByID[a.StaffID]
		if s.Role == model.RoleAzubi {
			azubi++
		} else {
			nonAzubi++
		}
	}
	return
}

func collectDateKinds(ctx *Context) map[time.Time]map[model.Kind]bool {
	out := make(map[time.Time]map[model.Kind]bool)
	for _, slot := range ctx.Slots {
		byKind, ok := out[slot.Date]
		if !ok {
			byKind = make(map[model.Kind]bool)
			out[slot.Date] = byKind
		}
		byKind[slot.Kind] = true
	}
	return out
}
