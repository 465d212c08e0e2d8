package validate

import (
	"fmt"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/eligibility"
)

// eligibilityRule checks H1, H2, H10, H16: every assignment must satisfy
// the eligibility oracle.
type eligibilityRule struct{}

func (eligibilityRule) Name() string { return "eligibility" }

func (eligibilityRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for _, a := range ctx.Schedule.Assignments {
		s, ok := ctx.StaffByID[a.StaffID]
		if !ok {
			violations = append(violations, Violation{
				Rule:     "eligibility",
				StaffIDs: []string{a.StaffID},
				Dates:    []time.Time{a.Slot.Date},
				Detail:   "assignment references unknown staff",
			})
			continue
		}
		if !eligibility.MayWork(s, a.Slot.Kind, a.Slot.Date, ctx.Vacations) {
			violations = append(violations, Violation{
				Rule:     "eligibility",
				StaffIDs: []string{a.StaffID},
				Dates:    []time.Time{a.Slot.Date},
				Detail:   fmt.Sprintf("%s is not eligible for %s on %s", a.StaffID, a.Slot.Kind, a.Slot.Date.Format("2006-01-02")),
			})
		}
	}
	return violations
}
