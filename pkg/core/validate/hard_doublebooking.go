package validate

import (
	"fmt"
	"time"
)

// doubleBookingRule checks H13: no staff appears in two slots on the same
// calendar date.
type doubleBookingRule struct{}

func (doubleBookingRule) Name() string { return "double_booking" }

func (doubleBookingRule) Check(ctx *Context) []Violation {
	type key struct {
		staffID string
		date    time.Time
	}
	counts := make(map[key]int)
	for _, a := range ctx.Schedule.Assignments {
		counts[key{a.StaffID, a.Slot.Date}]++
	}

	var violations []Violation
	for k, n := range counts {
		if n > 1 {
			violations = append(violations, Violation{
				Rule:     "double_booking",
				StaffIDs: []string{k.staffID},
				Dates:    []time.Time{k.date},
				Detail:   fmt.Sprintf("%s has %d slots on %s, want at most 1", k.staffID, n, k.date.Format("2006-01-02")),
			})
		}
	}
	return violations
}
