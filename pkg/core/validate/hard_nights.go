package validate

import (
	"fmt"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// azubiPairingRule checks H3/H4: an Azubi on any night requires at least
// one non-Azubi on that same night; two Azubis can never be paired
// together.
type azubiPairingRule struct{}

func (azubiPairingRule) Name() string { return "azubi_pairing" }

func (azubiPairingRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for date, byKind := range nightAssignmentsByDateKind(ctx) {
		for kind, assignments := range byKind {
			nonAzubi, azubiIDs := 0, []string{}
			for _, a := range assignments {
				s := ctx.StaffByID[a.StaffID]
				if s.Role == model.RoleAzubi {
					azubiIDs = append(azubiIDs, a.StaffID)
				} else {
					nonAzubi++
				}
			}
			if len(azubiIDs) > 0 && nonAzubi == 0 {
				violations = append(violations, Violation{
					Rule:     "azubi_needs_pairing",
					StaffIDs: azubiIDs,
					Dates:    []time.Time{date},
					Detail:   fmt.Sprintf("Azubi on %s (%s) has no non-Azubi pair", kind, date.Format("2006-01-02")),
				})
			}
			if len(azubiIDs) > 1 {
				violations = append(violations, Violation{
					Rule:     "azubi_pairing",
					StaffIDs: azubiIDs,
					Dates:    []time.Time{date},
					Detail:   fmt.Sprintf("two Azubis paired on %s (%s)", kind, date.Format("2006-01-02")),
				})
			}
		}
	}
	return violations
}

// loneWorkerRule checks H5/H6: nd_alone=false staff on a regular night
// require the night to be paired; nd_alone=true staff on a regular night
// require the night to be solo. N_So-Mo and N_Mo-Di are exempt (the
// on-site vet obviates the rule there).
type loneWorkerRule struct{}

func (loneWorkerRule) Name() string { return "lone_worker" }

func (loneWorkerRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for date, byKind := range nightAssignmentsByDateKind(ctx) {
		for kind, assignments := range byKind {
			if !kind.IsRegularNight() {
				continue
			}
			for _, a := range assignments {
				s := ctx.StaffByID[a.StaffID]
				switch {
				case !s.NDAlone && len(assignments) != 2:
					violations = append(violations, Violation{
						Rule:     "requires_pairing",
						StaffIDs: []string{a.StaffID},
						Dates:    []time.Time{date},
						Detail:   fmt.Sprintf("%s requires a paired night but %s on %s has %d staff", a.StaffID, kind, date.Format("2006-01-02"), len(assignments)),
					})
				case s.NDAlone && len(assignments) != 1:
					violations = append(violations, Violation{
						Rule:     "requires_solo",
						StaffIDs: []string{a.StaffID},
						Dates:    []time.Time{date},
						Detail:   fmt.Sprintf("%s requires a solo night but %s on %s has %d staff", a.StaffID, kind, date.Format("2006-01-02"), len(assignments)),
					})
				}
			}
		}
	}
	return violations
}

// departmentRule checks H17/H18: among staff with department in
// {station, op}, at most one per night from each department, and no two
// from the same department on consecutive calendar nights.
type departmentRule struct{}

func (departmentRule) Name() string { return "department" }

func (departmentRule) Check(ctx *Context) []Violation {
	var violations []Violation

	byDate := nightStaffByDate(ctx)
	dates := sortedTimeKeys(byDate)

	for _, date := range dates {
		counts := departmentCounts(ctx, byDate[date])
		for _, dept := range []model.Department{model.DepartmentStation, model.DepartmentOp} {
			if counts[dept] > 1 {
				violations = append(violations, Violation{
					Rule:   "department_same_night",
					Dates:  []time.Time{date},
					Detail: fmt.Sprintf("%d staff from department %s on night %s, want at most 1", counts[dept], dept, date.Format("2006-01-02")),
				})
			}
		}
	}

	for i := 0; i+1 < len(dates); i++ {
		d1, d2 := dates[i], dates[i+1]
		if !d2.Equal(d1.AddDate(0, 0, 1)) {
			continue
		}
		c1 := departmentCounts(ctx, byDate[d1])
		c2 := departmentCounts(ctx, byDate[d2])
		for _, dept := range []model.Department{model.DepartmentStation, model.DepartmentOp} {
			if c1[dept]+c2[dept] > 1 && c1[dept] > 0 && c2[dept] > 0 {
				violations = append(violations, Violation{
					Rule:   "department_consecutive_nights",
					Dates:  []time.Time{d1, d2},
					Detail: fmt.Sprintf("department %s staffed on consecutive nights %s and %s", dept, d1.Format("2006-01-02"), d2.Format("2006-01-02")),
				})
			}
		}
	}

	return violations
}

func departmentCounts(ctx *Context, staffIDs []string) map[model.Department]int {
	counts := make(map[model.Department]int)
	for _, id := range staffIDs {
		s := ctx.StaffByID[id]
		if s.Department == model.DepartmentStation || s.Department == model.DepartmentOp {
			counts[s.Department]++
		}
	}
	return counts
}

func nightStaffByDate(ctx *Context) map[time.Time][]string {
	out := make(map[time.Time][]string)
	for _, a := range ctx.Schedule.Assignments {
		if a.Slot.Kind.IsNight() {
			out[a.Slot.Date] = append(out[a.Slot.Date], a.StaffID)
		}
	}
	return out
}

func nightAssignmentsByDateKind(ctx *Context) map[time.Time]map[model.Kind][]model.Assignment {
	out := make(map[time.Time]map[model.Kind][]model.Assignment)
	for _, a := range ctx.Schedule.Assignments {
		if !a.Slot.Kind.IsNight() {
			continue
		}
		byKind, ok := out[a.Slot.Date]
		if !ok {
			byKind = make(map[model.Kind][]model.Assignment)
			out[a.Slot.Date] = byKind
		}
		byKind[a.Slot.Kind] = append(byKind[a.Slot.Kind], a)
	}
	return out
}

func sortedTimeKeys(m map[time.Time][]string) []time.Time {
	out := make([]time.Time, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Before(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
