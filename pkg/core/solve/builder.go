package solve

import (
	"sort"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/calendar"
	"github.com/vetclinic/oncall-roster/pkg/core/eligibility"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// modelTables holds every decision variable x[s,d,k] for one solve call
// (spec §4.4), indexed every way the search driver needs to look them up.
// Scoped to a single call and discarded on return, per spec §5's
// resource-lifetime note.
type modelTables struct {
	quarterStart time.Time
	quarterDays  int
	slots        []model.Slot

	// eligibleStaff maps a slot to the staff IDs that passed the
	// eligibility oracle for it, sorted by ID so the search is
	// deterministic given a fixed seed.
	eligibleStaff map[model.Slot][]string

	// eligibleSlots maps a staff ID to the slots they're eligible for.
	eligibleSlots map[string][]model.Slot
}

// buildTables enumerates every eligible (staff, slot) pair for the quarter
// starting at quarterStart: the decision-variable table of spec §4.4.
// Variables for impossible combinations (eligibility oracle returns false,
// or the staff is on vacation) are never built.
func buildTables(staff []model.Staff, vacations model.Vacations, quarterStart time.Time) (*modelTables, error) {
	slots, err := calendar.Generate(quarterStart)
	if err != nil {
		return nil, err
	}

	t := &modelTables{
		quarterStart:  quarterStart,
		quarterDays:   calendar.Days(quarterStart),
		slots:         slots,
		eligibleStaff: make(map[model.Slot][]string, len(slots)),
		eligibleSlots: make(map[string][]model.Slot, len(staff)),
	}

	sortedStaff := make([]model.Staff, len(staff))
	copy(sortedStaff, staff)
	sort.Slice(sortedStaff, func(i, j int) bool { return sortedStaff[i].ID < sortedStaff[j].ID })

	for _, slot := range slots {
		for _, s := range sortedStaff {
			if !eligibility.MayWork(s, slot.Kind, slot.Date, vacations) {
				continue
			}
			t.eligibleStaff[slot] = append(t.eligibleStaff[slot], s.ID)
			t.eligibleSlots[s.ID] = append(t.eligibleSlots[s.ID], slot)
		}
	}

	return t, nil
}

// starvedSlots returns every slot with zero eligible staff, the condition
// spec §4.5 calls "over-constrained" coverage.
func (t *modelTables) starvedSlots() []model.Slot {
	var out []model.Slot
	for _, slot := range t.slots {
		if len(t.eligibleStaff[slot]) == 0 {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// coverageDiagnostics builds the per-slot eligible-staff-count report named
// in spec §4.5's infeasible path.
func (t *modelTables) coverageDiagnostics() *CoverageDiagnostics {
	diag := &CoverageDiagnostics{
		EligibleCount: make(map[model.Slot]int, len(t.slots)),
	}
	for _, slot := range t.slots {
		diag.EligibleCount[slot] = len(t.eligibleStaff[slot])
	}
	diag.Starved = t.starvedSlots()
	return diag
}
