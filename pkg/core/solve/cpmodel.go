package solve

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/vetclinic/oncall-roster/pkg/core/calendar"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// cpModel wraps a real cpmodel.CpModelBuilder with the lookup tables the
// constraint encodings in spec §4.4 need. Every hard rule in
// pkg/core/validate gets an exact decision-variable/constraint encoding
// here rather than being re-checked after a guess; validate.Validate still
// runs once over the extracted solution as the confirmation pass spec §4.5
// describes, not as the mechanism that enforces feasibility.
type cpModel struct {
	cp     *cpmodel.CpModelBuilder
	tables *modelTables
	byID   map[string]model.Staff

	vars map[varKey]cpmodel.BoolVar

	// daySlotsByStaffDate indexes the Saturday/Sunday daytime variables for
	// a staff member by date (calendar.Generate only emits these on
	// Saturdays/Sundays, so the date key is always a weekend date here).
	daySlotsByStaffDate map[string]map[time.Time][]cpmodel.BoolVar
	// nightVarByStaffDate indexes the single night variable for a staff
	// member on a date (every date has exactly one night kind).
	nightVarByStaffDate map[string]map[time.Time]cpmodel.BoolVar

	occVar map[occKey]cpmodel.BoolVar
}

type varKey struct {
	staffID string
	slot    model.Slot
}

type occKey struct {
	staffID string
	date    time.Time
}

// wterm is a signed-coefficient term in a linear expression. Building
// expressions as a slice of terms (rather than composing *LinearExpr
// values directly) lets every constraint below be assembled in one place
// from buildExpr, which is the only function that touches the builder's
// expression API.
type wterm struct {
	v     cpmodel.BoolVar
	coeff int64
}

func buildExpr(terms []wterm) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	for _, t := range terms {
		if t.coeff == 1 {
			e.Add(t.v)
		} else {
			e.AddTerm(t.v, t.coeff)
		}
	}
	return e
}

func varExpr(v cpmodel.BoolVar) *cpmodel.LinearExpr {
	return buildExpr([]wterm{{v, 1}})
}

func sumExpr(vars []cpmodel.BoolVar) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	for _, v := range vars {
		e.Add(v)
	}
	return e
}

// intVarExpr wraps a single IntVar as a *LinearExpr, for the handful of
// places (the fairness objective's load/max/min variables) that need an
// integer-domain variable rather than a BoolVar.
func intVarExpr(v cpmodel.IntVar) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	e.Add(v)
	return e
}

// newCPModel declares one BoolVar per eligible (staff, slot) pair found by
// buildTables — impossible combinations never get a variable, exactly as
// spec §4.4 asks ("variables for impossible combinations are omitted
// entirely").
func newCPModel(tables *modelTables, staff []model.Staff) *cpModel {
	cm := &cpModel{
		cp:                  cpmodel.NewCpModelBuilder(),
		tables:              tables,
		byID:                model.ByID(staff),
		vars:                make(map[varKey]cpmodel.BoolVar),
		daySlotsByStaffDate: make(map[string]map[time.Time][]cpmodel.BoolVar),
		nightVarByStaffDate: make(map[string]map[time.Time]cpmodel.BoolVar),
		occVar:              make(map[occKey]cpmodel.BoolVar),
	}

	for _, slot := range tables.slots {
		ids := append([]string{}, tables.eligibleStaff[slot]...)
		sort.Strings(ids)
		for _, id := range ids {
			name := fmt.Sprintf("x_%s_%s_%s", id, slot.Kind, slot.Date.Format("20060102"))
			v := cm.cp.NewBoolVar().WithName(name)
			cm.vars[varKey{id, slot}] = v

			if slot.Kind.IsNight() {
				if cm.nightVarByStaffDate[id] == nil {
					cm.nightVarByStaffDate[id] = make(map[time.Time]cpmodel.BoolVar)
				}
				cm.nightVarByStaffDate[id][slot.Date] = v
			} else {
				if cm.daySlotsByStaffDate[id] == nil {
					cm.daySlotsByStaffDate[id] = make(map[time.Time][]cpmodel.BoolVar)
				}
				cm.daySlotsByStaffDate[id][slot.Date] = append(cm.daySlotsByStaffDate[id][slot.Date], v)
			}
		}
	}

	return cm
}

func (cm *cpModel) slotVars(slot model.Slot) []cpmodel.BoolVar {
	ids := cm.tables.eligibleStaff[slot]
	vars := make([]cpmodel.BoolVar, 0, len(ids))
	for _, id := range ids {
		vars = append(vars, cm.vars[varKey{id, slot}])
	}
	return vars
}

// addCoverageConstraints encodes H11 (spec §4.4 "Coverage"): exactly one
// assignment on every weekend daytime slot, one or two on every night, and
// exactly one non-Azubi (plus at most one Azubi) on N_So-Mo/N_Mo-Di.
func (cm *cpModel) addCoverageConstraints() {
	for _, slot := range cm.tables.slots {
		vars := cm.slotVars(slot)
		if len(vars) == 0 {
			continue // starved slots are caught before the model is built
		}

		switch {
		case slot.Kind.IsWeekendDaytime():
			cm.cp.AddExactlyOne(vars...)

		case slot.Kind.IsNight():
			sum := sumExpr(vars)
			cm.cp.AddLessOrEqual(cpmodel.NewConstant(1), sum)
			cm.cp.AddLessOrEqual(sum, cpmodel.NewConstant(2))

			if slot.Kind == model.NightSoMo || slot.Kind == model.NightMoDi {
				var nonAzubi []cpmodel.BoolVar
				for _, id := range cm.tables.eligibleStaff[slot] {
					if cm.byID[id].Role != model.RoleAzubi {
						nonAzubi = append(nonAzubi, cm.vars[varKey{id, slot}])
					}
				}
				if len(nonAzubi) > 0 {
					cm.cp.AddExactlyOne(nonAzubi...)
				} else {
					// no non-Azubi is ever eligible here: the slot can
					// never satisfy coverage, so the model is infeasible.
					cm.cp.AddLessOrEqual(cpmodel.NewConstant(1), cpmodel.NewConstant(0))
				}
			}
		}
	}
}

// addAtMostOnePerDay encodes H13 (double booking) and spec §4.4's
// "at most one slot per date per staff": every staff member has at most
// one assignment — of any kind, day or night — on any single calendar
// date.
func (cm *cpModel) addAtMostOnePerDay() {
	for id, byDate := range cm.daySlotsByStaffDate {
		for date, vars := range byDate {
			all := append([]cpmodel.BoolVar{}, vars...)
			if nv, ok := cm.nightVarByStaffDate[id][date]; ok {
				all = append(all, nv)
			}
			if len(all) > 1 {
				cm.cp.AddAtMostOne(all...)
			}
		}
	}
}

// addAzubiPairingConstraints encodes H3/H4 (spec §4.4 "Azubi pairing") for
// every night kind: an Azubi assignment requires at least one non-Azubi on
// the same slot, and no two Azubis ever pair together.
func (cm *cpModel) addAzubiPairingConstraints() {
	for _, slot := range cm.tables.slots {
		if !slot.Kind.IsNight() {
			continue
		}
		var azubiVars, nonAzubiVars []cpmodel.BoolVar
		for _, id := range cm.tables.eligibleStaff[slot] {
			v := cm.vars[varKey{id, slot}]
			if cm.byID[id].Role == model.RoleAzubi {
				azubiVars = append(azubiVars, v)
			} else {
				nonAzubiVars = append(nonAzubiVars, v)
			}
		}
		if len(azubiVars) > 1 {
			cm.cp.AddAtMostOne(azubiVars...)
		}
		if len(azubiVars) > 0 {
			nonAzubiSum := sumExpr(nonAzubiVars)
			for _, av := range azubiVars {
				cm.cp.AddLessOrEqual(varExpr(av), nonAzubiSum)
			}
		}
	}
}

// addLoneWorkerConstraints encodes H5/H6 (spec §4.4 "nd_alone=true/false")
// on every regular night (N_So-Mo/N_Mo-Di are exempt, per
// validate.loneWorkerRule): an nd_alone staff member's assignment forces
// everyone else off that slot; anyone else's assignment requires at least
// one more eligible candidate also present.
func (cm *cpModel) addLoneWorkerConstraints() {
	for _, slot := range cm.tables.slots {
		if !slot.Kind.IsRegularNight() {
			continue
		}
		ids := cm.tables.eligibleStaff[slot]
		for _, id := range ids {
			s := cm.byID[id]
			v := cm.vars[varKey{id, slot}]
			var others []cpmodel.BoolVar
			for _, other := range ids {
				if other != id {
					others = append(others, cm.vars[varKey{other, slot}])
				}
			}
			if s.NDAlone {
				for _, ov := range others {
					cm.cp.AddAtMostOne(v, ov)
				}
				continue
			}
			if len(others) == 0 {
				cm.cp.AddLessOrEqual(varExpr(v), cpmodel.NewConstant(0))
				continue
			}
			cm.cp.AddLessOrEqual(varExpr(v), sumExpr(others))
		}
	}
}

// addRestAfterNightConstraints encodes H9: a night starting at d forbids
// any other slot on d+1. The same-date half of the rule (no slot besides
// the night itself on d) is already covered by addAtMostOnePerDay.
func (cm *cpModel) addRestAfterNightConstraints() {
	for id, nightsByDate := range cm.nightVarByStaffDate {
		for date, nv := range nightsByDate {
			next := date.AddDate(0, 0, 1)
			for _, dv := range cm.daySlotsByStaffDate[id][next] {
				cm.cp.AddAtMostOne(nv, dv)
			}
			if nnv, ok := cm.nightVarByStaffDate[id][next]; ok {
				cm.cp.AddAtMostOne(nv, nnv)
			}
		}
	}
}

// addWeekendIsolationConstraints encodes H15: a weekend daytime slot must
// not be calendar-adjacent to any other slot for the same staff.
func (cm *cpModel) addWeekendIsolationConstraints() {
	for id, dayMap := range cm.daySlotsByStaffDate {
		for date, vars := range dayMap {
			prev := date.AddDate(0, 0, -1)
			next := date.AddDate(0, 0, 1)
			var neighbours []cpmodel.BoolVar
			neighbours = append(neighbours, cm.daySlotsByStaffDate[id][prev]...)
			neighbours = append(neighbours, cm.daySlotsByStaffDate[id][next]...)
			if nv, ok := cm.nightVarByStaffDate[id][prev]; ok {
				neighbours = append(neighbours, nv)
			}
			if nv, ok := cm.nightVarByStaffDate[id][next]; ok {
				neighbours = append(neighbours, nv)
			}
			for _, v := range vars {
				for _, nb := range neighbours {
					cm.cp.AddAtMostOne(v, nb)
				}
			}
		}
	}
}

// addDepartmentConstraints encodes H17/H18: at most one of {station, op}
// per night, and none of the same department on two consecutive nights.
func (cm *cpModel) addDepartmentConstraints() {
	for _, dept := range []model.Department{model.DepartmentStation, model.DepartmentOp} {
		byDate := make(map[time.Time][]cpmodel.BoolVar)
		for id, dateMap := range cm.nightVarByStaffDate {
			if cm.byID[id].Department != dept {
				continue
			}
			for date, v := range dateMap {
				byDate[date] = append(byDate[date], v)
			}
		}
		dates := make([]time.Time, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		for _, d := range dates {
			if len(byDate[d]) > 1 {
				cm.cp.AddAtMostOne(byDate[d]...)
			}
		}
		for i := 0; i+1 < len(dates); i++ {
			d1, d2 := dates[i], dates[i+1]
			if !d2.Equal(d1.AddDate(0, 0, 1)) {
				continue
			}
			combined := append(append([]cpmodel.BoolVar{}, byDate[d1]...), byDate[d2]...)
			if len(combined) > 1 {
				cm.cp.AddAtMostOne(combined...)
			}
		}
	}
}

// addMinConsecutiveConstraints encodes H7 (spec §4.4's min-consecutive
// block via an implicit start indicator): for non-Azubi staff, whenever a
// night block starts at d (x[d]=1, x[d-1]=0 or absent), every one of the
// following min-1 night dates must also be assigned. x[d]-x[d-1] is an
// affine value in {-1,0,1}; requiring x[d+i] >= x[d]-x[d-1] forces x[d+i]=1
// exactly when d is a genuine block start, and is trivially satisfied
// otherwise — a pure linear encoding with no reification needed.
func (cm *cpModel) addMinConsecutiveConstraints(staff []model.Staff) {
	quarterEnd := cm.tables.quarterStart.AddDate(0, 0, cm.tables.quarterDays-1)

	for _, s := range staff {
		if s.Role == model.RoleAzubi {
			continue
		}
		min := s.EffectiveMinConsecutive()
		if min <= 1 {
			continue
		}
		dateMap := cm.nightVarByStaffDate[s.ID]
		if dateMap == nil {
			continue
		}
		for date, v := range dateMap {
			start := []wterm{{v, 1}}
			if prev, ok := dateMap[date.AddDate(0, 0, -1)]; ok {
				start = append(start, wterm{prev, -1})
			}

			for i := 1; i < min; i++ {
				next := date.AddDate(0, 0, i)
				if next.After(quarterEnd) {
					// the block would have to run off the edge of the
					// quarter: forbid starting it here at all.
					cm.cp.AddLessOrEqual(buildExpr(start), cpmodel.NewConstant(0))
					break
				}
				nv, ok := dateMap[next]
				if !ok {
					cm.cp.AddLessOrEqual(buildExpr(start), cpmodel.NewConstant(0))
					break
				}
				terms := append(append([]wterm{}, start...), wterm{nv, -1})
				cm.cp.AddLessOrEqual(buildExpr(terms), cpmodel.NewConstant(0))
			}
		}
	}
}

// occupancyVar returns (and memoises) a BoolVar equal to the logical OR of
// every slot variable staffID holds on date (day kinds plus the night
// kind), used by the block-spacing encoding below. A staff member with no
// eligible variable at all on date gets no var and is treated as never
// occupied.
func (cm *cpModel) occupancyVar(id string, date time.Time) (cpmodel.BoolVar, bool) {
	key := occKey{id, date}
	if v, ok := cm.occVar[key]; ok {
		return v, true
	}

	var parts []cpmodel.BoolVar
	parts = append(parts, cm.daySlotsByStaffDate[id][date]...)
	if nv, ok := cm.nightVarByStaffDate[id][date]; ok {
		parts = append(parts, nv)
	}
	if len(parts) == 0 {
		return cpmodel.BoolVar{}, false
	}

	occ := cm.cp.NewBoolVar().WithName(fmt.Sprintf("occ_%s_%s", id, date.Format("20060102")))
	for _, p := range parts {
		// p <= occ
		cm.cp.AddLessOrEqual(buildExpr([]wterm{{p, 1}, {occ, -1}}), cpmodel.NewConstant(0))
	}
	// occ <= sum(parts)
	sumTerms := []wterm{{occ, 1}}
	for _, p := range parts {
		sumTerms = append(sumTerms, wterm{p, -1})
	}
	cm.cp.AddLessOrEqual(buildExpr(sumTerms), cpmodel.NewConstant(0))

	cm.occVar[key] = occ
	return occ, true
}

// addBlockSpacingConstraints encodes H8 (spec §4.4's 14-day block-spacing
// indicator): bs[s,d] = occ[s,d] AND NOT occ[s,d-1], linked by the
// standard three-inequality AND linearization; then no rolling 14-day
// window may contain more than one block start.
func (cm *cpModel) addBlockSpacingConstraints(staff []model.Staff) {
	dates := calendar.Dates(cm.tables.quarterStart)

	for _, s := range staff {
		bsByDate := make(map[time.Time]cpmodel.BoolVar)

		for _, date := range dates {
			occ, ok := cm.occupancyVar(s.ID, date)
			if !ok {
				continue
			}
			prevOcc, hasPrev := cm.occupancyVar(s.ID, date.AddDate(0, 0, -1))

			bs := cm.cp.NewBoolVar().WithName(fmt.Sprintf("bs_%s_%s", s.ID, date.Format("20060102")))
			// bs <= occ
			cm.cp.AddLessOrEqual(buildExpr([]wterm{{bs, 1}, {occ, -1}}), cpmodel.NewConstant(0))
			if hasPrev {
				// bs + prevOcc <= 1  (bs <= 1 - prevOcc)
				cm.cp.AddLessOrEqual(buildExpr([]wterm{{bs, 1}, {prevOcc, 1}}), cpmodel.NewConstant(1))
				// occ - prevOcc - bs <= 0  (bs >= occ - prevOcc)
				cm.cp.AddLessOrEqual(buildExpr([]wterm{{occ, 1}, {prevOcc, -1}, {bs, -1}}), cpmodel.NewConstant(0))
			} else {
				// no variable the day before: any occupancy here is
				// automatically a block start.
				cm.cp.AddLessOrEqual(buildExpr([]wterm{{occ, 1}, {bs, -1}}), cpmodel.NewConstant(0))
			}
			bsByDate[date] = bs
		}

		for _, windowStart := range dates {
			var terms []wterm
			for i := 0; i < blockSpacingWindowDays; i++ {
				d := windowStart.AddDate(0, 0, i)
				if bs, ok := bsByDate[d]; ok {
					terms = append(terms, wterm{bs, 1})
				}
			}
			if len(terms) > 1 {
				cm.cp.AddLessOrEqual(buildExpr(terms), cpmodel.NewConstant(1))
			}
		}
	}
}

// blockSpacingWindowDays mirrors validate.blockSpacingWindowDays (kept as
// a package-level constant here rather than imported, since the two
// packages encode the same rule independently and must agree on it by
// definition, not by coupling).
const blockSpacingWindowDays = 14

// addParticipationConstraints encodes H21/H22 when the caller asks for
// them, so a feasible CP-SAT solution and the post-solve validator
// (running with the same option) never disagree.
func (cm *cpModel) addParticipationConstraints(staff []model.Staff, opts Options) {
	if !opts.EnforceMinParticipation {
		return
	}
	for _, s := range staff {
		if (s.Role == model.RoleTFA || s.Role == model.RoleAzubi) && cm.weekendEligible(s) {
			var terms []wterm
			for _, slot := range cm.tables.eligibleSlots[s.ID] {
				if slot.Kind.IsWeekendDaytime() {
					terms = append(terms, wterm{cm.vars[varKey{s.ID, slot}], 1})
				}
			}
			if len(terms) > 0 {
				cm.cp.AddLessOrEqual(cpmodel.NewConstant(1), buildExpr(terms))
			}
		}
		if s.NDPossible {
			availableKinds := make(map[model.Kind]bool)
			for _, slot := range cm.tables.eligibleSlots[s.ID] {
				if slot.Kind.IsNight() {
					availableKinds[slot.Kind] = true
				}
			}
			if len(availableKinds) < s.EffectiveMinConsecutive() {
				continue // exempt, mirrors validate.participationRule
			}
			var terms []wterm
			for _, slot := range cm.tables.eligibleSlots[s.ID] {
				if slot.Kind.IsNight() {
					terms = append(terms, wterm{cm.vars[varKey{s.ID, slot}], 1})
				}
			}
			if len(terms) > 0 {
				cm.cp.AddLessOrEqual(cpmodel.NewConstant(1), buildExpr(terms))
			}
		}
	}
}

func (cm *cpModel) weekendEligible(s model.Staff) bool {
	for _, slot := range cm.tables.eligibleSlots[s.ID] {
		if slot.Kind.IsWeekendDaytime() {
			return true
		}
	}
	return false
}

// fairnessScale linearizes the per-hour load objective: each weekend or
// night assignment contributes fairnessScale/hours[s] "load units", a
// large enough constant that the 1/hours rounding error introduced by
// integer division stays negligible relative to a quarter's worth of
// assignments (spec §4.4's own framing: "SCALE is a fixed integer to keep
// the model linear-integer").
const fairnessScale = 2_000_000

// loadUpperBound bounds the per-staff load IntVar; generous enough that no
// real quarter's assignment count can reach it.
const loadUpperBound = 1_000_000_000

// addFairnessObjective encodes the spec §4.4 fairness objective: minimise
// the sum, over each role group, of (max per-hour load - min per-hour
// load) among that group's members. A paired night assignment counts for
// half load relative to a solo one, except for Azubi, whose nights always
// count in full, mirroring the solo/paired split in validate's own
// fairness accounting.
func (cm *cpModel) addFairnessObjective(staff []model.Staff, opts Options) {
	pairedNight := make(map[time.Time]cpmodel.BoolVar)
	for _, slot := range cm.tables.slots {
		if !slot.Kind.IsNight() {
			continue
		}
		vars := cm.slotVars(slot)
		if len(vars) == 0 {
			continue
		}
		pn := cm.cp.NewBoolVar().WithName(fmt.Sprintf("paired_%s", slot.Date.Format("20060102")))
		// pairedNight = occupancy - 1, valid since coverage already forces
		// occupancy into {1,2}: pn <= sum-1 and pn >= sum-1.
		sumTerms := []wterm{{pn, 1}}
		for _, v := range vars {
			sumTerms = append(sumTerms, wterm{v, -1})
		}
		cm.cp.AddLessOrEqual(buildExpr(sumTerms), cpmodel.NewConstant(-1))
		sumTerms2 := []wterm{{pn, -1}}
		for _, v := range vars {
			sumTerms2 = append(sumTerms2, wterm{v, 1})
		}
		cm.cp.AddLessOrEqual(buildExpr(sumTerms2), cpmodel.NewConstant(1))
		pairedNight[slot.Date] = pn
	}

	byGroup := make(map[model.Role][]cpmodel.IntVar)

	for _, s := range staff {
		if opts.ExemptRestrictedFromFairness && cm.restricted(s) {
			continue
		}
		if s.Hours <= 0 {
			continue
		}
		perUnit := int64(fairnessScale / s.Hours)

		terms := []wterm{}
		for _, slot := range cm.tables.eligibleSlots[s.ID] {
			if !slot.Kind.IsWeekendDaytime() {
				continue
			}
			terms = append(terms, wterm{cm.vars[varKey{s.ID, slot}], perUnit})
		}

		for date, nv := range cm.nightVarByStaffDate[s.ID] {
			terms = append(terms, wterm{nv, perUnit})

			pn, ok := pairedNight[date]
			if !ok || s.Role == model.RoleAzubi {
				continue
			}
			// pairedAssignment[s,date] = nv AND pn, linearized exactly
			// (not just upper-bounded) so the solver doesn't need
			// minimization pressure alone to tighten it.
			pa := cm.cp.NewBoolVar().WithName(fmt.Sprintf("paired_assign_%s_%s", s.ID, date.Format("20060102")))
			cm.cp.AddLessOrEqual(buildExpr([]wterm{{pa, 1}, {nv, -1}}), cpmodel.NewConstant(0))
			cm.cp.AddLessOrEqual(buildExpr([]wterm{{pa, 1}, {pn, -1}}), cpmodel.NewConstant(0))
			cm.cp.AddLessOrEqual(buildExpr([]wterm{{pa, -1}, {nv, 1}, {pn, 1}}), cpmodel.NewConstant(1))

			terms = append(terms, wterm{pa, -(perUnit / 2)})
		}

		loadVar := cm.cp.NewIntVar(0, loadUpperBound).WithName(fmt.Sprintf("load_%s", s.ID))
		loadExpr := buildExpr(terms)
		cm.cp.AddLessOrEqual(loadExpr, intVarExpr(loadVar))
		cm.cp.AddLessOrEqual(intVarExpr(loadVar), loadExpr)

		byGroup[s.Role] = append(byGroup[s.Role], loadVar)
	}

	objective := cpmodel.NewLinearExpr()
	for _, vars := range byGroup {
		if len(vars) == 0 {
			continue
		}
		maxVar := cm.cp.NewIntVar(0, loadUpperBound)
		minVar := cm.cp.NewIntVar(0, loadUpperBound)
		for _, v := range vars {
			cm.cp.AddLessOrEqual(intVarExpr(v), intVarExpr(maxVar))
			cm.cp.AddLessOrEqual(intVarExpr(minVar), intVarExpr(v))
		}
		objective.Add(maxVar)
		objective.AddTerm(minVar, -1)
	}
	cm.cp.Minimize(objective)
}

func (cm *cpModel) restricted(s model.Staff) bool {
	availableKinds := make(map[model.Kind]bool)
	for _, slot := range cm.tables.eligibleSlots[s.ID] {
		if slot.Kind.IsNight() {
			availableKinds[slot.Kind] = true
		}
	}
	return s.NDPossible && len(availableKinds) < s.EffectiveMinConsecutive()
}

// extractSchedule reads the solved BoolVar assignment off response and
// builds the resulting model.Schedule; Paired is derived from the final
// occupancy count on each night slot.
func (cm *cpModel) extractSchedule(response *cpmodel.CpSolverResponse, quarterStart time.Time) model.Schedule {
	sched := model.Schedule{ID: newScheduleID(), QuarterStart: quarterStart}

	nightOccupants := make(map[model.Slot]int)
	for _, slot := range cm.tables.slots {
		if !slot.Kind.IsNight() {
			continue
		}
		for _, v := range cm.slotVars(slot) {
			if cpmodel.SolutionBooleanValue(response, v) {
				nightOccupants[slot]++
			}
		}
	}

	for _, slot := range cm.tables.slots {
		for _, id := range cm.tables.eligibleStaff[slot] {
			v := cm.vars[varKey{id, slot}]
			if !cpmodel.SolutionBooleanValue(response, v) {
				continue
			}
			sched.Assignments = append(sched.Assignments, model.Assignment{
				StaffID: id,
				Slot:    slot,
				Paired:  slot.Kind.IsNight() && nightOccupants[slot] == 2,
			})
		}
	}

	return sched
}
