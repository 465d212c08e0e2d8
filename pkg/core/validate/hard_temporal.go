package validate

import (
	"fmt"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// minConsecutiveRule checks H7: for any non-Azubi staff who starts a night
// block, the block length must be >= the staff's minimum consecutive
// (default 2, overridable).
type minConsecutiveRule struct{}

func (minConsecutiveRule) Name() string { return "min_consecutive" }

func (minConsecutiveRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for _, s := range ctx.Staff {
		if s.Role == model.RoleAzubi {
			continue
		}
		min := s.EffectiveMinConsecutive()
		for _, b := range blocksFromDates(nightDates(ctx, s.ID)) {
			if b.Len() < min {
				violations = append(violations, Violation{
					Rule:     "min_consec_violation",
					StaffIDs: []string{s.ID},
					Dates:    []time.Time{b.Start, b.End},
					Detail:   fmt.Sprintf("%s: block starting %s has length %d < minimum %d", s.ID, b.Start.Format("2006-01-02"), b.Len(), min),
				})
			}
		}
	}
	return violations
}

// blockSpacingRule checks H8: no two blocks (of any kind) start within any
// rolling 14-day window for the same staff.
type blockSpacingRule struct{}

func (blockSpacingRule) Name() string { return "block_spacing" }

const blockSpacingWindowDays = 14

func (blockSpacingRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for _, s := range ctx.Staff {
		blocks := blocksFromDates(assignedDates(ctx, s.ID))
		for i := 0; i < len(blocks); i++ {
			for j := i + 1; j < len(blocks); j++ {
				gap := int(blocks[j].Start.Sub(blocks[i].Start).Hours() / 24)
				if gap < blockSpacingWindowDays {
					violations = append(violations, Violation{
						Rule:     "block_spacing_violation",
						StaffIDs: []string{s.ID},
						Dates:    []time.Time{blocks[i].Start, blocks[j].Start},
						Detail:   fmt.Sprintf("%s: blocks starting %s and %s are only %d days apart, want >= %d", s.ID, blocks[i].Start.Format("2006-01-02"), blocks[j].Start.Format("2006-01-02"), gap, blockSpacingWindowDays),
					})
				}
			}
		}
	}
	return violations
}

// restAfterNightRule checks H9: if staff works a night starting at d, they
// must not be assigned any other slot on d or d+1.
type restAfterNightRule struct{}

func (restAfterNightRule) Name() string { return "rest_after_night" }

func (restAfterNightRule) Check(ctx *Context) []Violation {
	var violations []Violation
	for _, s := range ctx.Staff {
		nights := nightDates(ctx, s.ID)
		assigned := make(map[time.Time][]model.Kind)
		for _, a := range ctx.Schedule.Assignments {
			if a.StaffID == s.ID {
				assigned[a.Slot.Date] = append(assigned[a.Slot.Date], a.Slot.Kind)
			}
		}
		for _, d := range nights {
			nightKind := model.NightKindForWeekday(d.Weekday())
			for _, kind := range assigned[d] {
				if kind != nightKind {
					violations = append(violations, Violation{
						Rule:     "rest_after_night",
						StaffIDs: []string{s.ID},
						Dates:    []time.Time{d},
						Detail:   fmt.Sprintf("%s has another slot (%s) on the same date as a night starting %s", s.ID, kind, d.Format("2006-01-02")),
					})
				}
			}
			next := d.AddDate(0, 0, 1)
			for _, kind := range assigned[next] {
				violations = append(violations, Violation{
					Rule:     "rest_after_night",
					StaffIDs: []string{s.ID},
					Dates:    []time.Time{d, next},
					Detail:   fmt.Sprintf("%s assigned %s on %s, the day after a night starting %s", s.ID, kind, next.Format("2006-01-02"), d.Format("2006-01-02")),
				})
			}
		}
	}
	return violations
}

// weekendIsolationRule checks H15: a Saturday/Sunday daytime slot must not
// be calendar-adjacent to any other slot for the same staff.
type weekendIsolationRule struct{}

func (weekendIsolationRule) Name() string { return "weekend_isolation" }

func (weekendIsolationRule) Check(ctx *Context) []Violation {
	var violations []Violation
	byStaffDate := make(map[string]map[time.Time]bool)
	for _, a := range ctx.Schedule.Assignments {
		if byStaffDate[a.StaffID] == nil {
			byStaffDate[a.StaffID] = make(map[time.Time]bool)
		}
		byStaffDate[a.StaffID][a.Slot.Date] = true
	}

	for _, a := range ctx.Schedule.Assignments {
		if !a.Slot.Kind.IsWeekendDaytime() {
			continue
		}
		dates := byStaffDate[a.StaffID]
		prev := a.Slot.Date.AddDate(0, 0, -1)
		next := a.Slot.Date.AddDate(0, 0, 1)
		if dates[prev] {
			violations = append(violations, Violation{
				Rule:     "weekend_isolation",
				StaffIDs: []string{a.StaffID},
				Dates:    []time.Time{prev, a.Slot.Date},
				Detail:   fmt.Sprintf("%s has a slot on %s, the day before weekend slot %s on %s", a.StaffID, prev.Format("2006-01-02"), a.Slot.Kind, a.Slot.Date.Format("2006-01-02")),
			})
		}
		if dates[next] {
			violations = append(violations, Violation{
				Rule:     "weekend_isolation",
				StaffIDs: []string{a.StaffID},
				Dates:    []time.Time{a.Slot.Date, next},
				Detail:   fmt.Sprintf("%s has a slot on %s, the day after weekend slot %s on %s", a.StaffID, next.Format("2006-01-02"), a.Slot.Kind, a.Slot.Date.Format("2006-01-02")),
			})
		}
	}
	return violations
}

// participationRule checks H21/H22, applied only when Options.
// EnforceMinParticipation is set: every weekend-eligible TFA/Azubi works
// >=1 weekend slot; every night-eligible staff works >=1 night. Staff whose
// available-night-kind count is smaller than their minimum-consecutive are
// exempt from H22.
type participationRule struct{}

func (participationRule) Name() string { return "participation" }

func (participationRule) Check(ctx *Context) []Violation {
	if !ctx.Options.EnforceMinParticipation {
		return nil
	}

	weekendCount := make(map[string]int)
	nightCount := make(map[string]int)
	availableNightKinds := make(map[string]int)

	for _, a := range ctx.Schedule.Assignments {
		if a.Slot.Kind.IsWeekendDaytime() {
			weekendCount[a.StaffID]++
		}
		if a.Slot.Kind.IsNight() {
			nightCount[a.StaffID]++
		}
	}

	for _, s := range ctx.Staff {
		for _, k := range model.NightKinds {
			if staffCanEverWork(ctx, s, k) {
				availableNightKinds[s.ID]++
			}
		}
	}

	var violations []Violation
	for _, s := range ctx.Staff {
		if (s.Role == model.RoleTFA || s.Role == model.RoleAzubi) && weekendEligible(ctx, s) {
			if weekendCount[s.ID] == 0 {
				violations = append(violations, Violation{
					Rule:     "min_participation_weekend",
					StaffIDs: []string{s.ID},
					Detail:   fmt.Sprintf("%s has no weekend assignment this quarter", s.ID),
				})
			}
		}
		if s.NDPossible {
			if availableNightKinds[s.ID] < s.EffectiveMinConsecutive() {
				continue // exempt: too restricted to ever form a valid block
			}
			if nightCount[s.ID] == 0 {
				violations = append(violations, Violation{
					Rule:     "min_participation_night",
					StaffIDs: []string{s.ID},
					Detail:   fmt.Sprintf("%s has no night assignment this quarter", s.ID),
				})
			}
		}
	}
	return violations
}

func weekendEligible(ctx *Context, s model.Staff) bool {
	kinds := append(append([]model.Kind{}, model.SaturdayKinds...), model.SundayKinds...)
	for _, k := range kinds {
		for _, slot := range ctx.Slots {
			if slot.Kind == k && staffCanEverWork(ctx, s, k) {
				return true
			}
		}
	}
	return false
}

func staffCanEverWork(ctx *Context, s model.Staff, k model.Kind) bool {
	for _, slot := range ctx.Slots {
		if slot.Kind != k {
			continue
		}
		if ctx.Vacations.On(s.ID, slot.Date) {
			continue
		}
		if k.IsNight() && s.ForbidsNightStart(model.WeekdayOrdinal(slot.Date.Weekday())) {
			continue
		}
		return true
	}
	return false
}
