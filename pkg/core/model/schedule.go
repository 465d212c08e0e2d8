package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Schedule is the full set of assignments for a quarter, per spec §3.
type Schedule struct {
	ID           uuid.UUID
	QuarterStart time.Time
	Assignments  []Assignment
}

// Rows returns the assignments ordered by (date ascending, then kind
// ordering), the row order required by spec §6's export shape.
func (s Schedule) Rows() []Assignment {
	rows := make([]Assignment, len(s.Assignments))
	copy(rows, s.Assignments)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Slot.Less(rows[j].Slot) })
	return rows
}

// BySlot builds the redundant date->slot->staff map described in spec §6's
// export shape.
func (s Schedule) BySlot() map[time.Time]map[Kind][]string {
	out := make(map[time.Time]map[Kind][]string)
	for _, a := range s.Assignments {
		byKind, ok := out[a.Slot.Date]
		if !ok {
			byKind = make(map[Kind][]string)
			out[a.Slot.Date] = byKind
		}
		byKind[a.Slot.Kind] = append(byKind[a.Slot.Kind], a.StaffID)
	}
	return out
}

// ForStaff returns the assignments belonging to a single staff member,
// ordered by date.
func (s Schedule) ForStaff(staffID string) []Assignment {
	var out []Assignment
	for _, a := range s.Assignments {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Less(out[j].Slot) })
	return out
}

// AssignmentDelta describes one changed, added, or removed assignment
// between two schedules for the same quarter (SPEC_FULL §4's schedule
// diffing supplement).
type AssignmentDelta struct {
	Slot    Slot
	Before  string // staff id previously assigned, empty if added
	After   string // staff id now assigned, empty if removed
	Changed bool
}

// Diff reports per-slot staffing changes between two schedules. Slots with
// identical occupancy in both schedules are omitted. Paired-night slots
// with more than one occupant are compared as sets; a delta is only
// reported if the occupant set differs.
func Diff(a, b Schedule) []AssignmentDelta {
	before := bySlotSet(a)
	after := bySlotSet(b)

	slots := make(map[Slot]bool)
	for slot := range before {
		slots[slot] = true
	}
	for slot := range after {
		slots[slot] = true
	}

	var deltas []AssignmentDelta
	for slot := range slots {
		bSet := before[slot]
		aSet := after[slot]
		if sameSet(bSet, aSet) {
			continue
		}
		deltas = append(deltas, AssignmentDelta{
			Slot:    slot,
			Before:  joinIDs(bSet),
			After:   joinIDs(aSet),
			Changed: true,
		})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Slot.Less(deltas[j].Slot) })
	return deltas
}

func bySlotSet(s Schedule) map[Slot][]string {
	out := make(map[Slot][]string)
	for _, a := range s.Assignments {
		out[a.Slot] = append(out[a.Slot], a.StaffID)
	}
	for slot := range out {
		sort.Strings(out[slot])
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	out := ids[0]
	for _, id := range ids[1:] {
		out += "," + id
	}
	return out
}
