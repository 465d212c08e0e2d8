package validate

import (
	"sort"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// block is a maximal run of calendar-consecutive dates, per the Block
// definition in spec's glossary.
type block struct {
	Start time.Time
	End   time.Time // inclusive
}

// Len returns the number of calendar days in the block.
func (b block) Len() int {
	return int(b.End.Sub(b.Start).Hours()/24) + 1
}

// assignedDates returns the sorted set of dates on which staffID has any
// assignment (daytime or night), used by the H8 block-spacing rule which
// treats every kind uniformly.
func assignedDates(ctx *Context, staffID string) []time.Time {
	seen := make(map[time.Time]bool)
	for _, a := range ctx.Schedule.Assignments {
		if a.StaffID == staffID {
			seen[a.Slot.Date] = true
		}
	}
	return sortedDates(seen)
}

// nightDates returns the sorted set of dates on which staffID starts a
// night, used by the H7 minimum-consecutive rule.
func nightDates(ctx *Context, staffID string) []time.Time {
	seen := make(map[time.Time]bool)
	for _, a := range ctx.Schedule.Assignments {
		if a.StaffID == staffID && a.Slot.Kind.IsNight() {
			seen[a.Slot.Date] = true
		}
	}
	return sortedDates(seen)
}

func sortedDates(seen map[time.Time]bool) []time.Time {
	out := make([]time.Time, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// blocksFromDates groups a sorted, deduplicated date slice into maximal
// calendar-consecutive runs.
func blocksFromDates(dates []time.Time) []block {
	var blocks []block
	for _, d := range dates {
		if len(blocks) > 0 && blocks[len(blocks)-1].End.AddDate(0, 0, 1).Equal(d) {
			blocks[len(blocks)-1].End = d
			continue
		}
		blocks = append(blocks, block{Start: d, End: d})
	}
	return blocks
}

// allStaffIDs returns every roster staff identifier, sorted, so rules can
// iterate deterministically.
func allStaffIDs(ctx *Context) []string {
	ids := make([]string, 0, len(ctx.Staff))
	for _, s := range ctx.Staff {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return ids
}

// assignmentsOn returns every assignment on date d.
func assignmentsOn(ctx *Context, d time.Time) []model.Assignment {
	var out []model.Assignment
	for _, a := range ctx.Schedule.Assignments {
		if a.Slot.Date.Equal(d) {
			out = append(out, a)
		}
	}
	return out
}

// assignmentsOnKind returns every assignment on date d of kind k.
func assignmentsOnKind(ctx *Context, d time.Time, k model.Kind) []model.Assignment {
	var out []model.Assignment
	for _, a := range ctx.Schedule.Assignments {
		if a.Slot.Date.Equal(d) && a.Slot.Kind == k {
			out = append(out, a)
		}
	}
	return out
}
