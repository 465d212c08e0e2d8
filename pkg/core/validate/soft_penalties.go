package validate

import (
	"math"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// maxConsecutiveExcessPenalty is the per-excess-night penalty for S4 (soft
// max-consecutive-nights overruns), per spec §4.3.
const maxConsecutiveExcessPenalty = 100

// stdDevWeight is the coefficient applied to a fairness group's standard
// deviation in the S1/S2 penalty, per spec §4.3.
const stdDevWeight = 10

const fteFullTimeHours = 40

// scorePenalties computes the soft-penalty breakdown: "max_consecutive" for
// S4 overruns and one "fairness_<role>" entry per role group for S1/S2.
func scorePenalties(ctx *Context) map[string]float64 {
	penalties := make(map[string]float64)
	penalties["max_consecutive"] = maxConsecutiveSoftPenalty(ctx)

	for _, group := range []model.Role{model.RoleTFA, model.RoleAzubi, model.RoleIntern} {
		members := staffInRole(ctx, group)
		if len(members) == 0 {
			continue
		}
		penalties["fairness_"+string(group)] = fairnessPenalty(ctx, members)
	}

	return penalties
}

// maxConsecutiveSoftPenalty implements S4: each night in excess of a
// staff's NDMaxConsecutive (if set) within a block costs 100.
func maxConsecutiveSoftPenalty(ctx *Context) float64 {
	var total float64
	for _, s := range ctx.Staff {
		if s.NDMaxConsecutive == nil {
			continue
		}
		limit := *s.NDMaxConsecutive
		for _, b := range blocksFromDates(nightDates(ctx, s.ID)) {
			if excess := b.Len() - limit; excess > 0 {
				total += float64(excess) * maxConsecutiveExcessPenalty
			}
		}
	}
	return total
}

func staffInRole(ctx *Context, role model.Role) []model.Staff {
	var out []model.Staff
	for _, s := range ctx.Staff {
		if s.Role != role {
			continue
		}
		if ctx.Options.ExemptRestrictedFromFairness && isHighlyRestricted(ctx, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// isHighlyRestricted reports whether s's own minimum consecutive exceeds
// the number of night kinds it could ever work, per the fairness-exemption
// open question in spec §9.
func isHighlyRestricted(ctx *Context, s model.Staff) bool {
	available := 0
	for _, k := range model.NightKinds {
		if staffCanEverWork(ctx, s, k) {
			available++
		}
	}
	return available < s.EffectiveMinConsecutive()
}

// AdjustedCount returns a staff member's weekend-slot-plus-effective-night
// count, per spec §4.3's fairness definition.
func AdjustedCount(ctx *Context, s model.Staff) float64 {
	weekend := 0.0
	effectiveNights := 0.0

	for _, a := range ctx.Schedule.Assignments {
		if a.StaffID != s.ID {
			continue
		}
		if a.Slot.Kind.IsWeekendDaytime() {
			weekend++
		}
		if a.Slot.Kind.IsNight() {
			if s.Role == model.RoleAzubi {
				effectiveNights += 1.0
			} else if a.Paired {
				effectiveNights += 0.5
			} else {
				effectiveNights += 1.0
			}
		}
	}
	return weekend + effectiveNights
}

// availableDays returns the number of quarter days on which s is not on
// vacation.
func availableDays(ctx *Context, s model.Staff) int {
	vac := ctx.Vacations[s.ID]
	days := ctx.QuarterDays
	return days - len(vac)
}

// FTELoad returns a staff member's FTE-normalized load, per spec §4.3:
// adjusted_count * (40/hours) * (quarter_days/available_days).
func FTELoad(ctx *Context, s model.Staff) float64 {
	adjusted := AdjustedCount(ctx, s)
	avail := availableDays(ctx, s)
	if avail <= 0 {
		avail = 1
	}
	hours := s.Hours
	if hours <= 0 {
		hours = fteFullTimeHours
	}
	return adjusted * (fteFullTimeHours / float64(hours)) * (float64(ctx.QuarterDays) / float64(avail))
}

// fairnessPenalty implements S1/S2: squared deviation of each staff's load
// from the group mean, plus 10 * standard deviation.
func fairnessPenalty(ctx *Context, members []model.Staff) float64 {
	loads := make([]float64, len(members))
	var sum float64
	for i, s := range members {
		loads[i] = FTELoad(ctx, s)
		sum += loads[i]
	}
	mean := sum / float64(len(loads))

	var sumSquares float64
	for _, l := range loads {
		d := l - mean
		sumSquares += d * d
	}
	variance := sumSquares / float64(len(loads))
	stdDev := math.Sqrt(variance)

	return sumSquares + stdDevWeight*stdDev
}
