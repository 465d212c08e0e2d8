package calendar

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// Generate enumerates every shift slot that must be covered in the quarter
// starting at start, per spec §4.1:
//   - every Saturday emits the three Saturday daytime kinds,
//   - every Sunday emits the three Sunday daytime kinds,
//   - every date emits exactly one night kind, determined by that date's
//     weekday.
//
// Saturdays and Sundays are expanded with weekly rrule.RRule recurrences
// rather than hand-rolled weekday arithmetic.
func Generate(start time.Time) ([]model.Slot, error) {
	if err := ValidateQuarterStart(start); err != nil {
		return nil, err
	}

	days := Days(start)
	until := start.AddDate(0, 0, days-1)

	saturdays, err := weekdayOccurrences(start, until, rrule.SA)
	if err != nil {
		return nil, err
	}
	sundays, err := weekdayOccurrences(start, until, rrule.SU)
	if err != nil {
		return nil, err
	}

	var slots []model.Slot
	for _, d := range saturdays {
		date := model.DateOnly(d)
		for _, k := range model.SaturdayKinds {
			slots = append(slots, model.Slot{Kind: k, Date: date})
		}
	}
	for _, d := range sundays {
		date := model.DateOnly(d)
		for _, k := range model.SundayKinds {
			slots = append(slots, model.Slot{Kind: k, Date: date})
		}
	}
	for _, d := range Dates(start) {
		date := model.DateOnly(d)
		kind := model.NightKindForWeekday(date.Weekday())
		slots = append(slots, model.Slot{Kind: kind, Date: date})
	}

	return slots, nil
}

// weekdayOccurrences returns every date in [start, until] (inclusive) that
// falls on the given weekday, via a weekly rrule.RRule recurrence.
func weekdayOccurrences(start, until time.Time, wd rrule.Weekday) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{wd},
		Dtstart:   start,
		Until:     until,
	})
	if err != nil {
		return nil, err
	}
	return r.Between(start, until, true), nil
}
