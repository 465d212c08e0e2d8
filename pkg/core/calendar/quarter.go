// Package calendar generates the exact set of shift slots that must be
// covered in a quarter, per spec §4.1.
package calendar

import (
	"fmt"
	"time"
)

// Days returns the number of days in the 90- or 91-day quarter starting at
// start (first day of Jan/Apr/Jul/Oct).
func Days(start time.Time) int {
	end := start.AddDate(0, 3, 0)
	return int(end.Sub(start).Hours() / 24)
}

// ValidateQuarterStart checks the precondition in spec §6: start must be the
// first day of a calendar month among {Jan 1, Apr 1, Jul 1, Oct 1}.
func ValidateQuarterStart(start time.Time) error {
	if start.Day() != 1 {
		return fmt.Errorf("quarter_start must be the first day of a month, got %s", start.Format("2006-01-02"))
	}
	switch start.Month() {
	case time.January, time.April, time.July, time.October:
		return nil
	default:
		return fmt.Errorf("quarter_start must be Jan/Apr/Jul/Oct 1, got %s", start.Format("2006-01-02"))
	}
}

// Dates returns every calendar date in the quarter starting at start,
// start inclusive.
func Dates(start time.Time) []time.Time {
	n := Days(start)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
