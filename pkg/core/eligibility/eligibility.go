// Package eligibility implements the pure predicate "may staff s work shift
// kind t on date d?", per spec §4.2.
package eligibility

import (
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// MayWork evaluates every rule in spec §4.2's table conjunctively.
func MayWork(s model.Staff, kind model.Kind, date time.Time, vacations model.Vacations) bool {
	if !roleEligible(s, kind) {
		return false
	}
	if kind.IsSundayDaytime() && !s.Adult {
		return false
	}
	if s.Role == model.RoleIntern && !kind.IsNight() {
		return false
	}
	if vacations.On(s.ID, date) {
		return false
	}
	if kind.IsNight() {
		if s.ForbidsNightStart(model.WeekdayOrdinal(date.Weekday())) {
			return false
		}
	}
	return true
}

// roleEligible implements spec §4.2's role-eligibility row.
func roleEligible(s model.Staff, kind model.Kind) bool {
	switch kind {
	case model.SatTFAOnly, model.SunTFAOnly1, model.SunTFAOnly2:
		return s.Role == model.RoleTFA
	case model.SatAzubi:
		return s.Role == model.RoleAzubi
	case model.SunAzubi:
		return s.Role == model.RoleAzubi && s.Adult
	case model.SatRezeption:
		return s.Role == model.RoleTFA || (s.Role == model.RoleAzubi && s.Reception)
	default:
		if kind.IsNight() {
			return s.NDPossible
		}
		return false
	}
}
