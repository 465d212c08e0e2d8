package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

func TestMayWork_RoleEligibility(t *testing.T) {
	tfa := model.Staff{ID: "t", Role: model.RoleTFA, Adult: true}
	azubi := model.Staff{ID: "a", Role: model.RoleAzubi, Adult: true}
	azubiReception := model.Staff{ID: "ar", Role: model.RoleAzubi, Adult: true, Reception: true}
	date := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC) // Saturday

	assert.True(t, MayWork(tfa, model.SatTFAOnly, date, nil))
	assert.False(t, MayWork(azubi, model.SatTFAOnly, date, nil))

	assert.True(t, MayWork(azubi, model.SatAzubi, date, nil))
	assert.False(t, MayWork(tfa, model.SatAzubi, date, nil))

	assert.False(t, MayWork(azubi, model.SatRezeption, date, nil))
	assert.True(t, MayWork(azubiReception, model.SatRezeption, date, nil))
	assert.True(t, MayWork(tfa, model.SatRezeption, date, nil))
}

func TestMayWork_MinorSundayBan(t *testing.T) {
	minorAzubi := model.Staff{ID: "m", Role: model.RoleAzubi, Adult: false}
	date := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC) // Sunday
	assert.False(t, MayWork(minorAzubi, model.SunAzubi, date, nil))
}

func TestMayWork_InternWeekendBan(t *testing.T) {
	intern := model.Staff{ID: "i", Role: model.RoleIntern, Adult: true, NDPossible: true}
	sat := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
	assert.False(t, MayWork(intern, model.SatTFAOnly, sat, nil))
	assert.True(t, MayWork(intern, model.NightDiMi, sat, nil))
}

func TestMayWork_Vacation(t *testing.T) {
	s := model.Staff{ID: "a", Role: model.RoleTFA, Adult: true, NDPossible: true}
	date := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	vac := model.Vacations{"a": {model.DateOnly(date): true}}
	assert.False(t, MayWork(s, model.NightDiMi, date, vac))
}

func TestMayWork_NightWeekdayException(t *testing.T) {
	s := model.Staff{ID: "a", Role: model.RoleTFA, NDPossible: true, NDExceptions: map[int]bool{2: true}}
	tuesday := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	assert.False(t, MayWork(s, model.NightDiMi, tuesday, nil))

	wednesday := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
	assert.True(t, MayWork(s, model.NightMiDo, wednesday, nil))
}

func TestMayWork_NightRequiresNDPossible(t *testing.T) {
	s := model.Staff{ID: "a", Role: model.RoleTFA, NDPossible: false}
	date := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	assert.False(t, MayWork(s, model.NightDiMi, date, nil))
}
