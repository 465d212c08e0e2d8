package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaff_EffectiveMinConsecutive(t *testing.T) {
	tfa := Staff{Role: RoleTFA}
	assert.Equal(t, 2, tfa.EffectiveMinConsecutive())

	azubi := Staff{Role: RoleAzubi}
	assert.Equal(t, 1, azubi.EffectiveMinConsecutive())

	override := 3
	tfaOverride := Staff{Role: RoleTFA, NDMinConsecutive: override}
	assert.Equal(t, 3, tfaOverride.EffectiveMinConsecutive())
}

func TestValidateStaffList_DuplicateID(t *testing.T) {
	staff := []Staff{
		{ID: "a", Role: RoleTFA, Department: DepartmentStation, Hours: 40},
		{ID: "a", Role: RoleTFA, Department: DepartmentStation, Hours: 40},
	}
	err := ValidateStaffList(staff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate identifier")
}

func TestValidateStaffList_BadHours(t *testing.T) {
	staff := []Staff{{ID: "a", Role: RoleTFA, Department: DepartmentStation, Hours: 0}}
	err := ValidateStaffList(staff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hours")
}

func TestValidateStaffList_UnknownRole(t *testing.T) {
	staff := []Staff{{ID: "a", Role: Role("Vet"), Department: DepartmentStation, Hours: 40}}
	err := ValidateStaffList(staff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestKindOrder(t *testing.T) {
	assert.True(t, SatRezeption.Less(SatTFAOnly))
	assert.True(t, SatAzubi.Less(SunTFAOnly1))
	assert.True(t, SunAzubi.Less(NightSoMo))
	assert.True(t, NightSoMo.Less(NightMoDi))
}

func TestNightKindForWeekday(t *testing.T) {
	assert.Equal(t, NightSoMo, NightKindForWeekday(time.Sunday))
	assert.Equal(t, NightDiMi, NightKindForWeekday(time.Tuesday))
	assert.Equal(t, NightSaSo, NightKindForWeekday(time.Saturday))
}

func TestWeekdayOrdinal(t *testing.T) {
	assert.Equal(t, 1, WeekdayOrdinal(time.Monday))
	assert.Equal(t, 7, WeekdayOrdinal(time.Sunday))
}

func TestScheduleRowsOrdering(t *testing.T) {
	d1 := DateOnly(time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC))
	d2 := d1.AddDate(0, 0, 1)
	sched := Schedule{
		Assignments: []Assignment{
			{StaffID: "b", Slot: Slot{Kind: SatTFAOnly, Date: d1}},
			{StaffID: "a", Slot: Slot{Kind: SatRezeption, Date: d1}},
			{StaffID: "c", Slot: Slot{Kind: NightSoMo, Date: d2}},
		},
	}
	rows := sched.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, SatRezeption, rows[0].Slot.Kind)
	assert.Equal(t, SatTFAOnly, rows[1].Slot.Kind)
	assert.Equal(t, NightSoMo, rows[2].Slot.Kind)
}

func TestDiff(t *testing.T) {
	d := DateOnly(time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC))
	a := Schedule{Assignments: []Assignment{{StaffID: "x", Slot: Slot{Kind: SatRezeption, Date: d}}}}
	b := Schedule{Assignments: []Assignment{{StaffID: "y", Slot: Slot{Kind: SatRezeption, Date: d}}}}

	deltas := Diff(a, b)
	require.Len(t, deltas, 1)
	assert.Equal(t, "x", deltas[0].Before)
	assert.Equal(t, "y", deltas[0].After)
}

func TestWithBirthdays(t *testing.T) {
	staff := []Staff{{ID: "a", Birthday: &MonthDay{Month: 4, Day: 5}}}
	v := WithBirthdays(nil, staff, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 91)
	assert.True(t, v.On("a", time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.On("a", time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)))
}
