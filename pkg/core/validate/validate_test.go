package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetclinic/oncall-roster/pkg/core/calendar"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// quarterStart is a real quarter boundary (Monday, 2024-01-01) used across
// tests.
var quarterStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tfa(id string) model.Staff {
	return model.Staff{ID: id, Role: model.RoleTFA, Department: model.DepartmentOther, Hours: 40, Adult: true, NDPossible: true}
}

func TestValidate_CleanScheduleHasNoCoverageOrEligibilityViolations(t *testing.T) {
	// 2024-01-06 is a Saturday; cover its three daytime kinds (two TFAs and
	// an Azubi for the Azubi-only Sa_10-19) and its night, leaving every
	// other date unassigned (coverage flags those dates, but not the one we
	// do assign).
	azubi := model.Staff{ID: "c", Role: model.RoleAzubi, Department: model.DepartmentOther, Hours: 40, Adult: true}
	staff := []model.Staff{tfa("a"), tfa("b"), azubi, tfa("d")}
	sat := date(2024, time.January, 6)
	sched := model.Schedule{
		Assignments: []model.Assignment{
			{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: sat}},
			{StaffID: "b", Slot: model.Slot{Kind: model.SatTFAOnly, Date: sat}},
			{StaffID: "c", Slot: model.Slot{Kind: model.SatAzubi, Date: sat}},
			{StaffID: "d", Slot: model.Slot{Kind: model.NightSaSo, Date: sat}},
		},
	}

	violations, penalties, err := Validate(sched, staff, model.Vacations{}, quarterStart, Options{})
	require.NoError(t, err)
	assert.NotNil(t, penalties)

	for _, v := range violations {
		if len(v.Dates) == 0 || !v.Dates[0].Equal(sat) {
			continue
		}
		assert.NotEqual(t, "coverage", v.Rule, v.Detail)
		assert.NotEqual(t, "eligibility", v.Rule, v.Detail)
	}
}

func TestValidate_RejectsBadQuarterStart(t *testing.T) {
	_, _, err := Validate(model.Schedule{}, nil, model.Vacations{}, date(2024, time.February, 1), Options{})
	require.Error(t, err)
}

func TestCoverageRule_MissingWeekendSlotFlagged(t *testing.T) {
	staff := []model.Staff{tfa("a")}
	sat := date(2024, time.January, 6)
	sched := model.Schedule{
		Assignments: []model.Assignment{
			{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: sat}},
		},
	}
	_, _, err := Validate(sched, staff, model.Vacations{}, quarterStart, Options{})
	require.NoError(t, err)

	ctx := &Context{Schedule: sched, Staff: staff, StaffByID: model.ByID(staff)}
	slots, err := calendar.Generate(quarterStart)
	require.NoError(t, err)
	ctx.Slots = slots

	violations := coverageRule{}.Check(ctx)
	var sawMissing bool
	for _, v := range violations {
		if v.Rule == "coverage" && v.Dates[0].Equal(sat) {
			sawMissing = true
		}
	}
	assert.True(t, sawMissing, "expected a coverage violation for the unfilled Sa_10-22/Sa_10-19 slots on %s", sat)
}

func TestEligibilityRule_InternOnWeekendIsRejected(t *testing.T) {
	intern := model.Staff{ID: "i", Role: model.RoleIntern, Department: model.DepartmentOther, Hours: 20, Adult: true}
	sat := date(2024, time.January, 6)
	ctx := &Context{
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "i", Slot: model.Slot{Kind: model.SatRezeption, Date: sat}},
		}},
		Staff:     []model.Staff{intern},
		StaffByID: model.ByID([]model.Staff{intern}),
		Vacations: model.Vacations{},
	}
	violations := eligibilityRule{}.Check(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, "eligibility", violations[0].Rule)
}

func TestDoubleBookingRule(t *testing.T) {
	d := date(2024, time.January, 6)
	ctx := &Context{Schedule: model.Schedule{Assignments: []model.Assignment{
		{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: d}},
		{StaffID: "a", Slot: model.Slot{Kind: model.SatTFAOnly, Date: d}},
	}}}
	violations := doubleBookingRule{}.Check(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, "double_booking", violations[0].Rule)
}

func TestAzubiPairingRule(t *testing.T) {
	azubi1 := model.Staff{ID: "az1", Role: model.RoleAzubi}
	azubi2 := model.Staff{ID: "az2", Role: model.RoleAzubi}
	d := date(2024, time.January, 2) // Tuesday -> N_Di-Mi
	ctx := &Context{
		Staff:     []model.Staff{azubi1, azubi2},
		StaffByID: model.ByID([]model.Staff{azubi1, azubi2}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "az1", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
			{StaffID: "az2", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
		}},
	}
	violations := azubiPairingRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	found := false
	for _, v := range violations {
		if v.Rule == "azubi_pairing" {
			found = true
		}
	}
	assert.True(t, found, "expected a two-Azubis-paired violation")
}

func TestLoneWorkerRule_AloneStaffRequiresSolo(t *testing.T) {
	alone := model.Staff{ID: "s1", Role: model.RoleTFA, NDAlone: true}
	other := model.Staff{ID: "s2", Role: model.RoleTFA}
	d := date(2024, time.January, 2) // N_Di-Mi, a regular night
	ctx := &Context{
		Staff:     []model.Staff{alone, other},
		StaffByID: model.ByID([]model.Staff{alone, other}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
			{StaffID: "s2", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
		}},
	}
	violations := loneWorkerRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	assert.Equal(t, "requires_solo", violations[0].Rule)
}

func TestDepartmentRule_SameNightSameDepartmentFlagged(t *testing.T) {
	s1 := model.Staff{ID: "s1", Role: model.RoleTFA, Department: model.DepartmentStation}
	s2 := model.Staff{ID: "s2", Role: model.RoleTFA, Department: model.DepartmentStation}
	d := date(2024, time.January, 2)
	ctx := &Context{
		Staff:     []model.Staff{s1, s2},
		StaffByID: model.ByID([]model.Staff{s1, s2}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
			{StaffID: "s2", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
		}},
	}
	violations := departmentRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	assert.Equal(t, "department_same_night", violations[0].Rule)
}

func TestMinConsecutiveRule_ShortBlockFlagged(t *testing.T) {
	s := model.Staff{ID: "s1", Role: model.RoleTFA}
	d := date(2024, time.January, 2)
	ctx := &Context{
		Staff:     []model.Staff{s},
		StaffByID: model.ByID([]model.Staff{s}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: d}},
		}},
	}
	violations := minConsecutiveRule{}.Check(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, "min_consec_violation", violations[0].Rule)
}

func TestBlockSpacingRule_TooCloseFlagged(t *testing.T) {
	s := model.Staff{ID: "s1", Role: model.RoleTFA}
	d1 := date(2024, time.January, 2)
	d2 := date(2024, time.January, 3)
	d3 := date(2024, time.January, 10) // only 8 days after d1's block start
	d4 := date(2024, time.January, 11)
	ctx := &Context{
		Staff:     []model.Staff{s},
		StaffByID: model.ByID([]model.Staff{s}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: d1}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightMiDo, Date: d2}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightMiDo, Date: d3}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDoFr, Date: d4}},
		}},
	}
	violations := blockSpacingRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	assert.Equal(t, "block_spacing_violation", violations[0].Rule)
}

func TestRestAfterNightRule_FlagsDayAfterNight(t *testing.T) {
	s := model.Staff{ID: "s1", Role: model.RoleTFA}
	night := date(2024, time.January, 2) // N_Di-Mi
	after := date(2024, time.January, 3)
	ctx := &Context{
		Staff:     []model.Staff{s},
		StaffByID: model.ByID([]model.Staff{s}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: night}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightMiDo, Date: after}},
		}},
	}
	violations := restAfterNightRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	assert.Equal(t, "rest_after_night", violations[0].Rule)
}

func TestWeekendIsolationRule_FlagsAdjacentSlot(t *testing.T) {
	s := model.Staff{ID: "s1", Role: model.RoleTFA}
	sat := date(2024, time.January, 6)
	fri := date(2024, time.January, 5)
	ctx := &Context{
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.SatRezeption, Date: sat}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightFrSa, Date: fri}},
		}},
	}
	violations := weekendIsolationRule{}.Check(ctx)
	require.NotEmpty(t, violations)
	assert.Equal(t, "weekend_isolation", violations[0].Rule)
}

func TestScorePenalties_MaxConsecutiveExcess(t *testing.T) {
	limit := 2
	s := model.Staff{ID: "s1", Role: model.RoleTFA, NDMaxConsecutive: &limit}
	d1 := date(2024, time.January, 1) // Monday -> N_Mo-Di
	d2 := date(2024, time.January, 2)
	d3 := date(2024, time.January, 3)
	ctx := &Context{
		Staff:     []model.Staff{s},
		StaffByID: model.ByID([]model.Staff{s}),
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightMoDi, Date: d1}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightDiMi, Date: d2}},
			{StaffID: "s1", Slot: model.Slot{Kind: model.NightMiDo, Date: d3}},
		}},
	}
	penalty := maxConsecutiveSoftPenalty(ctx)
	assert.Equal(t, float64(maxConsecutiveExcessPenalty), penalty)
}

func TestFairnessPenalty_ZeroWhenEvenlySplit(t *testing.T) {
	a := tfa("a")
	b := tfa("b")
	d1 := date(2024, time.January, 6)
	d2 := date(2024, time.January, 7)
	ctx := &Context{
		QuarterDays: 90,
		Vacations:   model.Vacations{},
		Schedule: model.Schedule{Assignments: []model.Assignment{
			{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: d1}},
			{StaffID: "b", Slot: model.Slot{Kind: model.SunTFAOnly1, Date: d2}},
		}},
	}
	penalty := fairnessPenalty(ctx, []model.Staff{a, b})
	assert.InDelta(t, 0, penalty, 1e-9)
}
