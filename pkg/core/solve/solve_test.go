package solve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/validate"
)

var quarterStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func makeRoster(n int) []model.Staff {
	staff := make([]model.Staff, 0, n)
	for i := 0; i < n; i++ {
		staff = append(staff, model.Staff{
			ID:         string(rune('a' + i)),
			Name:       string(rune('A' + i)),
			Adult:      true,
			Hours:      40,
			Role:       model.RoleTFA,
			Department: model.DepartmentOther,
			Reception:  true,
			NDPossible: true,
		})
	}
	return staff
}

func TestSolve_RejectsBadQuarterStart(t *testing.T) {
	result := Solve(makeRoster(8), time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), model.Vacations{}, Options{})
	assert.False(t, result.Feasible)
	assert.Equal(t, StatusUnknown, result.SolverStatus)
	require.NotEmpty(t, result.UnsatisfiableConstraints)
}

func TestSolve_RejectsInvalidStaffList(t *testing.T) {
	bad := []model.Staff{{ID: "", Role: model.RoleTFA, Department: model.DepartmentOther, Hours: 40}}
	result := Solve(bad, quarterStart, model.Vacations{}, Options{})
	assert.False(t, result.Feasible)
	assert.Equal(t, StatusUnknown, result.SolverStatus)
}

func TestSolve_ReportsInfeasibleWhenNoStaffCanEverWork(t *testing.T) {
	staff := []model.Staff{{ID: "a", Role: model.RoleIntern, Department: model.DepartmentOther, Hours: 20, Adult: true}}
	result := Solve(staff, quarterStart, model.Vacations{}, Options{})
	assert.False(t, result.Feasible)
	assert.Equal(t, StatusInfeasible, result.SolverStatus)
	require.NotNil(t, result.Diagnostics)
	assert.NotEmpty(t, result.Diagnostics.Starved)
}

func TestSolve_SmallUnconstrainedRosterIsFeasible(t *testing.T) {
	staff := makeRoster(12)
	staff[0].Department = model.DepartmentStation
	staff[1].Department = model.DepartmentOp
	opts := Options{Seed: 42}

	result := Solve(staff, quarterStart, model.Vacations{}, opts)

	require.True(t, result.Feasible, "a roomy 12-TFA roster with no vacations must be solvable")
	assert.Contains(t, []Status{StatusFeasible, StatusOptimal}, result.SolverStatus)

	violations, _, err := validate.Validate(result.Schedule, staff, model.Vacations{}, quarterStart, validate.Options{})
	require.NoError(t, err)
	assert.Empty(t, violations, "a schedule reported feasible must have zero validator violations")
}

func TestBuildTables_SkipsIneligibleCandidates(t *testing.T) {
	staff := []model.Staff{
		{ID: "intern", Role: model.RoleIntern, Department: model.DepartmentOther, Hours: 20, Adult: true, NDPossible: true},
	}
	tables, err := buildTables(staff, model.Vacations{}, quarterStart)
	require.NoError(t, err)

	for _, slot := range tables.slots {
		if slot.Kind.IsWeekendDaytime() {
			assert.Empty(t, tables.eligibleStaff[slot], "an intern must never be eligible for daytime weekend slots")
		}
	}
}

func TestCoverageDiagnostics_FlagsStarvedSlots(t *testing.T) {
	tables, err := buildTables(nil, model.Vacations{}, quarterStart)
	require.NoError(t, err)
	diag := tables.coverageDiagnostics()
	assert.Equal(t, len(tables.slots), len(diag.Starved))
}
