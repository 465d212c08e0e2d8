package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/core/solve"
)

type mockScheduleStore struct {
	saved    bool
	saveErr  error
	lastSave model.Schedule
}

func (m *mockScheduleStore) SaveSchedule(ctx context.Context, sched model.Schedule, staff []model.Staff, status string, provenOptimal bool) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = true
	m.lastSave = sched
	return nil
}

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

func TestSolveRoster_RejectsInvalidStaffBeforeCallingSolver(t *testing.T) {
	logger := zaptest.NewLogger(t)
	bad := []model.Staff{{ID: "", Role: model.RoleTFA, Department: model.DepartmentOther, Hours: 40}}

	result, err := SolveRoster(context.Background(), bad, model.Vacations{}, time.Now(), solve.Options{}, logger, nil)

	assert.Error(t, err)
	assert.False(t, result.Feasible)
}

func TestSolveRoster_PersistsOnFeasibleSolve(t *testing.T) {
	logger := zaptest.NewLogger(t)
	quarterStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	staff := makeRoster(12)
	staff[0].Department = model.DepartmentStation
	staff[1].Department = model.DepartmentOp
	store := &mockScheduleStore{}

	result, err := SolveRoster(context.Background(), staff, model.Vacations{}, quarterStart, solve.Options{Seed: 7}, logger, store)

	require.NoError(t, err)
	require.True(t, result.Feasible, "a roomy 12-TFA roster with no vacations must be solvable")
	assert.True(t, store.saved)
	assert.Equal(t, result.Schedule.ID, store.lastSave.ID)
}

func TestSolveRoster_InfeasibleSolveWithNilStoreReturnsNoError(t *testing.T) {
	logger := zaptest.NewLogger(t)
	staff := []model.Staff{{ID: "a", Role: model.RoleIntern, Department: model.DepartmentOther, Hours: 20, Adult: true}}

	result, err := SolveRoster(context.Background(), staff, model.Vacations{}, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), solve.Options{}, logger, nil)

	require.NoError(t, err)
	assert.Equal(t, solve.StatusInfeasible, result.SolverStatus)
}
