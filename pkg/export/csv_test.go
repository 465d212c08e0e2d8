package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

func TestScheduleToCSV_WritesHeaderAndRows(t *testing.T) {
	sched := model.Schedule{
		ID:           uuid.New(),
		QuarterStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Assignments: []model.Assignment{
			{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ScheduleToCSV(sched, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Shift,Staff")
	assert.Contains(t, string(data), "2024-01-06,Sa_10-21,a")
}

func TestToSheet_NoopWithoutResultSheetConfigured(t *testing.T) {
	err := ToSheet(nil, &config.Config{}, model.Schedule{})
	assert.NoError(t, err)
}
