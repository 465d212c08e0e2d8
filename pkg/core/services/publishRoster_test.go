package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

func TestPublishRoster_WritesCSVWithoutClients(t *testing.T) {
	logger := zaptest.NewLogger(t)
	sched := model.Schedule{
		ID:           uuid.New(),
		QuarterStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Assignments: []model.Assignment{
			{StaffID: "a", Slot: model.Slot{Kind: model.SatRezeption, Date: time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)}},
		},
	}
	cfg := &config.Config{GmailUserID: "roster@example.com"}
	path := filepath.Join(t.TempDir(), "out.csv")

	err := PublishRoster(sched, cfg, path, nil, nil, logger)

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
