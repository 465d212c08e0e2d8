package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleTabTitle_FormatsQuarterRange(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-01-01")
	assert.Equal(t, "2024-01-01 - 2024-03-31", scheduleTabTitle(start))
}
