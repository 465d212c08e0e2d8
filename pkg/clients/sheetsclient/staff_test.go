package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

func TestParseStaff_ParsesRowsAndSkipsBlankIDs(t *testing.T) {
	raw := [][]interface{}{
		{"ID", "Name", "Adult", "Hours", "Role", "Department", "Reception", "NDPossible", "NDAlone", "NDMaxConsecutive", "NDMinConsecutive"},
		{"s1", "Alex", "true", "40", "Vet", "Surgery", "false", "true", "false", "3", "2"},
		{"", "Blank Row", "true", "40", "Vet", "Surgery", "false", "true", "false", "", ""},
		{"s2", "Sam", "false", "20", "Intern", "Surgery", "false", "false", "false", "", ""},
	}

	staff, err := parseStaff(raw)
	require.NoError(t, err)
	require.Len(t, staff, 2)

	assert.Equal(t, "s1", staff[0].ID)
	assert.True(t, staff[0].Adult)
	assert.Equal(t, 40, staff[0].Hours)
	require.NotNil(t, staff[0].NDMaxConsecutive)
	assert.Equal(t, 3, *staff[0].NDMaxConsecutive)
	assert.Equal(t, 2, staff[0].NDMinConsecutive)

	assert.Equal(t, "s2", staff[1].ID)
	assert.Nil(t, staff[1].NDMaxConsecutive)
}

func TestParseStaff_RejectsMissingColumn(t *testing.T) {
	raw := [][]interface{}{
		{"ID", "Name"},
		{"s1", "Alex"},
	}
	_, err := parseStaff(raw)
	assert.Error(t, err)
}

func TestParseStaff_RejectsInvalidHours(t *testing.T) {
	raw := [][]interface{}{
		{"ID", "Name", "Adult", "Hours", "Role", "Department", "Reception", "NDPossible", "NDAlone", "NDMaxConsecutive", "NDMinConsecutive"},
		{"s1", "Alex", "true", "not-a-number", "Vet", "Surgery", "false", "true", "false", "", ""},
	}
	_, err := parseStaff(raw)
	assert.Error(t, err)
}

func TestParseVacations_GroupsDatesByStaffID(t *testing.T) {
	raw := [][]interface{}{
		{"StaffID", "Date"},
		{"s1", "2024-01-06"},
		{"s1", "2024-01-07"},
		{"s2", "2024-02-10"},
		{"", "2024-02-11"},
	}

	vac, err := parseVacations(raw)
	require.NoError(t, err)
	require.Len(t, vac, 2)

	d := model.DateOnly(mustParseDate(t, "2024-01-06"))
	assert.True(t, vac["s1"][d])
	assert.Len(t, vac["s1"], 2)
	assert.Len(t, vac["s2"], 1)
}

func TestParseVacations_RejectsInvalidDate(t *testing.T) {
	raw := [][]interface{}{
		{"StaffID", "Date"},
		{"s1", "not-a-date"},
	}
	_, err := parseVacations(raw)
	assert.Error(t, err)
}

func TestHeaderIndex_IsCaseInsensitive(t *testing.T) {
	index, err := headerIndex([]interface{}{"id", "NAME"}, []string{"ID", "Name"})
	require.NoError(t, err)
	assert.Equal(t, 0, index["ID"])
	assert.Equal(t, 1, index["Name"])
}

func TestCell_ReturnsEmptyForShortRow(t *testing.T) {
	index := map[string]int{"ID": 0, "Name": 1}
	assert.Equal(t, "", cell(index, "Name", []interface{}{"s1"}))
}

func TestParseBool_TrimsWhitespace(t *testing.T) {
	assert.True(t, parseBool(" true "))
	assert.False(t, parseBool(""))
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
