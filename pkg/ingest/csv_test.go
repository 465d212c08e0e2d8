package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestStaffFromCSV_ParsesValidRows(t *testing.T) {
	path := writeTempCSV(t, "staff.csv", ""+
		"ID,Name,Role,Department,Hours,Adult,Reception,NDPossible,NDAlone,NDMaxConsecutive,NDMinConsecutive\n"+
		"a,Alice,TFA,station,40,true,true,true,false,4,2\n"+
		"b,Bob,Intern,other,20,true,false,false,false,,\n")

	staff, err := StaffFromCSV(path)
	require.NoError(t, err)
	require.Len(t, staff, 2)

	assert.Equal(t, "a", staff[0].ID)
	assert.Equal(t, 4, *staff[0].NDMaxConsecutive)
	assert.Nil(t, staff[1].NDMaxConsecutive)
}

func TestStaffFromCSV_RejectsUnknownRole(t *testing.T) {
	path := writeTempCSV(t, "staff.csv", ""+
		"ID,Name,Role,Department,Hours,Adult,Reception,NDPossible,NDAlone,NDMaxConsecutive,NDMinConsecutive\n"+
		"a,Alice,Wizard,station,40,true,true,true,false,,\n")

	_, err := StaffFromCSV(path)
	assert.Error(t, err)
}

func TestVacationsFromCSV_GroupsByStaffID(t *testing.T) {
	path := writeTempCSV(t, "vacations.csv", "StaffID,Date\na,2024-01-06\na,2024-01-07\nb,2024-02-01\n")

	vac, err := VacationsFromCSV(path)
	require.NoError(t, err)
	assert.Len(t, vac["a"], 2)
	assert.Len(t, vac["b"], 1)
}
