// Package ingest loads the staff roster and vacation calendar from CSV
// files, used when a command is given --staff-csv and --vacations-csv
// instead of reading the configured Google Sheet. CSV has no
// idiomatic third-party parser among this stack's dependencies, so this
// package is one of the few places that reaches for the standard library's
// encoding/csv directly (see DESIGN.md); record-level validation still
// goes through go-playground/validator/v10 like the rest of the stack.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

var structValidate = validator.New()

// staffRecord is the validated intermediate shape of one staff CSV row,
// before conversion to model.Staff.
type staffRecord struct {
	ID               string `validate:"required"`
	Name             string `validate:"required"`
	Role             string `validate:"required,oneof=TFA Azubi Intern"`
	Department       string `validate:"required,oneof=station op other"`
	Hours            int    `validate:"required,min=1,max=40"`
	Adult            bool
	Reception        bool
	NDPossible       bool
	NDAlone          bool
	NDMaxConsecutive int
	NDMinConsecutive int
}

// StaffFromCSV reads a staff roster CSV with header row:
// ID,Name,Role,Department,Hours,Adult,Reception,NDPossible,NDAlone,NDMaxConsecutive,NDMinConsecutive
func StaffFromCSV(path string) ([]model.Staff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staff CSV: %w", err)
	}
	defer f.Close()

	rows, header, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read staff CSV: %w", err)
	}

	var staff []model.Staff
	for i, row := range rows {
		rec, err := parseStaffRecord(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := structValidate.Struct(rec); err != nil {
			return nil, fmt.Errorf("row %d: validation failed: %w", i+2, err)
		}
		staff = append(staff, toModelStaff(rec))
	}
	return staff, nil
}

// VacationsFromCSV reads a vacation calendar CSV with header row:
// StaffID,Date (one row per absence day).
func VacationsFromCSV(path string) (model.Vacations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vacation CSV: %w", err)
	}
	defer f.Close()

	rows, header, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read vacation CSV: %w", err)
	}

	staffCol, err := columnIndex(header, "StaffID")
	if err != nil {
		return nil, err
	}
	dateCol, err := columnIndex(header, "Date")
	if err != nil {
		return nil, err
	}

	out := make(model.Vacations)
	for i, row := range rows {
		staffID := strings.TrimSpace(row[staffCol])
		if staffID == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date: %w", i+2, err)
		}
		if out[staffID] == nil {
			out[staffID] = make(map[time.Time]bool)
		}
		out[staffID][model.DateOnly(date)] = true
	}
	return out, nil
}

func readCSV(r io.Reader) (rows [][]string, header []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err = cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("missing header row: %w", err)
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("missing required column %q", name)
}

func parseStaffRecord(header, row []string) (staffRecord, error) {
	field := func(name string) string {
		idx, err := columnIndex(header, name)
		if err != nil || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	hours, err := strconv.Atoi(field("Hours"))
	if err != nil {
		return staffRecord{}, fmt.Errorf("invalid Hours %q: %w", field("Hours"), err)
	}

	rec := staffRecord{
		ID:         field("ID"),
		Name:       field("Name"),
		Role:       field("Role"),
		Department: field("Department"),
		Hours:      hours,
		Adult:      parseBool(field("Adult")),
		Reception:  parseBool(field("Reception")),
		NDPossible: parseBool(field("NDPossible")),
		NDAlone:    parseBool(field("NDAlone")),
	}
	if v := field("NDMaxConsecutive"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return staffRecord{}, fmt.Errorf("invalid NDMaxConsecutive %q: %w", v, err)
		}
		rec.NDMaxConsecutive = n
	}
	if v := field("NDMinConsecutive"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return staffRecord{}, fmt.Errorf("invalid NDMinConsecutive %q: %w", v, err)
		}
		rec.NDMinConsecutive = n
	}
	return rec, nil
}

func toModelStaff(rec staffRecord) model.Staff {
	s := model.Staff{
		ID:               rec.ID,
		Name:             rec.Name,
		Adult:            rec.Adult,
		Hours:            rec.Hours,
		Role:             model.Role(rec.Role),
		Department:       model.Department(rec.Department),
		Reception:        rec.Reception,
		NDPossible:       rec.NDPossible,
		NDAlone:          rec.NDAlone,
		NDMinConsecutive: rec.NDMinConsecutive,
	}
	if rec.NDMaxConsecutive > 0 {
		n := rec.NDMaxConsecutive
		s.NDMaxConsecutive = &n
	}
	return s
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
