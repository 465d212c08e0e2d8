package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// staffFields are the expected header names in the staff tab, in any
// column order.
var staffFields = []string{
	"ID", "Name", "Adult", "Hours", "Role", "Department",
	"Reception", "NDPossible", "NDAlone", "NDMaxConsecutive", "NDMinConsecutive",
}

// ListStaff retrieves and parses the staff roster from the configured
// spreadsheet tab.
func (c *Client) ListStaff(cfg *config.Config) ([]model.Staff, error) {
	values, err := c.GetValues(cfg.StaffSheetID, cfg.StaffSheetTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff data: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("staff spreadsheet tab is empty")
	}
	return parseStaff(values)
}

// ListVacations retrieves and parses the vacation calendar, one row per
// (staff ID, absence date).
func (c *Client) ListVacations(cfg *config.Config) (model.Vacations, error) {
	values, err := c.GetValues(cfg.StaffSheetID, cfg.VacationSheetTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get vacation data: %w", err)
	}
	return parseVacations(values)
}

func parseStaff(raw [][]interface{}) ([]model.Staff, error) {
	index, err := headerIndex(raw[0], staffFields)
	if err != nil {
		return nil, err
	}
	get := func(field string, row []interface{}) string { return cell(index, field, row) }

	staff := make([]model.Staff, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]
		id := get("ID", row)
		if id == "" {
			continue
		}

		hours, err := strconv.Atoi(get("Hours", row))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid Hours %q: %w", i, get("Hours", row), err)
		}

		s := model.Staff{
			ID:         id,
			Name:       get("Name", row),
			Adult:      parseBool(get("Adult", row)),
			Hours:      hours,
			Role:       model.Role(get("Role", row)),
			Department: model.Department(get("Department", row)),
			Reception:  parseBool(get("Reception", row)),
			NDPossible: parseBool(get("NDPossible", row)),
			NDAlone:    parseBool(get("NDAlone", row)),
		}
		if raw := get("NDMaxConsecutive", row); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid NDMaxConsecutive %q: %w", i, raw, err)
			}
			s.NDMaxConsecutive = &n
		}
		if raw := get("NDMinConsecutive", row); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid NDMinConsecutive %q: %w", i, raw, err)
			}
			s.NDMinConsecutive = n
		}

		staff = append(staff, s)
	}
	return staff, nil
}

func parseVacations(raw [][]interface{}) (model.Vacations, error) {
	if len(raw) == 0 {
		return model.Vacations{}, nil
	}
	index, err := headerIndex(raw[0], []string{"StaffID", "Date"})
	if err != nil {
		return nil, err
	}

	out := make(model.Vacations)
	for i := 1; i < len(raw); i++ {
		row := raw[i]
		staffID := cell(index, "StaffID", row)
		if staffID == "" {
			continue
		}
		raw := cell(index, "Date", row)
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid Date %q: %w", i, raw, err)
		}
		if out[staffID] == nil {
			out[staffID] = make(map[time.Time]bool)
		}
		out[staffID][model.DateOnly(date)] = true
	}
	return out, nil
}

func headerIndex(header []interface{}, fields []string) (map[string]int, error) {
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		found := -1
		for i, c := range header {
			if s, ok := c.(string); ok && strings.EqualFold(s, field) {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, fmt.Errorf("missing required column %q", field)
		}
		index[field] = found
	}
	return index, nil
}

func cell(index map[string]int, field string, row []interface{}) string {
	i, ok := index[field]
	if !ok || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
