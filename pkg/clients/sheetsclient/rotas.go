package sheetsclient

import (
	"fmt"
	"time"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// PublishSchedule writes sched to a new tab in spreadsheetID titled with
// the quarter's date range, one row per (date, kind, staff). If a tab with
// that title already exists it is overwritten in place, mirroring the
// "overwrite, don't orphan old tabs" behavior of the rota publisher this
// client is modeled on.
func (c *Client) PublishSchedule(spreadsheetID string, sched model.Schedule) error {
	tabTitle := scheduleTabTitle(sched.QuarterStart)

	exists, err := c.sheetExists(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create schedule tab: %w", err)
		}
	}

	rows := [][]interface{}{{"Date", "Shift", "Staff"}}
	for _, a := range sched.Rows() {
		rows = append(rows, []interface{}{
			a.Slot.Date.Format("2006-01-02"),
			string(a.Slot.Kind),
			a.StaffID,
		})
	}

	if err := c.WriteValues(spreadsheetID, fmt.Sprintf("%s!A1", tabTitle), rows); err != nil {
		return fmt.Errorf("failed to write schedule tab: %w", err)
	}
	return nil
}

// scheduleTabTitle names a tab after the quarter it covers, e.g.
// "2024-01-01 - 2024-03-31".
func scheduleTabTitle(quarterStart time.Time) string {
	end := quarterStart.AddDate(0, 3, -1)
	return fmt.Sprintf("%s - %s", quarterStart.Format("2006-01-02"), end.Format("2006-01-02"))
}
