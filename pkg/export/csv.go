// Package export writes a solved schedule out to CSV, and, when a result
// spreadsheet is configured, to a Google Sheet via sheetsclient.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/clients/sheetsclient"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

// ScheduleToCSV writes sched's rows (date, shift, staff) to path, ordered
// per spec §6's row ordering.
func ScheduleToCSV(sched model.Schedule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Shift", "Staff"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range sched.Rows() {
		row := []string{a.Slot.Date.Format("2006-01-02"), string(a.Slot.Kind), a.StaffID}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return w.Error()
}

// ToSheet publishes sched to cfg.ResultSheetID via client, a no-op when no
// result spreadsheet is configured.
func ToSheet(client *sheetsclient.Client, cfg *config.Config, sched model.Schedule) error {
	if cfg.ResultSheetID == "" {
		return nil
	}
	return client.PublishSchedule(cfg.ResultSheetID, sched)
}
