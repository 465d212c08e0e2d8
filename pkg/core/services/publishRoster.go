package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/clients/gmailclient"
	"github.com/vetclinic/oncall-roster/pkg/clients/sheetsclient"
	"github.com/vetclinic/oncall-roster/pkg/core/model"
	"github.com/vetclinic/oncall-roster/pkg/export"
)

// PublishRoster writes sched to CSV, appends it to the configured result
// spreadsheet when sheetsClient is non-nil, and emails a summary via
// gmailClient when both it and cfg.GmailSender are configured.
func PublishRoster(sched model.Schedule, cfg *config.Config, csvPath string, sheetsClient *sheetsclient.Client, gmailClient *gmailclient.Client, logger *zap.Logger) error {
	logger.Info("publishing schedule", zap.String("schedule_id", sched.ID.String()), zap.String("csv_path", csvPath))

	if err := export.ScheduleToCSV(sched, csvPath); err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}

	if sheetsClient != nil {
		if err := export.ToSheet(sheetsClient, cfg, sched); err != nil {
			return fmt.Errorf("failed to publish to sheet: %w", err)
		}
		logger.Info("schedule published to sheet", zap.String("result_sheet_id", cfg.ResultSheetID))
	}

	if gmailClient != nil && cfg.GmailSender != "" {
		subject := fmt.Sprintf("On-call roster for %s", sched.QuarterStart.Format("2006-01-02"))
		body := fmt.Sprintf("The on-call roster for the quarter starting %s has been published.\n%d assignments.",
			sched.QuarterStart.Format("2006-01-02"), len(sched.Assignments))
		if err := gmailClient.SendEmail(cfg.GmailUserID, subject, body); err != nil {
			return fmt.Errorf("failed to send notification email: %w", err)
		}
		logger.Info("publish notification emailed", zap.String("to", cfg.GmailUserID))
	}

	return nil
}
