package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		StaffSheetID:     "sheet123",
		StaffSheetTab:    "Staff",
		VacationSheetTab: "Vacations",
		GmailUserID:      "roster@example.com",
		GmailSender:      "noreply@example.com",
		TimeLimitSeconds: 120,
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		StaffSheetID:     "sheet123",
		StaffSheetTab:    "Staff",
		VacationSheetTab: "Vacations",
		GmailUserID:      "roster@example.com",
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		StaffSheetTab:    "Staff",
		VacationSheetTab: "Vacations",
		GmailUserID:      "roster@example.com",
		// Missing StaffSheetID
	}
	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_BadTimeLimit(t *testing.T) {
	cfg := &Config{
		StaffSheetID:     "sheet123",
		StaffSheetTab:    "Staff",
		VacationSheetTab: "Vacations",
		GmailUserID:      "roster@example.com",
		TimeLimitSeconds: -5,
	}
	assert.Error(t, Validate(cfg))
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/roster_config.yaml")
	assert.Error(t, err)
}
