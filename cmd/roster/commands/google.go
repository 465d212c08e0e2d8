package commands

import (
	"fmt"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/clients/gmailclient"
	"github.com/vetclinic/oncall-roster/pkg/clients/sheetsclient"
)

// ensureSheetsClient lazily performs the OAuth flow and caches the result
// on app, so commands that never touch Sheets never trigger it.
func ensureSheetsClient(app *AppContext) (*sheetsclient.Client, error) {
	if app.SheetsClient != nil {
		return app.SheetsClient, nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load oauth client config: %w", err)
	}

	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.SheetsClient = client
	return client, nil
}

// ensureGmailClient lazily creates the Gmail client, reusing the Sheets
// client's OAuth token (both request the same scope set).
func ensureGmailClient(app *AppContext) (*gmailclient.Client, error) {
	if app.GmailClient != nil {
		return app.GmailClient, nil
	}

	sheets, err := ensureSheetsClient(app)
	if err != nil {
		return nil, err
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load oauth client config: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, oauthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.GmailClient = client
	return client, nil
}
