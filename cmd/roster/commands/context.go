// Package commands implements cmd/roster's cobra subcommands, each
// constructed with an explicit *AppContext dependency rather than a
// package-level global, mirroring the teacher's non-v2 CLI tree.
package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/vetclinic/oncall-roster/internal/config"
	"github.com/vetclinic/oncall-roster/pkg/clients/gmailclient"
	"github.com/vetclinic/oncall-roster/pkg/clients/sheetsclient"
	"github.com/vetclinic/oncall-roster/pkg/store"
)

// AppContext holds the dependencies shared across roster subcommands.
// SheetsClient, GmailClient, and Store are nil when their corresponding
// configuration (OAuth client file, DatabaseURL) isn't present; commands
// must check for nil before using them.
type AppContext struct {
	Env          string
	Cfg          *config.Config
	SheetsClient *sheetsclient.Client
	GmailClient  *gmailclient.Client
	Store        *store.Store
	Logger       *zap.Logger
	Ctx          context.Context
}

// Close releases the store connection pool, if one was opened.
func (a *AppContext) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}
