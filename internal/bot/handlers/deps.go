// Package handlers contains the slash command handlers, their registration
// table, and the dispatcher that runs them against Discord interactions.
package handlers

import (
	"log/slog"

	"github.com/alephbot/alephbot/internal/config"
	"github.com/alephbot/alephbot/internal/database"
	"github.com/alephbot/alephbot/internal/dicta"
	"github.com/alephbot/alephbot/internal/nakdan"
)

// HandlerDeps provides dependencies for the command handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Nakdan     nakdan.Client
	Translator dicta.Translator
	Store      database.Store
}
