// Package tasks implements the scheduled background tasks: usage record
// retention and the daily usage report.
package tasks

import (
	"context"
	"log/slog"

	"github.com/alephbot/alephbot/internal/config"
	"github.com/alephbot/alephbot/internal/database"
	"github.com/alephbot/alephbot/internal/deepl"
)

// ScheduledTaskFunc is the signature for all scheduled tasks. The context
// provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// ScheduledTask pairs a task function with its cron schedule. An empty
// schedule disables the task.
type ScheduledTask struct {
	Schedule string
	Run      ScheduledTaskFunc
}

// TaskDeps contains the dependencies required by scheduled tasks. DeepL is
// nil when no credential is configured.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	DeepL  *deepl.Client
}
