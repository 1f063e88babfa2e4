package tasks

import (
	"context"
	"fmt"
	"time"
)

// newUsageCleanupTask creates the task that purges invocation records past
// the retention window and then runs database maintenance.
func newUsageCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "usage_cleanup")

	return func(ctx context.Context) error {
		retention := time.Duration(deps.Config.Database.UsageRetentionDays) * 24 * time.Hour
		cutoff := time.Now().UTC().Add(-retention)

		removed, err := deps.Store.PurgeInvocationsBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purging invocations: %w", err)
		}
		log.InfoContext(ctx, "purged old invocation records", "removed", removed, "cutoff", cutoff)

		if err := deps.Store.RunMaintenance(ctx); err != nil {
			return fmt.Errorf("database maintenance: %w", err)
		}
		log.InfoContext(ctx, "database maintenance completed")
		return nil
	}
}
