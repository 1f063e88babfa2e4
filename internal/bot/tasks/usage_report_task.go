package tasks

import (
	"context"
	"fmt"
	"time"
)

// newUsageReportTask creates the task that logs per-command invocation
// counts for the last day and, when configured, the DeepL quota usage.
func newUsageReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "usage_report")

	return func(ctx context.Context) error {
		since := time.Now().UTC().Add(-24 * time.Hour)

		counts, err := deps.Store.CountInvocationsSince(ctx, since)
		if err != nil {
			return fmt.Errorf("counting invocations: %w", err)
		}

		var total int64
		for _, c := range counts {
			total += c.Count
			log.InfoContext(ctx, "command usage", "command", c.Command, "count", c.Count)
		}
		log.InfoContext(ctx, "daily usage report", "total", total, "since", since)

		if deps.DeepL != nil {
			usage, err := deps.DeepL.GetUsage(ctx)
			if err != nil {
				// Quota reporting is best effort; the usage counts above
				// already succeeded.
				log.WarnContext(ctx, "failed to fetch DeepL usage", "error", err)
				return nil
			}
			log.InfoContext(ctx, "deepl quota",
				"character_count", usage.CharacterCount,
				"character_limit", usage.CharacterLimit)
		}
		return nil
	}
}
