package tasks

// RegisterAllTasks builds the map of scheduled tasks keyed by task name.
// Schedules come from the scheduler section of the configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTask {
	t := make(map[string]ScheduledTask)

	t["usage_cleanup"] = ScheduledTask{
		Schedule: deps.Config.Scheduler.UsageCleanupSchedule,
		Run:      newUsageCleanupTask(deps),
	}
	t["usage_report"] = ScheduledTask{
		Schedule: deps.Config.Scheduler.UsageReportSchedule,
		Run:      newUsageReportTask(deps),
	}

	deps.Logger.Info("initialized scheduled tasks", "count", len(t))
	return t
}
