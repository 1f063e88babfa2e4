package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/alephbot/alephbot/internal/bot/tasks"
)

// Scheduler runs the registered tasks on their cron schedules using gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	taskMap   map[string]tasks.ScheduledTask

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler over the task registry. Tasks with an
// empty schedule are skipped.
func NewScheduler(logger *slog.Logger, taskMap map[string]tasks.ScheduledTask) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
		taskMap:   taskMap,
	}, nil
}

// Start schedules all tasks and starts the scheduler's ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	for name, task := range s.taskMap {
		if task.Schedule == "" {
			s.logger.Info("task has no schedule, skipping", "task_name", name)
			continue
		}

		run := task.Run
		_, err := s.scheduler.NewJob(
			gocron.CronJob(task.Schedule, true),
			gocron.NewTask(func(ctx context.Context, taskName string) {
				s.logger.Info("running scheduled task", "task_name", taskName)
				start := time.Now()
				if taskErr := run(ctx); taskErr != nil {
					s.logger.Error("scheduled task failed", "task_name", taskName, "error", taskErr)
				}
				s.logger.Info("finished scheduled task", "task_name", taskName, "duration", time.Since(start))
			}, context.Background(), name),
			gocron.WithName(name),
		)
		if err != nil {
			s.logger.Error("failed to schedule task", "task_name", name, "schedule", task.Schedule, "error", err)
			continue
		}

		s.logger.Info("scheduled task", "task_name", name, "schedule", task.Schedule)
		scheduled++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("scheduler started", "tasks_scheduled", scheduled)
	return nil
}

// Stop shuts the scheduler down, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	s.running = false
	return err
}
