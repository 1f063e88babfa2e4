// Package bot orchestrates the application components: the Discord session
// and the task scheduler, run together until shutdown.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alephbot/alephbot/internal/discord"
)

// Bot manages the lifecycle of the long-running components.
type Bot struct {
	logger    *slog.Logger
	session   *discord.Bot
	scheduler *Scheduler
}

// New creates the orchestrator.
func New(logger *slog.Logger, session *discord.Bot, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "orchestrator"),
		session:   session,
		scheduler: scheduler,
	}
}

// Run starts all components and blocks until ctx is cancelled or a
// component fails. Shutdown is graceful: the session closes and the
// scheduler waits for running jobs.
func (b *Bot) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("starting discord session")
		if err := b.session.Start(gCtx); err != nil {
			return fmt.Errorf("discord session: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("starting scheduler")
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("shutdown signal received, stopping scheduler")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("stopped due to error", "error", err)
		return err
	}

	b.logger.Info("stopped gracefully")
	return nil
}
