package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the database operations used by the dispatcher and the
// scheduled tasks.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordInvocation inserts one command invocation record.
	RecordInvocation(ctx context.Context, inv *Invocation) error

	// CountInvocationsSince returns per-command invocation counts for
	// records created at or after since.
	CountInvocationsSince(ctx context.Context, since time.Time) ([]CommandCount, error)

	// PurgeInvocationsBefore deletes records created before cutoff and
	// returns the number removed.
	PurgeInvocationsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// RunMaintenance reclaims space and refreshes query planner stats.
	RunMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) RecordInvocation(ctx context.Context, inv *Invocation) error {
	if inv == nil {
		return fmt.Errorf("cannot record nil invocation")
	}
	if inv.Command == "" {
		return fmt.Errorf("invocation must name a command")
	}
	if inv.UserID == "" {
		return fmt.Errorf("invocation must have a user id")
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO command_invocations
            (created_at, command, user_id, guild_id, channel_id, duration_ms, ok, error_kind)
        VALUES
            (:created_at, :command, :user_id, :guild_id, :channel_id, :duration_ms, :ok, :error_kind);
    `

	result, err := s.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		s.logger.ErrorContext(ctx, "error recording invocation", "command", inv.Command, "error", err)
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		inv.ID = uint(id) //nolint:gosec // sqlite rowids fit
	}
	return nil
}

func (s *sqlxStore) CountInvocationsSince(ctx context.Context, since time.Time) ([]CommandCount, error) {
	var counts []CommandCount
	query := `
        SELECT command, COUNT(*) AS count
        FROM command_invocations
        WHERE created_at >= ?
        GROUP BY command
        ORDER BY count DESC;
    `
	if err := s.db.SelectContext(ctx, &counts, query, since.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "error counting invocations", "error", err)
		return nil, fmt.Errorf("failed to count invocations: %w", err)
	}
	return counts, nil
}

func (s *sqlxStore) PurgeInvocationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM command_invocations WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "error purging invocations", "error", err)
		return 0, fmt.Errorf("failed to purge invocations: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	for _, stmt := range []string{"VACUUM;", "ANALYZE;"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.ErrorContext(ctx, "maintenance statement failed", "stmt", stmt, "error", err)
			return fmt.Errorf("maintenance %q failed: %w", stmt, err)
		}
	}
	return nil
}
