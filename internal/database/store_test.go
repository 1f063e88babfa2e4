package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alephbot/alephbot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return database.NewStore(db, log)
}

func TestStorePing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}
}

func TestRecordAndCountInvocations(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	records := []*database.Invocation{
		{Command: "vowelize", UserID: "u1", GuildID: "g1", ChannelID: "c1", DurationMS: 120, OK: true},
		{Command: "vowelize", UserID: "u2", GuildID: "g1", ChannelID: "c1", DurationMS: 95, OK: true},
		{Command: "analyze", UserID: "u1", GuildID: "g1", ChannelID: "c1", DurationMS: 300, OK: false, ErrorKind: "unavailable"},
	}
	for _, inv := range records {
		if err := store.RecordInvocation(ctx, inv); err != nil {
			t.Fatalf("RecordInvocation(%s) returned error: %v", inv.Command, err)
		}
		if inv.ID == 0 {
			t.Errorf("RecordInvocation(%s) did not set the row id", inv.Command)
		}
	}

	counts, err := store.CountInvocationsSince(ctx, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountInvocationsSince returned error: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("len(counts) = %d, want 2 commands", len(counts))
	}
	// Ordered by count descending.
	if counts[0].Command != "vowelize" || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want vowelize with 2", counts[0])
	}
	if counts[1].Command != "analyze" || counts[1].Count != 1 {
		t.Errorf("counts[1] = %+v, want analyze with 1", counts[1])
	}

	future, err := store.CountInvocationsSince(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("CountInvocationsSince returned error: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("counts since the future = %v, want none", future)
	}
}

func TestRecordInvocationValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordInvocation(ctx, nil); err == nil {
		t.Errorf("RecordInvocation accepted nil")
	}
	if err := store.RecordInvocation(ctx, &database.Invocation{UserID: "u1"}); err == nil {
		t.Errorf("RecordInvocation accepted a record without a command")
	}
	if err := store.RecordInvocation(ctx, &database.Invocation{Command: "vowelize"}); err == nil {
		t.Errorf("RecordInvocation accepted a record without a user id")
	}
}

func TestPurgeInvocationsBefore(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &database.Invocation{
		CreatedAt: now.Add(-48 * time.Hour),
		Command:   "vowelize", UserID: "u1", OK: true,
	}
	recent := &database.Invocation{
		CreatedAt: now.Add(-time.Hour),
		Command:   "vowelize", UserID: "u1", OK: true,
	}
	for _, inv := range []*database.Invocation{old, recent} {
		if err := store.RecordInvocation(ctx, inv); err != nil {
			t.Fatalf("RecordInvocation returned error: %v", err)
		}
	}

	removed, err := store.PurgeInvocationsBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeInvocationsBefore returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	counts, err := store.CountInvocationsSince(ctx, now.Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("CountInvocationsSince returned error: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Errorf("counts after purge = %v, want one remaining record", counts)
	}

	if err := store.RunMaintenance(ctx); err != nil {
		t.Errorf("RunMaintenance returned error: %v", err)
	}
}
