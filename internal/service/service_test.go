package service

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/auth"
	"github.com/habitloop/habitloop-server/internal/reminder"
	"github.com/habitloop/habitloop-server/internal/sse"
	"github.com/habitloop/habitloop-server/internal/store"
	"github.com/habitloop/habitloop-server/internal/syncer"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testNow keeps derivation deterministic across the service tests.
var testNow = time.Date(2025, 3, 15, 12, 30, 0, 0, time.Local)

type fixture struct {
	store  *store.Store
	auth   *AuthService
	docs   *DocumentService
	stats  *StatsService
	events *sse.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	events := sse.NewManager(logger)
	notifier := reminder.NewSSENotifier(events, logger)
	scheduler := reminder.NewScheduler(reminder.NewRealClock(), notifier, logger)
	t.Cleanup(scheduler.Shutdown)

	// A short debounce so tests that wait for persistence stay fast.
	sync := syncer.New(st, 10*time.Millisecond, logger)

	docs := NewDocumentService(st, sync, scheduler, events, logger)

	return &fixture{
		store:  st,
		auth:   NewAuthService(st, tokens, logger),
		docs:   docs,
		stats:  NewStatsService(docs, func() time.Time { return testNow }),
		events: events,
	}
}
