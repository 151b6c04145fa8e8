package api

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/auth"
	"github.com/habitloop/habitloop-server/internal/config"
	"github.com/habitloop/habitloop-server/internal/logger"
	"github.com/habitloop/habitloop-server/internal/reminder"
	"github.com/habitloop/habitloop-server/internal/service"
	"github.com/habitloop/habitloop-server/internal/sse"
	"github.com/habitloop/habitloop-server/internal/store"
	"github.com/habitloop/habitloop-server/internal/syncer"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	V       int    `json:"v"`
	Success bool   `json:"success"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store *store.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keyHex, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	log := logger.NewNop()
	slogger := slog.New(slog.DiscardHandler)

	events := sse.NewManager(slogger)
	notifier := reminder.NewSSENotifier(events, slogger)
	scheduler := reminder.NewScheduler(reminder.NewRealClock(), notifier, slogger)
	t.Cleanup(scheduler.Shutdown)

	sync := syncer.New(st, 10*time.Millisecond, slogger)

	docs := service.NewDocumentService(st, sync, scheduler, events, slogger)
	services := &Services{
		Auth:  service.NewAuthService(st, tokens, slogger),
		Docs:  docs,
		Stats: service.NewStatsService(docs, nil),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Name: "HabitLoop Test"},
	}

	s := NewServer(cfg, st, services, events, log)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		store:  st,
	}
}

// signup registers an identity and returns its bearer token.
func (ts *testServer) signup(t *testing.T, mobile string) string {
	t.Helper()

	resp := ts.api.Post("/api/auth/signup", map[string]any{"mobile": mobile})
	require.Contains(t, []int{200, 201}, resp.Code, "signup failed: %s", resp.Body.String())

	var envelope testEnvelope[SessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}
