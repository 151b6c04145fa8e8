package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCreateAndGetDocument(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	doc := domain.NewDocument("15551234567")
	doc.History["2025-03-15"] = domain.HistoryEntry{Habits: map[string]bool{"read": true}}
	doc.TasksByDate["2025-03-15"] = []domain.Task{{ID: "task-1", Text: "buy milk", ReminderTime: "09:00"}}

	require.NoError(t, st.CreateDocument(ctx, doc))

	got, err := st.GetDocument(ctx, "15551234567")
	require.NoError(t, err)
	assert.Equal(t, "15551234567", got.Identity)
	assert.Len(t, got.Habits, 7)
	assert.True(t, got.History["2025-03-15"].Habits["read"])
	require.Len(t, got.TasksByDate["2025-03-15"], 1)
	assert.Equal(t, "09:00", got.TasksByDate["2025-03-15"][0].ReminderTime)
}

func TestCreateDocument_Duplicate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateDocument(ctx, domain.NewDocument("1")))
	err := st.CreateDocument(ctx, domain.NewDocument("1"))
	assert.ErrorIs(t, err, ErrDocumentExists)
}

func TestGetDocument_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetDocument(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestGetOrCreateDocument_SeedsOnFirstAccess(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	doc, err := st.GetOrCreateDocument(ctx, "15551234567")
	require.NoError(t, err)
	assert.Len(t, doc.Habits, 7, "first access seeds the default habit set")

	exists, err := st.DocumentExists(ctx, "15551234567")
	require.NoError(t, err)
	assert.True(t, exists)

	// Second access returns the stored copy, not a fresh seed.
	doc.History["2025-03-15"] = domain.HistoryEntry{Habits: map[string]bool{"read": true}}
	require.NoError(t, st.PutDocument(ctx, doc))

	again, err := st.GetOrCreateDocument(ctx, "15551234567")
	require.NoError(t, err)
	assert.True(t, again.History["2025-03-15"].Habits["read"])
}

func TestPutDocument_LastWriteWins(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	doc := domain.NewDocument("1")
	require.NoError(t, st.PutDocument(ctx, doc))

	next, _, err := doc.WithHabitAdded("Stretch")
	require.NoError(t, err)
	require.NoError(t, st.PutDocument(ctx, next))

	got, err := st.GetDocument(ctx, "1")
	require.NoError(t, err)
	_, ok := got.HabitByID("stretch")
	assert.True(t, ok)
}

func TestGetDocument_NormalizesStoredShape(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// A client upsert may legally omit every collection.
	require.NoError(t, st.PutDocument(ctx, &domain.Document{Identity: "1"}))

	got, err := st.GetDocument(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, got.Habits, 7, "empty habits fall back to the seed set")
	assert.NotNil(t, got.History)
	assert.NotNil(t, got.TasksByDate)
}
