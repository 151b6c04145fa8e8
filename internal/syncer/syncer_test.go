package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/domain"
)

type recordingSaver struct {
	mu     sync.Mutex
	saves  []*domain.Document
	failing bool
}

func (r *recordingSaver) PutDocument(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("disk full")
	}
	r.saves = append(r.saves, doc)
	return nil
}

func (r *recordingSaver) saved() []*domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Document(nil), r.saves...)
}

func newTestSyncer(interval time.Duration) (*Syncer, *recordingSaver) {
	saver := &recordingSaver{}
	return New(saver, interval, slog.New(slog.DiscardHandler)), saver
}

func docWithHabit(identity, label string) *domain.Document {
	doc := domain.NewDocument(identity)
	next, _, err := doc.WithHabitAdded(label)
	if err != nil {
		panic(err)
	}
	return next
}

func waitForSaves(t *testing.T, saver *recordingSaver, want int) []*domain.Document {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := saver.saved(); len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves, got %d", want, len(saver.saved()))
	return nil
}

func TestNotify_BurstProducesOneWriteWithFinalState(t *testing.T) {
	s, saver := newTestSyncer(50 * time.Millisecond)

	s.Notify("alice", docWithHabit("alice", "First"))
	s.Notify("alice", docWithHabit("alice", "Second"))
	s.Notify("alice", docWithHabit("alice", "Third"))

	waitForSaves(t, saver, 1)

	// Allow a grace period for any spurious extra write.
	time.Sleep(150 * time.Millisecond)
	saves := saver.saved()
	require.Len(t, saves, 1, "three mutations inside the quiet interval collapse into one write")

	_, ok := saves[0].HabitByID("third")
	assert.True(t, ok, "the persisted snapshot is the state after the last mutation")
}

func TestNotify_SeparateBurstsWriteSeparately(t *testing.T) {
	s, saver := newTestSyncer(30 * time.Millisecond)

	s.Notify("alice", docWithHabit("alice", "First"))
	waitForSaves(t, saver, 1)

	s.Notify("alice", docWithHabit("alice", "Second"))
	saves := waitForSaves(t, saver, 2)
	assert.Len(t, saves, 2)
}

func TestNotify_IdentitiesDebounceIndependently(t *testing.T) {
	s, saver := newTestSyncer(30 * time.Millisecond)

	s.Notify("alice", domain.NewDocument("alice"))
	s.Notify("bob", domain.NewDocument("bob"))

	saves := waitForSaves(t, saver, 2)
	identities := map[string]bool{}
	for _, doc := range saves {
		identities[doc.Identity] = true
	}
	assert.True(t, identities["alice"] && identities["bob"])
}

func TestFlush_WritesPendingImmediately(t *testing.T) {
	s, saver := newTestSyncer(time.Hour)

	s.Notify("alice", docWithHabit("alice", "Stretch"))
	require.Empty(t, saver.saved())

	require.NoError(t, s.Flush(context.Background()))
	require.Len(t, saver.saved(), 1)

	// The syncer is closed; further notifies are ignored.
	s.Notify("alice", domain.NewDocument("alice"))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, saver.saved(), 1)
}

func TestSaveFailureIsDroppedNotRetried(t *testing.T) {
	s, saver := newTestSyncer(20 * time.Millisecond)
	saver.failing = true

	s.Notify("alice", domain.NewDocument("alice"))
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, saver.saved())

	// A later mutation writes the newer snapshot normally.
	saver.mu.Lock()
	saver.failing = false
	saver.mu.Unlock()

	s.Notify("alice", docWithHabit("alice", "Recovered"))
	saves := waitForSaves(t, saver, 1)
	_, ok := saves[0].HabitByID("recovered")
	assert.True(t, ok)
}
