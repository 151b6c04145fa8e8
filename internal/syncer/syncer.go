// Package syncer debounces document persistence: after a mutation, it waits
// for a quiet interval before writing, so a burst of edits produces one
// store write carrying the final snapshot.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// Saver persists a full document snapshot.
type Saver interface {
	PutDocument(ctx context.Context, doc *domain.Document) error
}

type pending struct {
	timer    *time.Timer
	snapshot *domain.Document
}

// Syncer holds at most one pending write per identity. Every Notify within
// the quiet interval resets the timer and replaces the snapshot, so the
// write that eventually lands always carries the latest state.
type Syncer struct {
	mu       sync.Mutex
	saver    Saver
	logger   *slog.Logger
	interval time.Duration
	pending  map[string]*pending
	closed   bool
}

// New creates a syncer writing through saver after the given quiet interval.
func New(saver Saver, interval time.Duration, logger *slog.Logger) *Syncer {
	return &Syncer{
		saver:    saver,
		logger:   logger,
		interval: interval,
		pending:  make(map[string]*pending),
	}
}

// Notify schedules a debounced write of the snapshot. The snapshot must not
// be mutated by the caller afterwards; the document service hands over
// immutable copies.
func (s *Syncer) Notify(identity string, snapshot *domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if p, ok := s.pending[identity]; ok {
		p.timer.Stop()
		p.snapshot = snapshot
		p.timer.Reset(s.interval)
		return
	}

	p := &pending{snapshot: snapshot}
	p.timer = time.AfterFunc(s.interval, func() {
		s.flushIdentity(identity)
	})
	s.pending[identity] = p
}

// flushIdentity writes the pending snapshot for one identity, if any.
func (s *Syncer) flushIdentity(identity string) {
	s.mu.Lock()
	p, ok := s.pending[identity]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, identity)
	snapshot := p.snapshot
	s.mu.Unlock()

	s.save(identity, snapshot)
}

// Flush writes every pending snapshot immediately and stops the syncer.
// Called on shutdown so the quiet interval never loses the last edits.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	remaining := make(map[string]*domain.Document, len(s.pending))
	for identity, p := range s.pending {
		p.timer.Stop()
		remaining[identity] = p.snapshot
	}
	s.pending = make(map[string]*pending)
	s.mu.Unlock()

	for identity, snapshot := range remaining {
		if ctx.Err() != nil {
			s.logger.Warn("flush interrupted, pending writes lost",
				slog.Int("remaining", len(remaining)))
			return ctx.Err()
		}
		s.save(identity, snapshot)
	}

	s.logger.Info("syncer flushed", slog.Int("written", len(remaining)))
	return nil
}

// save performs the actual write. Failures are logged and dropped; the next
// mutation's debounced write will carry a newer snapshot anyway.
func (s *Syncer) save(identity string, snapshot *domain.Document) {
	if err := s.saver.PutDocument(context.Background(), snapshot); err != nil {
		s.logger.Error("debounced save failed",
			slog.String("identity", identity),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("document persisted", slog.String("identity", identity))
}
