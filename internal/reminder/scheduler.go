// Package reminder turns tasksByDate snapshots into one-shot reminder
// deliveries. Pending fires are held in a cancellable registry so that any
// change to the snapshot replaces the whole schedule.
package reminder

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/habitloop/habitloop-server/internal/derive"
	"github.com/habitloop/habitloop-server/internal/domain"
)

// Notifier delivers a due reminder. Implementations get exactly one call
// per fire and must not retry on their own.
type Notifier interface {
	NotifyReminder(identity, dateKey string, task domain.Task, dueAt time.Time)
}

type pending struct {
	timer   Timer
	dateKey string
}

type schedule struct {
	gen     uint64
	entries map[string]pending
}

// Scheduler manages pending reminder timers per identity.
// Reschedule is total: it cancels every pending timer for the identity
// before registering fresh ones, so the schedule is always a pure function
// of the latest tasksByDate snapshot.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	notifier Notifier
	logger   *slog.Logger

	// identity -> current schedule; each Reschedule bumps the generation so
	// timers from a replaced schedule can never consume a fresh slot.
	registry map[string]*schedule
	lastGen  uint64
}

// NewScheduler creates a scheduler delivering through the given notifier.
func NewScheduler(clock Clock, notifier Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		registry: make(map[string]*schedule),
	}
}

// FireInstant combines a date key and an "HH:MM" time-of-day into the
// absolute local-time instant the reminder is due.
func FireInstant(dateKey, reminderTime string) (time.Time, error) {
	day, err := derive.ParseDayKey(dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", dateKey, err)
	}
	tod, err := time.Parse("15:04", reminderTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reminder time %q: %w", reminderTime, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.Local), nil
}

// Reschedule replaces the identity's entire schedule with one derived from
// the given snapshot. Tasks whose fire instant is already in the past are
// skipped; there is no catch-up firing.
func (s *Scheduler) Reschedule(identity string, tasksByDate map[string][]domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(identity)

	s.lastGen++
	gen := s.lastGen
	now := s.clock.Now()
	entries := make(map[string]pending)

	for dateKey, tasks := range tasksByDate {
		for _, task := range tasks {
			if !task.HasReminder() {
				continue
			}

			dueAt, err := FireInstant(dateKey, task.ReminderTime)
			if err != nil {
				s.logger.Warn("skipping unparseable reminder",
					slog.String("identity", identity),
					slog.String("task_id", task.ID),
					slog.String("error", err.Error()))
				continue
			}
			if !dueAt.After(now) {
				continue
			}

			taskID, dk, t := task.ID, dateKey, task
			timer := s.clock.AfterFunc(dueAt.Sub(now), func() {
				s.fire(identity, gen, taskID, dk, t, dueAt)
			})
			entries[task.ID] = pending{timer: timer, dateKey: dateKey}
		}
	}

	if len(entries) > 0 {
		s.registry[identity] = &schedule{gen: gen, entries: entries}
	}

	s.logger.Debug("reminders rescheduled",
		slog.String("identity", identity),
		slog.Int("pending", len(entries)))
}

// CancelAll stops every pending reminder for the identity.
func (s *Scheduler) CancelAll(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(identity)
}

// Shutdown stops every pending reminder for every identity.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for identity := range s.registry {
		s.cancelLocked(identity)
	}
	s.logger.Info("reminder scheduler stopped")
}

// PendingCount returns the number of registered fires for the identity.
func (s *Scheduler) PendingCount(identity string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sched, ok := s.registry[identity]; ok {
		return len(sched.entries)
	}
	return 0
}

func (s *Scheduler) cancelLocked(identity string) {
	if sched, ok := s.registry[identity]; ok {
		for _, p := range sched.entries {
			p.timer.Stop()
		}
		delete(s.registry, identity)
	}
}

// fire removes the task from the registry and hands it to the notifier.
// A fire from a replaced schedule is dropped: its Stop came too late, but
// its generation no longer matches.
func (s *Scheduler) fire(identity string, gen uint64, taskID, dateKey string, task domain.Task, dueAt time.Time) {
	s.mu.Lock()
	sched, ok := s.registry[identity]
	if !ok || sched.gen != gen {
		s.mu.Unlock()
		return
	}
	if _, ok := sched.entries[taskID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(sched.entries, taskID)
	if len(sched.entries) == 0 {
		delete(s.registry, identity)
	}
	s.mu.Unlock()

	s.notifier.NotifyReminder(identity, dateKey, task, dueAt)
}
