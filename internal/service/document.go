package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
	domainerrors "github.com/habitloop/habitloop-server/internal/errors"
	"github.com/habitloop/habitloop-server/internal/id"
	"github.com/habitloop/habitloop-server/internal/reminder"
	"github.com/habitloop/habitloop-server/internal/sse"
	"github.com/habitloop/habitloop-server/internal/store"
	"github.com/habitloop/habitloop-server/internal/syncer"
)

// docEntry holds the in-memory snapshot for one identity. The per-entry
// mutex serializes mutations so there is exactly one logical writer per
// document; concurrent sessions for the same identity are last-write-wins.
type docEntry struct {
	mu  sync.Mutex
	doc *domain.Document
}

// DocumentService owns the in-memory documents. All mutations go through
// the document's immutable With* operations, so a snapshot handed out to a
// reader or to the syncer is never modified afterwards.
type DocumentService struct {
	store     *store.Store
	syncer    *syncer.Syncer
	scheduler *reminder.Scheduler
	events    *sse.Manager
	logger    *slog.Logger

	mu      sync.Mutex
	entries map[string]*docEntry
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	store *store.Store,
	sync *syncer.Syncer,
	scheduler *reminder.Scheduler,
	events *sse.Manager,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		store:     store,
		syncer:    sync,
		scheduler: scheduler,
		events:    events,
		logger:    logger,
		entries:   make(map[string]*docEntry),
	}
}

// entry returns the cached entry for the identity, loading the document
// from the store on first access. First load also arms the identity's
// reminders, so a restart does not silently drop pending ones.
func (s *DocumentService) entry(ctx context.Context, identity string) (*docEntry, error) {
	s.mu.Lock()
	e, ok := s.entries[identity]
	if !ok {
		e = &docEntry{}
		s.entries[identity] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		doc, err := s.store.GetOrCreateDocument(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("load document: %w", err)
		}
		e.doc = doc
		s.scheduler.Reschedule(identity, doc.TasksByDate)
	}
	return e, nil
}

// Document returns the current snapshot for the identity.
// The returned document must be treated as read-only.
func (s *DocumentService) Document(ctx context.Context, identity string) (*domain.Document, error) {
	e, err := s.entry(ctx, identity)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc, nil
}

// Replace swaps in a full document as uploaded by the client and schedules
// persistence. The stored identity always comes from the session, never
// from the body.
func (s *DocumentService) Replace(ctx context.Context, identity string, incoming *domain.Document) (*domain.Document, error) {
	e, err := s.entry(ctx, identity)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := incoming.Clone()
	doc.Identity = identity
	doc.Normalize()

	e.doc = doc
	s.afterMutation(identity, doc, true)
	return doc, nil
}

// mutate applies fn to the current snapshot under the identity's writer
// lock and schedules persistence of the result. tasksChanged arms the
// reminder reschedule.
func (s *DocumentService) mutate(ctx context.Context, identity string, tasksChanged bool, fn func(*domain.Document) (*domain.Document, error)) (*domain.Document, error) {
	e, err := s.entry(ctx, identity)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.doc)
	if err != nil {
		return nil, err
	}

	e.doc = next
	s.afterMutation(identity, next, tasksChanged)
	return next, nil
}

// afterMutation runs under the entry lock. Persistence is debounced, the
// reminder schedule is rebuilt from the new snapshot when tasks changed,
// and other open sessions are told to refetch.
func (s *DocumentService) afterMutation(identity string, doc *domain.Document, tasksChanged bool) {
	s.syncer.Notify(identity, doc)
	if tasksChanged {
		s.scheduler.Reschedule(identity, doc.TasksByDate)
	}
	s.events.Emit(sse.NewDocumentUpdatedEvent(identity))
}

// AddHabit creates a habit from a label and back-fills it into history.
func (s *DocumentService) AddHabit(ctx context.Context, identity, label string) (*domain.Document, domain.Habit, error) {
	var habit domain.Habit
	doc, err := s.mutate(ctx, identity, false, func(d *domain.Document) (*domain.Document, error) {
		next, h, err := d.WithHabitAdded(label)
		if err != nil {
			return nil, err
		}
		habit = h
		return next, nil
	})
	if err != nil {
		return nil, domain.Habit{}, err
	}

	s.logger.Info("habit added",
		slog.String("identity", identity),
		slog.String("habit_id", habit.ID))
	return doc, habit, nil
}

// RenameHabit changes a habit's label in place; the id is stable.
func (s *DocumentService) RenameHabit(ctx context.Context, identity, habitID, label string) (*domain.Document, error) {
	if strings.TrimSpace(label) == "" {
		return nil, domainerrors.Validation("habit label is required")
	}
	return s.mutate(ctx, identity, false, func(d *domain.Document) (*domain.Document, error) {
		return d.WithHabitRenamed(habitID, label)
	})
}

// RemoveHabit deletes a habit and strips it from every history entry.
func (s *DocumentService) RemoveHabit(ctx context.Context, identity, habitID string) (*domain.Document, error) {
	doc, err := s.mutate(ctx, identity, false, func(d *domain.Document) (*domain.Document, error) {
		return d.WithHabitRemoved(habitID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("habit removed",
		slog.String("identity", identity),
		slog.String("habit_id", habitID))
	return doc, nil
}

// SetHabitDone records a habit's completion state for one day.
func (s *DocumentService) SetHabitDone(ctx context.Context, identity, dateKey, habitID string, done bool) (*domain.Document, error) {
	return s.mutate(ctx, identity, false, func(d *domain.Document) (*domain.Document, error) {
		return d.WithHabitDone(dateKey, habitID, done)
	})
}

// checkTaskFields validates the user-supplied task fields.
func checkTaskFields(text, reminderTime string) error {
	if strings.TrimSpace(text) == "" {
		return domainerrors.Validation("task text is required")
	}
	if reminderTime != "" {
		if _, err := time.Parse("15:04", reminderTime); err != nil {
			return domainerrors.Validation("reminder time must be formatted HH:MM")
		}
	}
	return nil
}

// AddTask prepends a task to the date's list and returns it with its
// generated id.
func (s *DocumentService) AddTask(ctx context.Context, identity, dateKey, text, reminderTime string) (*domain.Document, domain.Task, error) {
	if err := checkTaskFields(text, reminderTime); err != nil {
		return nil, domain.Task{}, err
	}

	taskID, err := id.Generate("task")
	if err != nil {
		return nil, domain.Task{}, fmt.Errorf("generate task ID: %w", err)
	}

	task := domain.Task{
		ID:           taskID,
		Text:         text,
		ReminderTime: reminderTime,
	}

	doc, err := s.mutate(ctx, identity, true, func(d *domain.Document) (*domain.Document, error) {
		return d.WithTaskAdded(dateKey, task), nil
	})
	if err != nil {
		return nil, domain.Task{}, err
	}

	s.logger.Info("task added",
		slog.String("identity", identity),
		slog.String("date_key", dateKey),
		slog.String("task_id", taskID))
	return doc, task, nil
}

// UpdateTask replaces a task's text, done flag, and reminder time.
func (s *DocumentService) UpdateTask(ctx context.Context, identity, dateKey string, task domain.Task) (*domain.Document, error) {
	if task.ID == "" {
		return nil, domainerrors.Validation("task id is required")
	}
	if err := checkTaskFields(task.Text, task.ReminderTime); err != nil {
		return nil, err
	}
	return s.mutate(ctx, identity, true, func(d *domain.Document) (*domain.Document, error) {
		return d.WithTaskUpdated(dateKey, task)
	})
}

// RemoveTask deletes a task from the date's list.
func (s *DocumentService) RemoveTask(ctx context.Context, identity, dateKey, taskID string) (*domain.Document, error) {
	return s.mutate(ctx, identity, true, func(d *domain.Document) (*domain.Document, error) {
		return d.WithTaskRemoved(dateKey, taskID)
	})
}
