// Package domain defines the core data model: per-user documents holding
// habits, completion history keyed by calendar day, and dated task lists.
//
// Documents are treated as immutable snapshots. Every mutating operation
// returns a fresh copy, so derivation code can hold a snapshot without
// worrying about concurrent edits.
package domain

import (
	domainerrors "github.com/habitloop/habitloop-server/internal/errors"
	"github.com/habitloop/habitloop-server/internal/util"
)

// Document is the complete persisted state for one identity. It is the sole
// unit of persistence and synchronization.
type Document struct {
	Identity    string                  `json:"identity"`
	Habits      []Habit                 `json:"habits"`
	History     map[string]HistoryEntry `json:"history"`
	TasksByDate map[string][]Task       `json:"tasksByDate"`
}

// NewDocument creates a default-seeded document for an identity.
func NewDocument(identity string) *Document {
	return &Document{
		Identity:    identity,
		Habits:      DefaultHabits(),
		History:     make(map[string]HistoryEntry),
		TasksByDate: make(map[string][]Task),
	}
}

// Normalize repairs a document loaded from storage or a client upsert:
// nil maps become empty maps, and an empty habit list falls back to the
// default seed set.
func (d *Document) Normalize() {
	if len(d.Habits) == 0 {
		d.Habits = DefaultHabits()
	}
	if d.History == nil {
		d.History = make(map[string]HistoryEntry)
	}
	for key, entry := range d.History {
		if entry.Habits == nil {
			entry.Habits = make(map[string]bool)
			d.History[key] = entry
		}
	}
	if d.TasksByDate == nil {
		d.TasksByDate = make(map[string][]Task)
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Identity:    d.Identity,
		Habits:      make([]Habit, len(d.Habits)),
		History:     make(map[string]HistoryEntry, len(d.History)),
		TasksByDate: make(map[string][]Task, len(d.TasksByDate)),
	}
	copy(out.Habits, d.Habits)
	for key, entry := range d.History {
		habits := make(map[string]bool, len(entry.Habits))
		for id, done := range entry.Habits {
			habits[id] = done
		}
		out.History[key] = HistoryEntry{Habits: habits}
	}
	for key, tasks := range d.TasksByDate {
		list := make([]Task, len(tasks))
		copy(list, tasks)
		out.TasksByDate[key] = list
	}
	return out
}

// HabitByID returns the habit with the given id, if present.
func (d *Document) HabitByID(id string) (Habit, bool) {
	for _, h := range d.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// TaskByID returns the task with the given id on a date's list, if present.
func (d *Document) TaskByID(dateKey, taskID string) (Task, bool) {
	for _, t := range d.TasksByDate[dateKey] {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}

// WithHabitAdded returns a snapshot with a new habit appended. The id is
// derived from the label as a slug, suffixed on collision. Every existing
// history entry is back-filled with false for the new id.
func (d *Document) WithHabitAdded(label string) (*Document, Habit, error) {
	slug := util.Slugify(label)
	if slug == "" {
		return nil, Habit{}, domainerrors.Validation("habit label must contain at least one letter or digit")
	}

	out := d.Clone()
	id := util.UniqueSlug(slug, func(candidate string) bool {
		_, taken := out.HabitByID(candidate)
		return taken
	})
	habit := Habit{ID: id, Label: label}
	out.Habits = append(out.Habits, habit)

	for key, entry := range out.History {
		entry.Habits[id] = false
		out.History[key] = entry
	}
	return out, habit, nil
}

// WithHabitRenamed returns a snapshot with the habit's label replaced in
// place. The id is stable across renames.
func (d *Document) WithHabitRenamed(id, label string) (*Document, error) {
	if _, ok := d.HabitByID(id); !ok {
		return nil, domainerrors.NotFoundf("habit %q not found", id)
	}
	out := d.Clone()
	for i := range out.Habits {
		if out.Habits[i].ID == id {
			out.Habits[i].Label = label
			break
		}
	}
	return out, nil
}

// WithHabitRemoved returns a snapshot without the habit. Its key is stripped
// from every history entry.
func (d *Document) WithHabitRemoved(id string) (*Document, error) {
	if _, ok := d.HabitByID(id); !ok {
		return nil, domainerrors.NotFoundf("habit %q not found", id)
	}
	out := d.Clone()
	habits := out.Habits[:0]
	for _, h := range out.Habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}
	out.Habits = habits
	for key, entry := range out.History {
		delete(entry.Habits, id)
		out.History[key] = entry
	}
	return out, nil
}

// WithHabitDone returns a snapshot with one habit's completion state set for
// one date. The history entry is created on first touch.
func (d *Document) WithHabitDone(dateKey, habitID string, done bool) (*Document, error) {
	if _, ok := d.HabitByID(habitID); !ok {
		return nil, domainerrors.NotFoundf("habit %q not found", habitID)
	}
	out := d.Clone()
	entry, ok := out.History[dateKey]
	if !ok {
		entry = HistoryEntry{Habits: make(map[string]bool)}
	}
	entry.Habits[habitID] = done
	out.History[dateKey] = entry
	return out, nil
}

// WithTaskAdded returns a snapshot with the task prepended to the date's
// list. Insertion order is newest first.
func (d *Document) WithTaskAdded(dateKey string, task Task) *Document {
	out := d.Clone()
	out.TasksByDate[dateKey] = append([]Task{task}, out.TasksByDate[dateKey]...)
	return out
}

// WithTaskUpdated returns a snapshot with the task replaced in place on the
// date's list, matched by id.
func (d *Document) WithTaskUpdated(dateKey string, task Task) (*Document, error) {
	out := d.Clone()
	list := out.TasksByDate[dateKey]
	for i := range list {
		if list[i].ID == task.ID {
			list[i] = task
			return out, nil
		}
	}
	return nil, domainerrors.NotFoundf("task %q not found on %s", task.ID, dateKey)
}

// WithTaskRemoved returns a snapshot without the task. An emptied list is
// dropped from the map.
func (d *Document) WithTaskRemoved(dateKey, taskID string) (*Document, error) {
	out := d.Clone()
	list := out.TasksByDate[dateKey]
	for i := range list {
		if list[i].ID == taskID {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(out.TasksByDate, dateKey)
			} else {
				out.TasksByDate[dateKey] = list
			}
			return out, nil
		}
	}
	return nil, domainerrors.NotFoundf("task %q not found on %s", taskID, dateKey)
}
