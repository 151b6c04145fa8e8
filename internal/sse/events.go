// Package sse implements Server-Sent Events for pushing reminders and
// document changes to connected clients.
package sse

import (
	"time"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventReminderDue fires when a task's reminder time is reached.
	EventReminderDue EventType = "reminder.due"

	// EventDocumentUpdated fires after a document write from another session,
	// so a second open client can refetch.
	EventDocumentUpdated EventType = "document.updated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// Identity filter. When set, the event is only delivered to clients
	// authenticated as this identity. Empty string means "broadcast to all".
	Identity string `json:"-"`
}

// ReminderDueEventData is the data payload for reminder.due events.
type ReminderDueEventData struct {
	DueAt    time.Time `json:"due_at"`
	DateKey  string    `json:"date_key"`
	TaskID   string    `json:"task_id"`
	TaskText string    `json:"task_text"`
	Time     string    `json:"time"`
}

// DocumentUpdatedEventData is the data payload for document.updated events.
type DocumentUpdatedEventData struct {
	UpdatedAt time.Time `json:"updated_at"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewReminderDueEvent creates a reminder.due event targeted at one identity.
func NewReminderDueEvent(identity, dateKey, taskID, taskText, reminderTime string, dueAt time.Time) Event {
	return Event{
		Type:      EventReminderDue,
		Timestamp: time.Now(),
		Identity:  identity,
		Data: ReminderDueEventData{
			DueAt:    dueAt,
			DateKey:  dateKey,
			TaskID:   taskID,
			TaskText: taskText,
			Time:     reminderTime,
		},
	}
}

// NewDocumentUpdatedEvent creates a document.updated event targeted at one identity.
func NewDocumentUpdatedEvent(identity string) Event {
	return Event{
		Type:      EventDocumentUpdated,
		Timestamp: time.Now(),
		Identity:  identity,
		Data:      DocumentUpdatedEventData{UpdatedAt: time.Now()},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}
