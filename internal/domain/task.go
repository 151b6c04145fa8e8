package domain

// Task is a single to-do item on a date's list.
// ReminderTime is a local "HH:MM" time of day, or empty for no reminder.
type Task struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Done         bool   `json:"done"`
	ReminderTime string `json:"reminderTime"`
}

// HasReminder reports whether the task carries a reminder time.
func (t Task) HasReminder() bool {
	return t.ReminderTime != ""
}
