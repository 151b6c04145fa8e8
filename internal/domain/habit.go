package domain

// Habit is a tracked daily behavior. The ID is derived from the label as a
// slug and is unique within a document.
type Habit struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// HistoryEntry records which habits were completed on one calendar day.
// The map may carry stale keys for habits that were since deleted; completion
// math ignores them.
type HistoryEntry struct {
	Habits map[string]bool `json:"habits"`
}

// DefaultHabits returns the seed habit set given to every new document.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "wake-up-early", Label: "Wake up early"},
		{ID: "drink-water", Label: "Drink water"},
		{ID: "exercise", Label: "Exercise"},
		{ID: "read", Label: "Read"},
		{ID: "meditate", Label: "Meditate"},
		{ID: "journal", Label: "Journal"},
		{ID: "sleep-on-time", Label: "Sleep on time"},
	}
}
