package reminder

import (
	"log/slog"
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
	"github.com/habitloop/habitloop-server/internal/sse"
)

// SSENotifier delivers reminders over the identity's event stream when one
// is connected, and logs the reminder otherwise. Either way the fire is
// consumed: there is exactly one attempt per reminder.
type SSENotifier struct {
	manager *sse.Manager
	logger  *slog.Logger
}

// NewSSENotifier creates the default notifier.
func NewSSENotifier(manager *sse.Manager, logger *slog.Logger) *SSENotifier {
	return &SSENotifier{manager: manager, logger: logger}
}

// NotifyReminder implements Notifier.
func (n *SSENotifier) NotifyReminder(identity, dateKey string, task domain.Task, dueAt time.Time) {
	if n.manager.IsConnected(identity) {
		n.manager.Emit(sse.NewReminderDueEvent(identity, dateKey, task.ID, task.Text, task.ReminderTime, dueAt))
		return
	}

	n.logger.Info("reminder due with no connected client",
		slog.String("identity", identity),
		slog.String("date_key", dateKey),
		slog.String("task_id", task.ID),
		slog.String("task_text", task.Text),
		slog.Time("due_at", dueAt))
}
