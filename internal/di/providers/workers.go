package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/habitloop/habitloop-server/internal/config"
	"github.com/habitloop/habitloop-server/internal/logger"
	"github.com/habitloop/habitloop-server/internal/reminder"
	"github.com/habitloop/habitloop-server/internal/syncer"
)

// SchedulerHandle wraps the reminder scheduler with shutdown capability.
type SchedulerHandle struct {
	*reminder.Scheduler
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	h.Scheduler.Shutdown()
	return nil
}

// ProvideScheduler provides the one-shot reminder scheduler.
func ProvideScheduler(i do.Injector) (*SchedulerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	notifier := reminder.NewSSENotifier(sseHandle.Manager, log.Logger)
	scheduler := reminder.NewScheduler(reminder.NewRealClock(), notifier, log.Logger)

	log.Info("Reminder scheduler started")

	return &SchedulerHandle{Scheduler: scheduler}, nil
}

// SyncerHandle wraps the document synchronizer with shutdown capability.
type SyncerHandle struct {
	*syncer.Syncer
}

// Shutdown implements do.Shutdownable.
// Pending snapshots are flushed so nothing mutated inside the debounce
// window is lost on exit.
func (h *SyncerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Flush(ctx)
}

// ProvideSyncer provides the debounced document synchronizer.
func ProvideSyncer(i do.Injector) (*SyncerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	sync := syncer.New(storeHandle.Store, cfg.Sync.DebounceInterval, log.Logger)

	log.Info("Document syncer started", "debounce", cfg.Sync.DebounceInterval)

	return &SyncerHandle{Syncer: sync}, nil
}
