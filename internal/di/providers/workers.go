package providers

import (
	"github.com/samber/do/v2"

	"github.com/rememdia/rememdia-server/internal/config"
	"github.com/rememdia/rememdia-server/internal/logger"
	"github.com/rememdia/rememdia-server/internal/notify"
	"github.com/rememdia/rememdia-server/internal/scheduler"
)

// SchedulerHandle wraps the scheduler with shutdown capability.
type SchedulerHandle struct {
	*scheduler.Scheduler
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	h.Scheduler.Stop()
	return nil
}

// ProvideScheduler provides the reminder and reading scan scheduler.
func ProvideScheduler(i do.Injector) (*SchedulerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifier := do.MustInvoke[notify.Notifier](i)
	log := do.MustInvoke[*logger.Logger](i)

	sched := scheduler.New(storeHandle.Store, notifier, scheduler.Config{
		ReminderInterval: cfg.Scheduler.ReminderInterval,
		ReadingInterval:  cfg.Scheduler.ReadingInterval,
		ScanNotes:        cfg.Scheduler.ScanNotes,
	}, log.Logger)

	sched.Start()

	return &SchedulerHandle{Scheduler: sched}, nil
}
