// Package scheduler runs periodic scans over flagged items and delivers
// notifications for each match.
package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/notify"
	"github.com/rememdia/rememdia-server/internal/store"
)

// Config controls the scan loops.
type Config struct {
	ReminderInterval time.Duration
	ReadingInterval  time.Duration

	// ScanNotes includes flagged notes in the scans, not just links.
	ScanNotes bool
}

// Scheduler runs one goroutine per scan kind. Each scan executes inline in
// its ticker loop, so a slow scan can never overlap the next tick of the
// same kind. The two kinds run independently.
type Scheduler struct {
	store    store.Store
	notifier notify.Notifier
	cfg      Config
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. Call Start to begin scanning.
func New(store store.Store, notifier notify.Notifier, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start launches the reminder and reading scan loops.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go s.run(ctx, "reminder", s.cfg.ReminderInterval)
	go s.run(ctx, "reading", s.cfg.ReadingInterval)

	s.logger.Info("scheduler started",
		"reminder_interval", s.cfg.ReminderInterval,
		"reading_interval", s.cfg.ReadingInterval,
		"scan_notes", s.cfg.ScanNotes,
	)
}

// Stop cancels the scan loops and waits for in-flight scans to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, kind string, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.scan(ctx, kind)
		case <-ctx.Done():
			return
		}
	}
}

// filterFor returns the filter selecting items flagged for the given kind.
func filterFor(kind string) domain.ItemFilter {
	if kind == "reminder" {
		return domain.Reminders()
	}
	return domain.ReadingList()
}

// scan notifies once per flagged item. A store error aborts this tick only;
// a notify failure is logged and the remaining items still get delivered.
func (s *Scheduler) scan(ctx context.Context, kind string) {
	filter := filterFor(kind)

	links, err := s.store.ListLinks(ctx, filter)
	if err != nil {
		s.logger.Warn("scan failed to list links", "kind", kind, "error", err)
		return
	}

	for _, link := range links {
		if ctx.Err() != nil {
			return
		}
		if err := s.notifier.Notify(ctx, renderLinkMessage(kind, link)); err != nil {
			s.logger.Warn("notification failed",
				"kind", kind,
				"link_id", link.ID,
				"error", err,
			)
		}
	}

	if !s.cfg.ScanNotes {
		return
	}

	notes, err := s.store.ListNotes(ctx, filter)
	if err != nil {
		s.logger.Warn("scan failed to list notes", "kind", kind, "error", err)
		return
	}

	for _, note := range notes {
		if ctx.Err() != nil {
			return
		}
		if err := s.notifier.Notify(ctx, renderNoteMessage(kind, note)); err != nil {
			s.logger.Warn("notification failed",
				"kind", kind,
				"note_id", note.ID,
				"error", err,
			)
		}
	}
}

func renderLinkMessage(kind string, link *domain.Link) string {
	var b strings.Builder
	b.WriteString(kindLabel(kind))
	b.WriteString(": ")
	b.WriteString(link.URL)
	if link.Summary != "" {
		b.WriteString("\n")
		b.WriteString(link.Summary)
	}
	return b.String()
}

func renderNoteMessage(kind string, note *domain.Note) string {
	return kindLabel(kind) + ": " + note.Text
}

func kindLabel(kind string) string {
	if kind == "reading" {
		return "Reading"
	}
	return "Reminder"
}
