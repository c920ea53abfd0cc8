package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"TrendLedger/internal/collector"
	"TrendLedger/internal/notifier"
	"TrendLedger/internal/recorder"
)

// Scheduler triggers batch indicator calculation on a cron cadence.
// Retry and backoff policy lives here, outside the calculation core:
// a failed run simply waits for the next tick.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Store
	Notifier  *notifier.TelegramNotifier
	Symbols   []string
	DaysBack  int
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. The notifier may be nil, in which
// case run summaries are only logged.
func NewScheduler(ctx context.Context, col *collector.Collector, store recorder.Store, tn *notifier.TelegramNotifier, symbols []string, daysBack int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  store,
		Notifier:  tn,
		Symbols:   symbols,
		DaysBack:  daysBack,
		Ctx:       ctx,
	}
}

// Register registers the daily batch calculation task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyBatch); err != nil {
		return fmt.Errorf("register daily batch: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunBatchNow executes the daily batch immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunBatchNow() {
	s.dailyBatch()
}

func (s *Scheduler) dailyBatch() {
	log.Println("[INFO] running daily indicator batch")
	result := s.Collector.CalculateBatch(s.Ctx, s.Symbols, time.Now(), s.DaysBack)
	s.trySend(notifier.FormatBatchSummary(result))
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/run":
		go s.dailyBatch()
		return "Batch calculation started."
	case "/latest":
		if len(fields) < 2 {
			return "Usage: /latest SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		rec, err := s.Recorder.GetLatest(symbol)
		if err != nil {
			log.Printf("[ERROR] get latest for %s: %v", symbol, err)
			return fmt.Sprintf("Lookup failed for %s.", symbol)
		}
		if rec == nil {
			return fmt.Sprintf("No indicators calculated yet for %s.", symbol)
		}
		return notifier.FormatRecord(rec)
	case "/status":
		return fmt.Sprintf("Tracking %d symbols, lookback %d days, next run %s.",
			len(s.Symbols), s.DaysBack, s.nextRun())
	default:
		return "Commands:\n/run - calculate now\n/latest SYMBOL\n/status"
	}
}

func (s *Scheduler) nextRun() string {
	entries := s.Cron.Entries()
	if len(entries) == 0 {
		return "unscheduled"
	}
	return entries[0].Next.Format("2006-01-02 15:04 MST")
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
