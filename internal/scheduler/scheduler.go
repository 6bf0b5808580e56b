// Package scheduler runs the daily reminder reset. Completed reminders
// become pending again at midnight so the recurring cycle starts fresh.
package scheduler

import (
	"context"
	"log"
	"time"

	"amparo/internal/services/reminder"
)

// Scheduler fires the reminder reset once per day, at the first tick
// after local midnight.
type Scheduler struct {
	reminders reminder.Service
	interval  time.Duration
	stopChan  chan struct{}
	lastRun   time.Time
}

func New(reminders reminder.Service) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		interval:  time.Minute,
		stopChan:  make(chan struct{}),
		// Baseline at boot time: completions made earlier today survive a
		// restart, the first reset waits for the next date change.
		lastRun: time.Now(),
	}
}

// Start blocks until Stop is called or the context is cancelled. Run it
// in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	log.Println("scheduler: daily reminder reset active")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.maybeReset(now)
		}
	}
}

// Stop terminates the loop. Safe to call once.
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) maybeReset(now time.Time) {
	y, m, d := now.Date()
	ly, lm, ld := s.lastRun.Date()
	if y == ly && m == lm && d == ld {
		return
	}

	count, err := s.reminders.ResetCycle()
	if err != nil {
		log.Printf("scheduler: reminder reset failed: %v", err)
		return
	}
	s.lastRun = now
	if count > 0 {
		log.Printf("scheduler: reset %d completed reminders", count)
	}
}
