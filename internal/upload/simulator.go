// Package upload schedules the simulated media transfer: a fixed-duration
// delay after which the triggering operation's effect is applied. No bytes
// are read or written; the delay is the entire transfer.
package upload

import (
	"log/slog"
	"sync"
	"time"
)

// Task is the handle for one scheduled transfer.
type Task struct {
	timer *time.Timer
	done  chan struct{}
}

// Wait blocks until the transfer's effect has been applied. Useful for tests
// and for callers that want completion semantics.
func (t *Task) Wait() {
	<-t.done
}

// Simulator runs simulated transfers. Once begun, a transfer always
// completes; there is no cancel path.
type Simulator struct {
	logger *slog.Logger

	mu      sync.Mutex
	pending int
}

// NewSimulator constructs a simulator. logger may be nil.
func NewSimulator(logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{logger: logger}
}

// Begin schedules apply to run after delay and returns the task handle.
func (s *Simulator) Begin(delay time.Duration, apply func()) *Task {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	task := &Task{done: make(chan struct{})}
	task.timer = time.AfterFunc(delay, func() {
		defer close(task.done)
		defer func() {
			s.mu.Lock()
			s.pending--
			s.mu.Unlock()
		}()
		if apply != nil {
			apply()
		}
	})

	s.logger.Debug("simulated transfer scheduled", "delay", delay)
	return task
}

// Pending reports how many transfers are still in flight.
func (s *Simulator) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
