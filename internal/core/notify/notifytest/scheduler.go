// Package notifytest provides a manually advanced scheduler for driving the
// notification coordinator's grace delay in tests.
package notifytest

import (
	"sort"
	"sync"
	"time"

	"github.com/colonyops/workbench/internal/core/notify"
)

// Scheduler is a notify.Scheduler whose clock only moves when Advance is
// called. Callbacks run synchronously inside Advance.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	s       *Scheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *task) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// New returns a Scheduler positioned at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

var _ notify.Scheduler = (*Scheduler)(nil)

// AfterFunc registers f to run once the clock has advanced by d.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) notify.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &task{s: s, at: s.now + d, seq: s.seq, fn: f}
	s.seq++
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every due callback in
// deadline order.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*task
	for _, t := range s.tasks {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.prune()
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of callbacks that have neither run nor been
// stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) prune() {
	alive := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			alive = append(alive, t)
		}
	}
	s.tasks = alive
}
