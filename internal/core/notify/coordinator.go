package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const (
	// DefaultGraceDelay is how long a closed record stays readable so the
	// display surface can finish its close transition.
	DefaultGraceDelay = 500 * time.Millisecond
	// DefaultHistorySize bounds the in-memory record history.
	DefaultHistorySize = 50
)

// Options configures a Coordinator. Zero values fall back to defaults.
type Options struct {
	GraceDelay  time.Duration
	HistorySize int
	Scheduler   Scheduler
	Logger      zerolog.Logger
	Now         func() time.Time
}

// Coordinator owns the single current notification record. Publishing always
// replaces the current record; closing hides it immediately and clears it
// after the grace delay unless a newer record was published in between.
//
// Subscribers are invoked synchronously after each transition, outside the
// internal lock, so they may call back into the Coordinator.
type Coordinator struct {
	grace       time.Duration
	historySize int
	sched       Scheduler
	logger      zerolog.Logger
	now         func() time.Time

	mu          sync.Mutex
	current     *Record
	open        bool
	clearTask   Task
	clearFor    string
	history     []Record
	subscribers map[int]Subscriber
	nextSubID   int
}

// New creates a Coordinator.
func New(opts Options) *Coordinator {
	if opts.GraceDelay <= 0 {
		opts.GraceDelay = DefaultGraceDelay
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Coordinator{
		grace:       opts.GraceDelay,
		historySize: opts.HistorySize,
		sched:       opts.Scheduler,
		logger:      opts.Logger,
		now:         opts.Now,
		subscribers: make(map[int]Subscriber),
	}
}

// Subscribe registers fn for every transition and returns a function that
// removes the subscription.
func (c *Coordinator) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Publish makes a new record current and visible, replacing any existing
// record even if it has not been dismissed yet. A pending clear is cancelled.
func (c *Coordinator) Publish(severity Severity, message string) Record {
	rec := Record{
		ID:        ulid.Make().String(),
		Severity:  severity,
		Message:   message,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	c.cancelClearLocked()
	c.current = &rec
	c.open = true
	c.history = append([]Record{rec}, c.history...)
	if len(c.history) > c.historySize {
		c.history = c.history[:c.historySize]
	}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.logger.Debug().
		Str("record_id", rec.ID).
		Str("severity", string(rec.Severity)).
		Str("message", rec.Message).
		Msg("notification published")

	dispatch(subs, Event{Kind: EventPublished, Record: rec, Open: true})
	return rec
}

// Successf publishes a success record.
func (c *Coordinator) Successf(format string, args ...any) Record {
	return c.Publish(SeveritySuccess, fmt.Sprintf(format, args...))
}

// Errorf publishes an error record.
func (c *Coordinator) Errorf(format string, args ...any) Record {
	return c.Publish(SeverityError, fmt.Sprintf(format, args...))
}

// Warnf publishes a warning record.
func (c *Coordinator) Warnf(format string, args ...any) Record {
	return c.Publish(SeverityWarning, fmt.Sprintf(format, args...))
}

// Infof publishes an info record.
func (c *Coordinator) Infof(format string, args ...any) Record {
	return c.Publish(SeverityInfo, fmt.Sprintf(format, args...))
}

// Current returns the current record. The record may still exist while
// Open reports false, during the grace delay.
func (c *Coordinator) Current() (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Record{}, false
	}
	return *c.current, true
}

// Open reports whether the current record should be visible.
func (c *Coordinator) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Key returns the display key of the current record, or "" when there is
// none. Display surfaces remount whenever the key changes.
func (c *Coordinator) Key() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return ""
	}
	return c.current.ID
}

// History returns published records, newest first.
func (c *Coordinator) History() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.history))
	copy(out, c.history)
	return out
}

// RequestClose hides the current record and schedules it to be cleared after
// the grace delay. Calling it when nothing is visible is a no-op.
func (c *Coordinator) RequestClose() {
	c.mu.Lock()
	if c.current == nil || !c.open {
		c.mu.Unlock()
		return
	}

	c.open = false
	rec := *c.current
	c.cancelClearLocked()
	c.clearFor = rec.ID
	c.clearTask = c.sched.AfterFunc(c.grace, func() {
		c.clear(rec.ID)
	})
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.logger.Debug().Str("record_id", rec.ID).Dur("grace", c.grace).Msg("notification closing")

	dispatch(subs, Event{Kind: EventClosed, Record: rec, Open: false})
}

// clear drops the current record if it is still the one the clear was
// scheduled for.
func (c *Coordinator) clear(id string) {
	c.mu.Lock()
	if c.clearFor == id {
		c.clearTask = nil
		c.clearFor = ""
	}
	if c.current == nil || c.current.ID != id || c.open {
		c.mu.Unlock()
		c.logger.Debug().Str("record_id", id).Msg("stale notification clear ignored")
		return
	}

	rec := *c.current
	c.current = nil
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.logger.Debug().Str("record_id", id).Msg("notification cleared")

	dispatch(subs, Event{Kind: EventCleared, Record: rec, Open: false})
}

func (c *Coordinator) cancelClearLocked() {
	if c.clearTask != nil {
		c.clearTask.Stop()
	}
	c.clearTask = nil
	c.clearFor = ""
}

func (c *Coordinator) subscribersLocked() []Subscriber {
	subs := make([]Subscriber, 0, len(c.subscribers))
	for i := 0; i < c.nextSubID; i++ {
		if fn, ok := c.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

func dispatch(subs []Subscriber, e Event) {
	for _, fn := range subs {
		fn(e)
	}
}
