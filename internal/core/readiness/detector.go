// Package readiness detects, once per process and within a deadline, whether
// the interop API has attached to the runtime.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds how long detection waits for the API to attach.
const DefaultTimeout = 5 * time.Second

// State is the outcome of detection. It starts Unknown and is terminal once
// Available or Unavailable.
type State int

const (
	Unknown State = iota
	Available
	Unavailable
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Prober is the environment's own readiness primitive. Ready returns nil
// once the API has attached and should return when ctx is done.
type Prober interface {
	Ready(ctx context.Context) error
}

// ProberFunc adapts a function to a Prober.
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Ready(ctx context.Context) error { return f(ctx) }

// Detector runs a single probe and remembers its result.
type Detector struct {
	prober  Prober
	timeout time.Duration
	logger  zerolog.Logger

	once    sync.Once
	done    chan struct{}
	mu      sync.Mutex
	state   State
	elapsed time.Duration
	err     error
}

// NewDetector creates a Detector. A non-positive timeout uses DefaultTimeout.
func NewDetector(p Prober, timeout time.Duration, logger zerolog.Logger) *Detector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Detector{
		prober:  p,
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Detect probes the environment on first call and blocks until the probe
// resolves, fails, or the timeout elapses. Later calls wait for and return
// the first result without probing again; a later caller whose ctx ends
// first gets false while the probe carries on. Failure is reported as
// false, never as an error or panic.
func (d *Detector) Detect(ctx context.Context) bool {
	owner := false
	d.once.Do(func() {
		owner = true
		go d.run(ctx)
	})

	if owner {
		<-d.done
		return d.Available()
	}

	select {
	case <-d.done:
		return d.Available()
	case <-ctx.Done():
		select {
		case <-d.done:
			return d.Available()
		default:
			return false
		}
	}
}

func (d *Detector) run(ctx context.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("probe panicked: %v", r)
			}
		}()
		result <- d.prober.Ready(ctx)
	}()

	var err error
	select {
	case err = <-result:
	case <-ctx.Done():
		err = ctx.Err()
	}

	state := Available
	if err != nil {
		state = Unavailable
	}
	d.settle(state, err, time.Since(start))
}

func (d *Detector) settle(state State, err error, elapsed time.Duration) {
	d.mu.Lock()
	d.state = state
	d.err = err
	d.elapsed = elapsed
	d.mu.Unlock()
	close(d.done)

	if state == Available {
		d.logger.Info().Dur("elapsed", elapsed).Msg("interop api detected")
		return
	}

	ev := d.logger.Warn().Err(err).Dur("elapsed", elapsed).Dur("timeout", d.timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		ev.Msg("interop api not detected before deadline")
		return
	}
	ev.Msg("interop api not detected")
}

// State returns the current detection state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Available reports whether detection finished with the API attached.
func (d *Detector) Available() bool {
	return d.State() == Available
}

// Done is closed once detection reaches a terminal state.
func (d *Detector) Done() <-chan struct{} {
	return d.done
}

// Elapsed returns how long the probe took. Zero until detection finishes.
func (d *Detector) Elapsed() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}

// Err returns the reason detection failed, if it did.
func (d *Detector) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Timeout returns the configured deadline.
func (d *Detector) Timeout() time.Duration {
	return d.timeout
}
