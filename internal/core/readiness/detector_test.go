package readiness

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// attachAfter returns a prober that attaches after d, honouring ctx.
func attachAfter(d time.Duration) ProberFunc {
	return func(ctx context.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// neverAttach returns a prober that only returns when ctx is done.
func neverAttach() ProberFunc {
	return func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name    string
		prober  Prober
		timeout time.Duration
		want    State
	}{
		{
			name:    "resolves before deadline",
			prober:  attachAfter(5 * time.Millisecond),
			timeout: 200 * time.Millisecond,
			want:    Available,
		},
		{
			name:    "resolves immediately",
			prober:  ProberFunc(func(context.Context) error { return nil }),
			timeout: 50 * time.Millisecond,
			want:    Available,
		},
		{
			name:    "resolves after deadline",
			prober:  attachAfter(200 * time.Millisecond),
			timeout: 10 * time.Millisecond,
			want:    Unavailable,
		},
		{
			name:    "never resolves",
			prober:  neverAttach(),
			timeout: 10 * time.Millisecond,
			want:    Unavailable,
		},
		{
			name:    "rejects",
			prober:  ProberFunc(func(context.Context) error { return errors.New("no agent") }),
			timeout: 200 * time.Millisecond,
			want:    Unavailable,
		},
		{
			name:    "panics",
			prober:  ProberFunc(func(context.Context) error { panic("boom") }),
			timeout: 200 * time.Millisecond,
			want:    Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(tt.prober, tt.timeout, zerolog.Nop())
			assert.Equal(t, Unknown, d.State())

			got := d.Detect(context.Background())

			assert.Equal(t, tt.want == Available, got)
			assert.Equal(t, tt.want, d.State())
			select {
			case <-d.Done():
			default:
				t.Fatal("done channel should be closed after Detect returns")
			}
			if tt.want == Unavailable {
				assert.Error(t, d.Err())
			} else {
				assert.NoError(t, d.Err())
			}
		})
	}
}

func TestDetector_Detect_probes_once(t *testing.T) {
	var calls atomic.Int32
	d := NewDetector(ProberFunc(func(context.Context) error {
		calls.Add(1)
		return errors.New("not attached")
	}), 50*time.Millisecond, zerolog.Nop())

	assert.False(t, d.Detect(context.Background()))
	assert.False(t, d.Detect(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Unavailable, d.State())
}

func TestDetector_Detect_concurrent_callers_share_result(t *testing.T) {
	var calls atomic.Int32
	d := NewDetector(ProberFunc(func(ctx context.Context) error {
		calls.Add(1)
		return attachAfter(10*time.Millisecond)(ctx)
	}), time.Second, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.Detect(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.True(t, r)
	}
}

func TestDetector_Detect_result_is_terminal(t *testing.T) {
	attach := make(chan struct{})
	d := NewDetector(ProberFunc(func(ctx context.Context) error {
		select {
		case <-attach:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}), 10*time.Millisecond, zerolog.Nop())

	require.False(t, d.Detect(context.Background()))

	// Attaching after the deadline must not flip the result.
	close(attach)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, Unavailable, d.State())
	assert.False(t, d.Detect(context.Background()))
}

func TestDetector_Detect_cancelled_context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDetector(neverAttach(), time.Second, zerolog.Nop())

	assert.False(t, d.Detect(ctx))
	assert.ErrorIs(t, d.Err(), context.Canceled)
}

func TestDetector_Detect_waiting_caller_honours_own_context(t *testing.T) {
	entered := make(chan struct{})
	attach := make(chan struct{})
	d := NewDetector(ProberFunc(func(ctx context.Context) error {
		close(entered)
		select {
		case <-attach:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}), time.Second, zerolog.Nop())

	first := make(chan bool, 1)
	go func() { first <- d.Detect(context.Background()) }()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	assert.False(t, d.Detect(ctx))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, Unknown, d.State())

	close(attach)
	assert.True(t, <-first)
	assert.Equal(t, Available, d.State())
}

func TestDetector_scenario_never_resolves(t *testing.T) {
	timeout := 50 * time.Millisecond
	d := NewDetector(neverAttach(), timeout, zerolog.Nop())

	start := time.Now()
	got := d.Detect(context.Background())
	took := time.Since(start)

	assert.False(t, got)
	assert.GreaterOrEqual(t, took, timeout)
	assert.ErrorIs(t, d.Err(), context.DeadlineExceeded)
}

func TestDetector_scenario_resolves_early(t *testing.T) {
	d := NewDetector(attachAfter(10*time.Millisecond), 500*time.Millisecond, zerolog.Nop())

	start := time.Now()
	got := d.Detect(context.Background())
	took := time.Since(start)

	assert.True(t, got)
	assert.Less(t, took, 500*time.Millisecond)
	assert.Greater(t, d.Elapsed(), time.Duration(0))
}

func TestNewDetector_default_timeout(t *testing.T) {
	d := NewDetector(neverAttach(), 0, zerolog.Nop())
	assert.Equal(t, DefaultTimeout, d.Timeout())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "available", Available.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}
