package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
)

// BuildFunc compiles the site once.
type BuildFunc func(ctx context.Context) error

// DebounceDelay coalesces bursts of filesystem events into one rebuild.
const DebounceDelay = 300 * time.Millisecond

// rebuilder runs at most one build at a time. Requests arriving during a
// build collapse into a single follow-up build.
type rebuilder struct {
	build BuildFunc
	reqs  chan string

	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration

	onDone func(reason string, err error)
}

func newRebuilder(build BuildFunc, delay time.Duration) *rebuilder {
	return &rebuilder{build: build, reqs: make(chan string, 1), delay: delay}
}

// request asks for a build without blocking.
func (rb *rebuilder) request(reason string) {
	select {
	case rb.reqs <- reason:
	default:
	}
}

// trigger requests a build after the debounce delay, restarting the delay
// on every call.
func (rb *rebuilder) trigger(reason string) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.timer != nil {
		rb.timer.Stop()
	}
	rb.timer = time.AfterFunc(rb.delay, func() { rb.request(reason) })
}

func (rb *rebuilder) stop() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.timer != nil {
		rb.timer.Stop()
	}
}

// run processes requests until ctx is done.
func (rb *rebuilder) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-rb.reqs:
			slog.Info("Rebuilding site", slog.String("reason", reason))
			t0 := time.Now()
			err := rb.build(ctx)
			if err != nil {
				slog.Warn("Rebuild failed", slog.String("reason", reason), logfields.Error(err))
			} else {
				slog.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(t0).Milliseconds())))
			}
			if rb.onDone != nil {
				rb.onDone(reason, err)
			}
		}
	}
}
