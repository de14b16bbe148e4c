package highlight

import (
	"sync"
	"time"

	"jobshield/pkg/logger"
)

// ScanFunc runs one highlight pass over the accumulated dirty subtrees. The
// scheduler never calls it concurrently with itself.
type ScanFunc func(dirty []string)

// TeardownFunc removes all existing markers. Called synchronously from
// Invalidate before the next scan can run.
type TeardownFunc func()

// Scheduler coalesces bursts of content-change notifications into single
// delayed scans. Each notification restarts the debounce window; when the
// window elapses with no further changes, one scan runs over everything
// accumulated since the last one.
type Scheduler struct {
	scan     ScanFunc
	teardown TeardownFunc
	delay    time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	scanMu  sync.Mutex
	timer   *time.Timer
	dirty   []string
	stopped bool
}

// NewScheduler creates a new Scheduler. teardown may be nil.
func NewScheduler(delay time.Duration, scan ScanFunc, teardown TeardownFunc, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scan:     scan,
		teardown: teardown,
		delay:    delay,
		logger:   log.WithComponent("highlight-scheduler"),
	}
}

// Notify records changed subtrees and (re)starts the debounce window.
// Notifications after Stop are dropped.
func (s *Scheduler) Notify(subtrees ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.dirty = append(s.dirty, subtrees...)

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush runs any pending scan immediately, bypassing the debounce window.
// Used when the caller needs the document consistent right now.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.fire()
}

// Invalidate drops the pending batch and synchronously tears down existing
// markers. Called when settings change so the next scan starts from a clean
// document.
func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = nil
	teardown := s.teardown
	s.mu.Unlock()

	// Waits out an in-flight scan so teardown never races one.
	s.scanMu.Lock()
	defer s.scanMu.Unlock()
	if teardown != nil {
		teardown()
	}
	s.logger.Debug().Msg("pending scans invalidated")
}

// Stop cancels any pending scan and rejects further notifications.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = nil
	s.logger.Debug().Msg("scheduler stopped")
}

// fire swaps out the accumulated batch and runs one scan over it. scanMu
// serializes scans so a Flush racing the timer cannot run two at once.
func (s *Scheduler) fire() {
	s.mu.Lock()
	batch := s.dirty
	s.dirty = nil
	s.timer = nil
	stopped := s.stopped
	s.mu.Unlock()

	if stopped || len(batch) == 0 {
		return
	}

	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	s.logger.Debug().Int("subtrees", len(batch)).Msg("running highlight scan")
	s.scan(batch)
}
