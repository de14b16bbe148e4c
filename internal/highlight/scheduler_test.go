package highlight

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/pkg/logger"
)

type scanRecorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *scanRecorder) scan(batch []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
}

func (r *scanRecorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.batches))
	copy(out, r.batches)
	return out
}

func newTestScheduler(delay time.Duration, rec *scanRecorder, teardown TeardownFunc) *Scheduler {
	log := logger.New(logger.Config{Level: "error", Format: "console"})
	return NewScheduler(delay, rec.scan, teardown, log)
}

func TestScheduler_CoalescesBurstsIntoOneScan(t *testing.T) {
	rec := &scanRecorder{}
	s := newTestScheduler(20*time.Millisecond, rec, nil)
	defer s.Stop()

	s.Notify("a")
	s.Notify("b")
	s.Notify("c")

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	batches := rec.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a", "b", "c"}, batches[0])
}

func TestScheduler_SeparateBurstsScanSeparately(t *testing.T) {
	rec := &scanRecorder{}
	s := newTestScheduler(10*time.Millisecond, rec, nil)
	defer s.Stop()

	s.Notify("a")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	s.Notify("b")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	batches := rec.snapshot()
	assert.Equal(t, []string{"a"}, batches[0])
	assert.Equal(t, []string{"b"}, batches[1])
}

func TestScheduler_FlushRunsImmediately(t *testing.T) {
	rec := &scanRecorder{}
	s := newTestScheduler(time.Hour, rec, nil)
	defer s.Stop()

	s.Notify("a")
	s.Flush()

	batches := rec.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a"}, batches[0])
}

func TestScheduler_StopDropsPendingScan(t *testing.T) {
	rec := &scanRecorder{}
	s := newTestScheduler(10*time.Millisecond, rec, nil)

	s.Notify("a")
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// Notifications after Stop are dropped too.
	s.Notify("b")
	s.Flush()
	assert.Empty(t, rec.snapshot())
}

func TestScheduler_InvalidateTearsDownAndDropsBatch(t *testing.T) {
	rec := &scanRecorder{}
	tornDown := false
	s := newTestScheduler(time.Hour, rec, func() { tornDown = true })
	defer s.Stop()

	s.Notify("a")
	s.Invalidate()

	assert.True(t, tornDown)

	// The dropped batch never scans, even on flush.
	s.Flush()
	assert.Empty(t, rec.snapshot())
}
