package tracing

import (
	"sync"
	"time"
)

// AverageFrameTimeTracer keeps a running average of the working wall time of
// the traced frames.
type AverageFrameTimeTracer struct {
	lock       sync.Mutex
	averageMs  float64
	frameCount uint64
	overrun    uint64
}

// NewAverageFrameTimeTracer creates a new AverageFrameTimeTracer
func NewAverageFrameTimeTracer() *AverageFrameTimeTracer {
	return &AverageFrameTimeTracer{}
}

// RecordFrame folds one frame into the running average.
func (t *AverageFrameTimeTracer) RecordFrame(rec FrameRecord) {
	t.lock.Lock()
	defer t.lock.Unlock()

	total := t.averageMs*float64(t.frameCount) + rec.WallMs
	t.frameCount++
	t.averageMs = total / float64(t.frameCount)

	if rec.Overrun {
		t.overrun++
	}
}

// AverageTime returns the average working time of the traced frames.
func (t *AverageFrameTimeTracer) AverageTime() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	return time.Duration(t.averageMs * float64(time.Millisecond))
}

// TotalCount returns the total number of traced frames.
func (t *AverageFrameTimeTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.frameCount
}

// OverrunCount returns the number of frames that exceeded the frame budget.
func (t *AverageFrameTimeTracer) OverrunCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.overrun
}
