// Package tracing collects per-frame timing records from a running frame
// loop and stores them in pluggable backends.
package tracing

import (
	"time"

	"github.com/framewheel/framewheel/loop"
)

// A FrameRecord describes one completed frame. WallMs covers the working part
// of the frame (task, events, prune) and excludes the pacing sleep.
type FrameRecord struct {
	Frame         uint64
	WallMs        float64
	EventsRun     int
	EventsPending int
	TaskFailed    bool
	Overrun       bool
}

// A Tracer stores FrameRecords.
type Tracer interface {
	RecordFrame(rec FrameRecord)
}

// CollectFrames hooks a tracer up to a frame loop. One FrameRecord reaches
// the tracer per frame.
func CollectFrames(l *loop.FrameLoop, tracer Tracer) {
	c := &frameCollector{
		l:      l,
		clock:  loop.NewSystemClock(),
		tracer: tracer,
	}

	l.AcceptHook(c)

	if h, ok := l.Queue().(loop.Hookable); ok {
		h.AcceptHook(c)
	}
}

type frameCollector struct {
	l      *loop.FrameLoop
	clock  loop.Clock
	tracer Tracer

	start      time.Time
	eventsRun  int
	taskFailed bool
}

func (c *frameCollector) Func(ctx loop.HookCtx) {
	switch ctx.Pos {
	case loop.HookPosBeforeFrame:
		c.start = c.clock.Now()
		c.eventsRun = 0
		c.taskFailed = false
	case loop.HookPosBeforeEvent:
		c.eventsRun++
	case loop.HookPosTaskError:
		c.taskFailed = true
	case loop.HookPosAfterFrame:
		wall := c.clock.Now().Sub(c.start)

		c.tracer.RecordFrame(FrameRecord{
			Frame:         ctx.Item.(uint64),
			WallMs:        float64(wall) / float64(time.Millisecond),
			EventsRun:     c.eventsRun,
			EventsPending: c.l.Queue().Len(),
			TaskFailed:    c.taskFailed,
			Overrun:       wall > c.l.Period(),
		})
	}
}
