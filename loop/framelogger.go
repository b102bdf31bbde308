package loop

import (
	"log"
)

// LogHookBase provides the common logic for hooks that write to a logger
type LogHookBase struct {
	*log.Logger
}

// FrameLogger is a hook that prints scheduled-event runs and task failures
type FrameLogger struct {
	LogHookBase
}

// NewFrameLogger returns a new FrameLogger which will write in to the logger
func NewFrameLogger(logger *log.Logger) *FrameLogger {
	h := new(FrameLogger)
	h.Logger = logger
	return h
}

// Func writes the event information into the logger
func (h *FrameLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosBeforeEvent:
		evt := ctx.Item.(*ScheduledEvent)
		h.Printf("event %s, %d frame(s) left", evt.Name(), evt.RemainingFrames())
	case HookPosTaskError:
		h.Printf("frame %d, task failed: %s", ctx.Item, ctx.Detail)
	}
}
