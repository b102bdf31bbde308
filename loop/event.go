package loop

import "log"

// An Action is the behavior attached to a scheduled event. Actions take no
// arguments and return nothing; anything an action needs must be captured at
// construction time.
type Action interface {
	Run()
}

// ActionFunc adapts an ordinary function to the Action interface.
type ActionFunc func()

// Run calls the wrapped function.
func (f ActionFunc) Run() {
	f()
}

// A ScheduledEvent is a named one-shot effect. It reruns on every frame until
// its remaining-frame counter reaches zero, after which the queue prunes it.
type ScheduledEvent struct {
	ID string

	name            string
	remainingFrames uint64
	action          Action
}

// NewScheduledEvent creates a new ScheduledEvent. The name and the action are
// fixed for the lifetime of the event.
func NewScheduledEvent(
	name string,
	frames uint64,
	action Action,
) *ScheduledEvent {
	e := new(ScheduledEvent)
	e.ID = GetIDGenerator().Generate()
	e.name = name
	e.remainingFrames = frames
	e.action = action

	return e
}

// Name returns the identity of the event. Names are not required to be unique,
// but removal treats them as such (first match wins).
func (e *ScheduledEvent) Name() string {
	return e.name
}

// RemainingFrames returns the number of frames the event will still run for.
func (e *ScheduledEvent) RemainingFrames() uint64 {
	return e.remainingFrames
}

// Action returns the behavior that runs each frame.
func (e *ScheduledEvent) Action() Action {
	return e.action
}

// Decrement reduces the remaining-frame counter by one. The counter must be
// positive; the queue prunes expired events before they can ever be
// decremented again.
func (e *ScheduledEvent) Decrement() {
	if e.remainingFrames == 0 {
		log.Panic("decrementing an event with no remaining frames")
	}

	e.remainingFrames--
}
