package loop

import (
	"container/list"
	"log"
)

// EventQueue holds the scheduled events of a frame loop. Any container that
// offers this capability set qualifies as a backing implementation.
type EventQueue interface {
	Push(evt *ScheduledEvent)
	Remove(name string)
	RunAll()
	Prune()
	Len() int
	Events() []*ScheduledEvent
}

// EventQueueImpl is the slice-backed event queue. Removal swaps the victim
// with the last element and truncates, so the queue does not preserve
// insertion order across removals.
type EventQueueImpl struct {
	HookableBase

	events []*ScheduledEvent
}

// NewEventQueue creates and returns a newly created EventQueueImpl.
func NewEventQueue() *EventQueueImpl {
	q := new(EventQueueImpl)
	q.events = make([]*ScheduledEvent, 0)

	return q
}

// Push adds an event to the queue. The event must still have frames to run;
// a zero-lifetime event would expire before it could ever run.
func (q *EventQueueImpl) Push(evt *ScheduledEvent) {
	if evt.RemainingFrames() == 0 {
		log.Panic("scheduling an event with no remaining frames")
	}

	q.events = append(q.events, evt)
}

// Remove removes the first event whose name matches. Removing an absent name
// is a no-op.
func (q *EventQueueImpl) Remove(name string) {
	for i, evt := range q.events {
		if evt.Name() == name {
			q.removeAt(i)
			return
		}
	}
}

// RunAll invokes the action of every event currently in the queue, then
// decrements its counter. The pass covers the events present when RunAll is
// called: an event enqueued by an action does not run until the next pass,
// and an event removed by an action no longer runs in this one.
func (q *EventQueueImpl) RunAll() {
	snapshot := make([]*ScheduledEvent, len(q.events))
	copy(snapshot, q.events)

	for _, evt := range snapshot {
		if !q.contains(evt) {
			continue
		}

		ctx := HookCtx{
			Domain: q,
			Pos:    HookPosBeforeEvent,
			Item:   evt,
		}
		q.InvokeHook(ctx)

		evt.Action().Run()
		evt.Decrement()

		ctx.Pos = HookPosAfterEvent
		q.InvokeHook(ctx)
	}
}

// Prune removes every event that has no remaining frames. Iterating in
// reverse index order keeps the swap-removal from ever skipping an element,
// so a single call always clears all expired events.
func (q *EventQueueImpl) Prune() {
	for i := len(q.events) - 1; i >= 0; i-- {
		if q.events[i].RemainingFrames() == 0 {
			q.removeAt(i)
		}
	}
}

// Len returns the number of events in the queue.
func (q *EventQueueImpl) Len() int {
	return len(q.events)
}

// Events returns a snapshot of the events currently in the queue.
func (q *EventQueueImpl) Events() []*ScheduledEvent {
	snapshot := make([]*ScheduledEvent, len(q.events))
	copy(snapshot, q.events)

	return snapshot
}

func (q *EventQueueImpl) contains(evt *ScheduledEvent) bool {
	for _, e := range q.events {
		if e == evt {
			return true
		}
	}

	return false
}

func (q *EventQueueImpl) removeAt(i int) {
	last := len(q.events) - 1
	q.events[i] = q.events[last]
	q.events[last] = nil
	q.events = q.events[:last]
}

// ListQueue is an event queue backed by a linked list. Unlike EventQueueImpl
// it preserves insertion order across removals.
type ListQueue struct {
	l *list.List
}

// NewListQueue returns a new ListQueue.
func NewListQueue() *ListQueue {
	q := new(ListQueue)
	q.l = list.New()

	return q
}

// Push adds an event to the back of the queue.
func (q *ListQueue) Push(evt *ScheduledEvent) {
	if evt.RemainingFrames() == 0 {
		log.Panic("scheduling an event with no remaining frames")
	}

	q.l.PushBack(evt)
}

// Remove removes the first event whose name matches, keeping the order of
// the remaining events.
func (q *ListQueue) Remove(name string) {
	for ele := q.l.Front(); ele != nil; ele = ele.Next() {
		if ele.Value.(*ScheduledEvent).Name() == name {
			q.l.Remove(ele)
			return
		}
	}
}

// RunAll invokes and decrements every event present when the pass starts.
func (q *ListQueue) RunAll() {
	snapshot := q.Events()

	for _, evt := range snapshot {
		if q.find(evt) == nil {
			continue
		}

		evt.Action().Run()
		evt.Decrement()
	}
}

// Prune removes every event that has no remaining frames.
func (q *ListQueue) Prune() {
	ele := q.l.Front()
	for ele != nil {
		next := ele.Next()
		if ele.Value.(*ScheduledEvent).RemainingFrames() == 0 {
			q.l.Remove(ele)
		}
		ele = next
	}
}

// Len returns the number of events in the queue.
func (q *ListQueue) Len() int {
	return q.l.Len()
}

// Events returns a snapshot of the events currently in the queue.
func (q *ListQueue) Events() []*ScheduledEvent {
	snapshot := make([]*ScheduledEvent, 0, q.l.Len())
	for ele := q.l.Front(); ele != nil; ele = ele.Next() {
		snapshot = append(snapshot, ele.Value.(*ScheduledEvent))
	}

	return snapshot
}

func (q *ListQueue) find(evt *ScheduledEvent) *list.Element {
	for ele := q.l.Front(); ele != nil; ele = ele.Next() {
		if ele.Value.(*ScheduledEvent) == evt {
			return ele
		}
	}

	return nil
}
