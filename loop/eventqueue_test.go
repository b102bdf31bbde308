package loop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("EventQueueImpl", func() {
	var (
		mockCtrl *gomock.Controller
		queue    *EventQueueImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		queue = NewEventQueue()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run an event once per pass and count down", func() {
		action := NewMockAction(mockCtrl)
		action.EXPECT().Run().Times(3)

		evt := NewScheduledEvent("countdown", 3, action)
		queue.Push(evt)

		for i := 0; i < 3; i++ {
			queue.RunAll()
		}

		Expect(evt.RemainingFrames()).To(Equal(uint64(0)))
	})

	It("should run a one-frame event exactly once and then prune it", func() {
		action := NewMockAction(mockCtrl)
		action.EXPECT().Run().Times(1)

		queue.Push(NewScheduledEvent("once", 1, action))

		queue.RunAll()
		queue.Prune()

		Expect(queue.Len()).To(Equal(0))
	})

	It("should expire events on their own schedule", func() {
		a := NewScheduledEvent("a", 1, ActionFunc(func() {}))
		b := NewScheduledEvent("b", 2, ActionFunc(func() {}))
		c := NewScheduledEvent("c", 3, ActionFunc(func() {}))
		queue.Push(a)
		queue.Push(b)
		queue.Push(c)

		queue.RunAll()
		queue.Prune()
		Expect(queue.Events()).To(ConsistOf(b, c))
		Expect(b.RemainingFrames()).To(Equal(uint64(1)))
		Expect(c.RemainingFrames()).To(Equal(uint64(2)))

		queue.RunAll()
		queue.Prune()
		Expect(queue.Events()).To(ConsistOf(c))
		Expect(c.RemainingFrames()).To(Equal(uint64(1)))

		queue.RunAll()
		queue.Prune()
		Expect(queue.Len()).To(Equal(0))
	})

	It("should prune all expired events in one call", func() {
		for _, name := range []string{"a", "b", "c", "d"} {
			queue.Push(NewScheduledEvent(name, 1, ActionFunc(func() {})))
		}
		keeper := NewScheduledEvent("keeper", 2, ActionFunc(func() {}))
		queue.Push(keeper)

		queue.RunAll()
		queue.Prune()

		Expect(queue.Events()).To(ConsistOf(keeper))
	})

	It("should prune idempotently", func() {
		keeper := NewScheduledEvent("keeper", 2, ActionFunc(func() {}))
		queue.Push(NewScheduledEvent("expired", 1, ActionFunc(func() {})))
		queue.Push(keeper)

		queue.RunAll()
		queue.Prune()
		queue.Prune()

		Expect(queue.Events()).To(ConsistOf(keeper))
	})

	It("should ignore removal of an absent name", func() {
		evt := NewScheduledEvent("present", 2, ActionFunc(func() {}))
		queue.Push(evt)

		queue.Remove("absent")

		Expect(queue.Events()).To(ConsistOf(evt))
	})

	It("should remove only the first match", func() {
		first := NewScheduledEvent("dup", 2, ActionFunc(func() {}))
		second := NewScheduledEvent("dup", 3, ActionFunc(func() {}))
		queue.Push(first)
		queue.Push(second)

		queue.Remove("dup")

		Expect(queue.Events()).To(ConsistOf(second))
	})

	It("should not run an event enqueued during the same pass", func() {
		var lateRuns int
		queue.Push(NewScheduledEvent("parent", 1, ActionFunc(func() {
			queue.Push(NewScheduledEvent("child", 2, ActionFunc(func() {
				lateRuns++
			})))
		})))

		queue.RunAll()
		queue.Prune()

		Expect(lateRuns).To(Equal(0))
		Expect(queue.Len()).To(Equal(1))
		Expect(queue.Events()[0].Name()).To(Equal("child"))
		Expect(queue.Events()[0].RemainingFrames()).To(Equal(uint64(2)))

		queue.RunAll()
		Expect(lateRuns).To(Equal(1))
	})

	It("should keep an event enqueued mid-pass until it has run", func() {
		queue.Push(NewScheduledEvent("parent", 2, ActionFunc(func() {
			queue.Push(NewScheduledEvent("child", 1, ActionFunc(func() {})))
		})))

		queue.RunAll()
		queue.Prune()
		Expect(queue.Len()).To(Equal(2))

		queue.Remove("parent")
		queue.RunAll()
		queue.Prune()
		Expect(queue.Len()).To(Equal(0))
	})

	It("should not run an event removed earlier in the same pass", func() {
		victimAction := NewMockAction(mockCtrl)

		queue.Push(NewScheduledEvent("remover", 1, ActionFunc(func() {
			queue.Remove("victim")
		})))
		victim := NewScheduledEvent("victim", 3, victimAction)
		queue.Push(victim)

		queue.RunAll()

		Expect(victim.RemainingFrames()).To(Equal(uint64(3)))
		Expect(queue.Len()).To(Equal(1))
	})

	It("should invoke hooks around each event", func() {
		hook := &positionRecorder{}
		queue.AcceptHook(hook)

		queue.Push(NewScheduledEvent("hooked", 1, ActionFunc(func() {})))
		queue.RunAll()

		Expect(hook.positions).To(Equal(
			[]*HookPos{HookPosBeforeEvent, HookPosAfterEvent}))
	})

	It("should refuse an event with no remaining frames", func() {
		Expect(func() {
			queue.Push(NewScheduledEvent("dead", 0, ActionFunc(func() {})))
		}).To(Panic())
	})
})

var _ = Describe("ListQueue", func() {
	var queue *ListQueue

	BeforeEach(func() {
		queue = NewListQueue()
	})

	It("should expire events on their own schedule", func() {
		a := NewScheduledEvent("a", 1, ActionFunc(func() {}))
		b := NewScheduledEvent("b", 2, ActionFunc(func() {}))
		queue.Push(a)
		queue.Push(b)

		queue.RunAll()
		queue.Prune()
		Expect(queue.Events()).To(ConsistOf(b))

		queue.RunAll()
		queue.Prune()
		Expect(queue.Len()).To(Equal(0))
	})

	It("should preserve order across removals", func() {
		a := NewScheduledEvent("a", 2, ActionFunc(func() {}))
		b := NewScheduledEvent("b", 2, ActionFunc(func() {}))
		c := NewScheduledEvent("c", 2, ActionFunc(func() {}))
		queue.Push(a)
		queue.Push(b)
		queue.Push(c)

		queue.Remove("b")

		Expect(queue.Events()).To(Equal([]*ScheduledEvent{a, c}))
	})

	It("should ignore removal of an absent name", func() {
		evt := NewScheduledEvent("present", 2, ActionFunc(func() {}))
		queue.Push(evt)

		queue.Remove("absent")

		Expect(queue.Events()).To(ConsistOf(evt))
	})
})

type positionRecorder struct {
	positions []*HookPos
}

func (r *positionRecorder) Func(ctx HookCtx) {
	r.positions = append(r.positions, ctx.Pos)
}
