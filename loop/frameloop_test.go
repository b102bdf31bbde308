package loop

import (
	"bytes"
	"errors"
	"log"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("FrameLoop", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *MockClock
		queue    *MockEventQueue
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = NewMockClock(mockCtrl)
		queue = NewMockEventQueue(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run the task, then run all events, then prune", func() {
		start := time.Unix(0, 0)
		clock.EXPECT().Now().Return(start).AnyTimes()
		clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

		var order []string
		var l *FrameLoop
		l = NewFrameLoop(func(*FrameLoop) error {
			order = append(order, "task")
			l.Stop()
			return nil
		}).WithClock(clock).WithQueue(queue)

		runAll := queue.EXPECT().RunAll().Do(func() {
			order = append(order, "runAll")
		})
		queue.EXPECT().Prune().Do(func() {
			order = append(order, "prune")
		}).After(runAll)

		Expect(l.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"task", "runAll", "prune"}))
		Expect(l.CurrentFrame()).To(Equal(uint64(1)))
	})

	It("should sleep off the remaining frame budget", func() {
		start := time.Unix(100, 0)
		clock.EXPECT().Now().Return(start)
		clock.EXPECT().Now().Return(start.Add(4 * time.Millisecond))
		clock.EXPECT().Sleep(6 * time.Millisecond)

		queue.EXPECT().RunAll()
		queue.EXPECT().Prune()

		l := NewFrameLoop(func(l *FrameLoop) error {
			l.Stop()
			return nil
		}).WithFrameRate(100 * Hz).WithClock(clock).WithQueue(queue)

		Expect(l.Run()).To(Succeed())
	})

	It("should not sleep or compensate when the frame overruns", func() {
		start := time.Unix(100, 0)
		clock.EXPECT().Now().Return(start)
		clock.EXPECT().Now().Return(start.Add(15 * time.Millisecond))

		queue.EXPECT().RunAll()
		queue.EXPECT().Prune()

		l := NewFrameLoop(func(l *FrameLoop) error {
			l.Stop()
			return nil
		}).WithFrameRate(100 * Hz).WithClock(clock).WithQueue(queue)

		Expect(l.Run()).To(Succeed())
	})

	It("should log a task failure and keep cycling", func() {
		clock.EXPECT().Now().Return(time.Unix(0, 0)).AnyTimes()
		clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

		queue.EXPECT().RunAll().Times(2)
		queue.EXPECT().Prune().Times(2)

		buf := bytes.NewBuffer(nil)

		frames := 0
		l := NewFrameLoop(func(l *FrameLoop) error {
			frames++
			if frames == 1 {
				return errors.New("asset not ready")
			}
			l.Stop()
			return nil
		}).WithClock(clock).WithQueue(queue).
			WithLogger(log.New(buf, "", 0))

		Expect(l.Run()).To(Succeed())
		Expect(frames).To(Equal(2))
		Expect(buf.String()).To(ContainSubstring("task failed: asset not ready"))
	})

	It("should invoke frame hooks around every frame", func() {
		clock.EXPECT().Now().Return(time.Unix(0, 0)).AnyTimes()
		clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

		queue.EXPECT().RunAll()
		queue.EXPECT().Prune()

		l := NewFrameLoop(func(l *FrameLoop) error {
			l.Stop()
			return nil
		}).WithClock(clock).WithQueue(queue)

		hook := &positionRecorder{}
		l.AcceptHook(hook)

		Expect(l.Run()).To(Succeed())
		Expect(hook.positions).To(Equal(
			[]*HookPos{HookPosBeforeFrame, HookPosAfterFrame}))
	})

	It("should run scheduled events end to end", func() {
		clock.EXPECT().Now().Return(time.Unix(0, 0)).AnyTimes()
		clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

		var ran int
		frames := 0
		l := NewFrameLoop(func(l *FrameLoop) error {
			frames++
			if frames == 1 {
				l.Schedule("blink", 2, ActionFunc(func() { ran++ }))
			}
			if frames == 4 {
				l.Stop()
			}
			return nil
		}).WithClock(clock)

		Expect(l.Run()).To(Succeed())
		Expect(ran).To(Equal(2))
		Expect(l.Queue().Len()).To(Equal(0))
	})

	It("should stop starting frames while paused and resume on continue", func() {
		l := NewFrameLoop(func(*FrameLoop) error {
			return nil
		}).WithFrameRate(1000 * Hz)

		done := make(chan error, 1)
		go func() {
			done <- l.Run()
		}()

		Eventually(l.CurrentFrame).Should(BeNumerically(">=", uint64(3)))

		l.Pause()

		// The frame in flight may still complete, so the count can advance
		// by at most one after Pause returns.
		frozen := l.CurrentFrame()
		Consistently(l.CurrentFrame, "100ms").
			Should(BeNumerically("<=", frozen+1))

		l.Continue()
		Eventually(l.CurrentFrame).Should(BeNumerically(">", frozen+1))

		l.Stop()
		Eventually(done).Should(Receive(BeNil()))
	})
})
