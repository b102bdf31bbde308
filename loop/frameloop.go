package loop

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// A Task is the user-supplied per-frame callback. It receives the loop so it
// can schedule and remove events. A non-nil error is reported and swallowed;
// task failure never aborts the loop and never skips the rest of the frame.
type Task func(l *FrameLoop) error

// A FrameLoop drives the repeating cycle: run the task, run all scheduled
// events, prune expired events, then sleep off the rest of the frame budget.
// The frame path is strictly sequential; overruns are absorbed by skipping
// the sleep, with no catch-up in later frames.
type FrameLoop struct {
	HookableBase

	frameLock sync.Mutex
	queue     EventQueue
	task      Task
	period    time.Duration
	clock     Clock
	logger    *log.Logger

	frame    atomic.Uint64
	stopFlag atomic.Bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewFrameLoop creates a FrameLoop that runs the given task at the default
// 30 Hz cadence, backed by the wall clock and a slice-backed event queue.
func NewFrameLoop(task Task) *FrameLoop {
	l := new(FrameLoop)

	l.task = task
	l.queue = NewEventQueue()
	l.period = DefaultFrameRate.Period()
	l.clock = NewSystemClock()
	l.logger = log.Default()

	return l
}

// WithFrameRate sets the cadence of the loop.
func (l *FrameLoop) WithFrameRate(f Freq) *FrameLoop {
	l.period = f.Period()
	return l
}

// WithClock replaces the wall clock, mainly for testing.
func (l *FrameLoop) WithClock(c Clock) *FrameLoop {
	l.clock = c
	return l
}

// WithQueue replaces the backing event queue.
func (l *FrameLoop) WithQueue(q EventQueue) *FrameLoop {
	l.queue = q
	return l
}

// WithLogger sets the logger that task failures are reported to.
func (l *FrameLoop) WithLogger(logger *log.Logger) *FrameLoop {
	l.logger = logger
	return l
}

// Queue returns the event queue owned by the loop.
func (l *FrameLoop) Queue() EventQueue {
	return l.queue
}

// Period returns the frame budget of the loop.
func (l *FrameLoop) Period() time.Duration {
	return l.period
}

// Schedule enqueues a new named event that runs on every frame for the given
// number of frames.
func (l *FrameLoop) Schedule(name string, frames uint64, action Action) {
	l.queue.Push(NewScheduledEvent(name, frames, action))
}

// Remove removes the first scheduled event with the given name, if any.
func (l *FrameLoop) Remove(name string) {
	l.queue.Remove(name)
}

// CurrentFrame returns the number of frames completed so far.
func (l *FrameLoop) CurrentFrame() uint64 {
	return l.frame.Load()
}

// Run executes frames until Stop is called. Under normal operation the loop
// never terminates on its own.
func (l *FrameLoop) Run() error {
	l.singleRunLock.Lock()
	defer l.singleRunLock.Unlock()

	for {
		if l.stopFlag.Load() {
			return nil
		}

		l.pauseLock.Lock()
		start := l.clock.Now()

		l.runFrame()

		l.pauseLock.Unlock()

		l.pace(start)
		l.frame.Add(1)
	}
}

func (l *FrameLoop) runFrame() {
	l.frameLock.Lock()
	defer l.frameLock.Unlock()

	hookCtx := HookCtx{
		Domain: l,
		Pos:    HookPosBeforeFrame,
		Item:   l.frame.Load(),
	}
	l.InvokeHook(hookCtx)

	l.runTask()
	l.queue.RunAll()
	l.queue.Prune()

	hookCtx.Pos = HookPosAfterFrame
	l.InvokeHook(hookCtx)
}

func (l *FrameLoop) runTask() {
	if l.task == nil {
		return
	}

	err := l.task(l)
	if err == nil {
		return
	}

	hookCtx := HookCtx{
		Domain: l,
		Pos:    HookPosTaskError,
		Item:   l.frame.Load(),
		Detail: err,
	}
	l.InvokeHook(hookCtx)

	l.logger.Printf("frame %d: task failed: %s", l.frame.Load(), err)
}

func (l *FrameLoop) pace(start time.Time) {
	deadline := start.Add(l.period)

	now := l.clock.Now()
	if now.Before(deadline) {
		l.clock.Sleep(deadline.Sub(now))
	}
}

// Pause prevents the FrameLoop from starting more frames. The frame in
// flight, if any, completes first.
func (l *FrameLoop) Pause() {
	l.isPausedLock.Lock()
	defer l.isPausedLock.Unlock()

	if l.isPaused {
		return
	}

	l.pauseLock.Lock()
	l.isPaused = true
}

// Continue allows a paused FrameLoop to run frames again.
func (l *FrameLoop) Continue() {
	l.isPausedLock.Lock()
	defer l.isPausedLock.Unlock()

	if !l.isPaused {
		return
	}

	l.pauseLock.Unlock()
	l.isPaused = false
}

// Stop makes Run return at the next frame boundary.
func (l *FrameLoop) Stop() {
	l.stopFlag.Store(true)
}

// Snapshot runs f between frames, so f observes a consistent loop state.
func (l *FrameLoop) Snapshot(f func()) {
	l.frameLock.Lock()
	defer l.frameLock.Unlock()

	f()
}
