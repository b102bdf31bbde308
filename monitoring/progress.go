package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how far a bounded frame run has progressed.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Overruns  uint64    `json:"overruns"`
}

// IncrementFinished adds to the number of completed frames.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// IncrementOverruns adds to the number of frames that blew the frame budget.
func (b *ProgressBar) IncrementOverruns(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Overruns += amount
}
