package loop

import (
	"log"
	"math"
	"time"
)

// Freq defines the type of frame frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
)

// DefaultFrameRate is the nominal cadence of a frame loop, 30 frames per
// second (a period of roughly 33.33 ms).
const DefaultFrameRate = 30 * Hz

// Period returns the time between two consecutive frames
func (f Freq) Period() time.Duration {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}
	return time.Duration(float64(time.Second) / float64(f))
}

// Frames converts a duration to the number of whole frames that fit in it.
func (f Freq) Frames(d time.Duration) uint64 {
	return uint64(math.Floor(d.Seconds() * float64(f)))
}
