// Package session wires a frame loop together with its recording, tracing,
// and monitoring services.
package session

import (
	"github.com/framewheel/framewheel/datarecording"
	"github.com/framewheel/framewheel/loop"
	"github.com/framewheel/framewheel/monitoring"
	"github.com/framewheel/framewheel/tracing"
)

// A Session provides the services required to run a frame loop.
type Session struct {
	id string

	l            *loop.FrameLoop
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	frameTracer  *tracing.DBBackend
	avgTracer    *tracing.AverageFrameTimeTracer
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Loop returns the frame loop driven by the session.
func (s *Session) Loop() *loop.FrameLoop {
	return s.l
}

// DataRecorder returns the data recorder used in the session.
func (s *Session) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor used in the session. It is nil when monitoring
// is disabled.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// AverageFrameTime returns the running average of the working frame time.
func (s *Session) AverageFrameTime() *tracing.AverageFrameTimeTracer {
	return s.avgTracer
}

// Run drives the frame loop until it is stopped.
func (s *Session) Run() error {
	return s.l.Run()
}

// Terminate flushes and closes the services owned by the session.
func (s *Session) Terminate() {
	s.dataRecorder.Close()
}
