package session

import (
	"github.com/rs/xid"

	"github.com/framewheel/framewheel/datarecording"
	"github.com/framewheel/framewheel/loop"
	"github.com/framewheel/framewheel/monitoring"
	"github.com/framewheel/framewheel/tracing"
)

// Builder can be used to build a session.
type Builder struct {
	task           loop.Task
	frameRate      loop.Freq
	monitorOn      bool
	monitorPort    int
	launchBrowser  bool
	outputFileName string
	csvTracePath   string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		frameRate: loop.DefaultFrameRate,
		monitorOn: true,
	}
}

// WithTask sets the per-frame task of the loop.
func (b Builder) WithTask(task loop.Task) Builder {
	b.task = task
	return b
}

// WithFrameRate sets the cadence of the frame loop.
func (b Builder) WithFrameRate(f loop.Freq) Builder {
	b.frameRate = f
	return b
}

// WithoutMonitoring sets the session to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserLaunch makes the monitor open its dashboard in a browser.
func (b Builder) WithBrowserLaunch() Builder {
	b.launchBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithCSVTrace additionally traces frames into a CSV file at the given path.
func (b Builder) WithCSVTrace(path string) Builder {
	b.csvTracePath = path
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.launchBrowser {
		panic("browser launch requires monitoring")
	}
}

// Build builds the session.
func (b Builder) Build() *Session {
	b.parametersMustBeValid()

	s := &Session{}
	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "framewheel_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)

	s.l = loop.NewFrameLoop(b.task).WithFrameRate(b.frameRate)

	s.frameTracer = tracing.NewDBBackend(s.dataRecorder)
	tracing.CollectFrames(s.l, s.frameTracer)

	s.avgTracer = tracing.NewAverageFrameTimeTracer()
	tracing.CollectFrames(s.l, s.avgTracer)

	if b.csvTracePath != "" {
		csvBackend := tracing.NewCSVBackend(b.csvTracePath)
		csvBackend.Init()
		tracing.CollectFrames(s.l, csvBackend)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.launchBrowser {
			s.monitor.WithBrowserLaunch()
		}
		s.monitor.RegisterLoop(s.l)
		s.monitor.StartServer()
	}

	return s
}
