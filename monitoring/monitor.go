// Package monitoring turns a running frame loop into a small web server that
// reports and controls the loop.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/framewheel/framewheel/loop"
	"github.com/framewheel/framewheel/monitoring/web"
)

// Monitor exposes a frame loop over HTTP, allowing external observation and
// control between frames.
type Monitor struct {
	l             *loop.FrameLoop
	portNumber    int
	launchBrowser bool

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserLaunch makes StartServer open the dashboard in a browser.
func (m *Monitor) WithBrowserLaunch() *Monitor {
	m.launchBrowser = true

	return m
}

// RegisterLoop registers the frame loop to be monitored.
func (m *Monitor) RegisterLoop(l *loop.FrameLoop) {
	m.l = l
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        loop.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/pause", m.pauseLoop)
	r.HandleFunc("/api/continue", m.continueLoop)
	r.HandleFunc("/api/stop", m.stopLoop)
	r.HandleFunc("/api/frame", m.currentFrame)
	r.HandleFunc("/api/events", m.listEvents)
	r.HandleFunc("/api/remove/{name}", m.removeEvent)
	r.HandleFunc("/api/state", m.loopState)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring frame loop with %s\n", url)

	if m.launchBrowser {
		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
		}
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) pauseLoop(w http.ResponseWriter, _ *http.Request) {
	m.l.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueLoop(w http.ResponseWriter, _ *http.Request) {
	m.l.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) stopLoop(w http.ResponseWriter, _ *http.Request) {
	m.l.Stop()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) currentFrame(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"frame\":%d}", m.l.CurrentFrame())
}

type eventRsp struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	RemainingFrames uint64 `json:"remaining_frames"`
}

func (m *Monitor) listEvents(w http.ResponseWriter, _ *http.Request) {
	var events []*loop.ScheduledEvent
	m.l.Snapshot(func() {
		events = m.l.Queue().Events()
	})

	rsp := make([]eventRsp, 0, len(events))
	for _, evt := range events {
		rsp = append(rsp, eventRsp{
			ID:              evt.ID,
			Name:            evt.Name(),
			RemainingFrames: evt.RemainingFrames(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) removeEvent(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m.l.Snapshot(func() {
		m.l.Remove(name)
	})

	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) loopState(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.l)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(m.progressBars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
