package tracing

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

// CSVBackend is a tracer that stores the frame records into a CSV file.
type CSVBackend struct {
	path string
	file *os.File

	records    []FrameRecord
	bufferSize int
}

// NewCSVBackend creates a new CSVBackend.
func NewCSVBackend(path string) *CSVBackend {
	return &CSVBackend{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. If the file already exists, it will be
// overwritten.
func (t *CSVBackend) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file,
		"Frame, WallMs, EventsRun, EventsPending, TaskFailed, Overrun\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// RecordFrame buffers a frame record for the CSV file.
func (t *CSVBackend) RecordFrame(rec FrameRecord) {
	t.records = append(t.records, rec)
	if len(t.records) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered records to the CSV file.
func (t *CSVBackend) Flush() {
	for _, rec := range t.records {
		fmt.Fprintf(t.file, "%d, %.6f, %d, %d, %t, %t\n",
			rec.Frame,
			rec.WallMs,
			rec.EventsRun,
			rec.EventsPending,
			rec.TaskFailed,
			rec.Overrun,
		)
	}

	t.records = nil
}
