package tracing

import (
	"github.com/framewheel/framewheel/datarecording"
)

const frameTraceTable = "frame_trace"

// DBBackend is a tracer that stores frame records through a DataRecorder.
type DBBackend struct {
	recorder datarecording.DataRecorder
}

// NewDBBackend creates a new DBBackend writing into the given recorder.
func NewDBBackend(recorder datarecording.DataRecorder) *DBBackend {
	recorder.CreateTable(frameTraceTable, FrameRecord{})

	return &DBBackend{recorder: recorder}
}

// RecordFrame inserts a frame record into the database.
func (t *DBBackend) RecordFrame(rec FrameRecord) {
	t.recorder.InsertData(frameTraceTable, rec)
}
