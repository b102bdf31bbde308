package tracing_test

import (
	"testing"

	"github.com/framewheel/framewheel/datarecording"
)

func newTestRecorder(
	t *testing.T,
	path string,
) *datarecording.SQLiteWriter {
	t.Helper()

	writer := datarecording.NewSQLiteWriter(path)
	writer.Init()

	return writer
}
