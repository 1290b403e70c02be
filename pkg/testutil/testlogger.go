package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// mutex serializes tests that swap the global log output.
var mutex sync.Mutex

// SuppressLogging discards all log output until the returned function is
// called.
func SuppressLogging() func() {
	mutex.Lock()
	defer mutex.Unlock()

	restoreLog := log.SetOutput(io.Discard)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		restoreLog()
	}
}

// CaptureLogging captures log output until the returned function is called;
// that function restores the output and returns what was captured.
func CaptureLogging() func() string {
	mutex.Lock()

	var logBuf bytes.Buffer
	logRestore := log.SetOutput(&logBuf)

	return func() string {
		defer mutex.Unlock()
		logRestore()
		return logBuf.String()
	}
}

// UseTestLogger buffers log output and prints it only if the test fails.
// Verbose runs log straight through.
func UseTestLogger(t *testing.T) func() {
	t.Helper()

	if testing.Verbose() {
		return func() {}
	}

	restoreAndGetLogs := CaptureLogging()
	var once sync.Once
	var captured string
	restore := func() {
		once.Do(func() { captured = restoreAndGetLogs() })
	}
	t.Cleanup(func() {
		restore()
		if t.Failed() {
			t.Logf("Log output captured during test:\n%s", captured)
		}
	})
	return restore
}
