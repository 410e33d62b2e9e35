package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestStartGoroutineLoggerEmitsRuntimeStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	stop := StartGoroutineLogger(5*time.Millisecond, logger)
	time.Sleep(30 * time.Millisecond)
	stop()

	if !strings.Contains(buf.String(), "runtime-stats") {
		t.Fatalf("expected at least one runtime-stats log line, got: %s", buf.String())
	}
}

func TestStartGoroutineLoggerDefaultsInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	stop := StartGoroutineLogger(0, logger)
	stop()
}
