package pyrmatch

import (
	"log/slog"
	"testing"
)

func TestNewLoggerReturnsUsableLogger(t *testing.T) {
	logger := NewLogger(slog.LevelDebug)
	if logger == nil {
		t.Fatalf("expected non-nil logger")
	}
	logger.Debug("smoke test")
}
