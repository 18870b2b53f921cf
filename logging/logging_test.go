package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger := New(false, path)
	logger.Info("document processed", zap.String("source", "filing.pdf"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "document processed") {
		t.Errorf("log file missing entry: %s", data)
	}
	if !strings.Contains(string(data), `"source":"filing.pdf"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	logger := New(true, "")
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	logger.Debug("debug enabled in development mode")
}
