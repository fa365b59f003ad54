package runlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAssignsDistinctRunIDs(t *testing.T) {
	a := New(Config{})
	b := New(Config{})
	if a.RunID == b.RunID {
		t.Fatal("two loggers got the same run ID")
	}
	if len(a.RunID) == 0 {
		t.Fatal("run ID is empty")
	}
}

func TestNewWithLogFileWritesToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quilt.log")
	l := New(Config{LogFile: path})
	l.Printf("fault: stack underflow")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty after Printf")
	}
}

func TestCloseWithoutLogFileIsNoop(t *testing.T) {
	l := New(Config{})
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v, want nil", err)
	}
}
