package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARN", log.WarnLevel, false},
		{" error ", log.ErrorLevel, false},
		{"chatty", log.InfoLevel, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Prefix: "test"})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "round", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "round=3") || !strings.Contains(out, "test") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "numhunt.log")
	logger, closer, err := File(path, Options{})
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	logger.Info("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q", data)
	}
}
