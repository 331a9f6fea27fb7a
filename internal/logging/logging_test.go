package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(level)
	l.SetOutput(&buf)
	l.sink.now = func() time.Time { return time.Date(2025, 3, 1, 12, 30, 45, 123e6, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	l, buf := fixedLogger(LevelDebug)
	l.Info("semimajor %.1f", 2.5)

	want := "12:30:45.123 [INFO] semimajor 2.5\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	l, buf := fixedLogger(LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	if n := strings.Count(buf.String(), "shown"); n != 2 {
		t.Errorf("got %d lines, want 2:\n%s", n, buf.String())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("filtered message written:\n%s", buf.String())
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled() disagrees with level")
	}
}

func TestLogger_Named(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)
	child := l.Named("plot").Named("basis")
	child.Info("wrote %d arrows", 3)

	if !strings.Contains(buf.String(), "[INFO] plot.basis: wrote 3 arrows") {
		t.Errorf("output = %q", buf.String())
	}

	// Children share the parent's output
	var moved bytes.Buffer
	l.SetOutput(&moved)
	buf.Reset()
	child.Info("redirected")
	if buf.Len() != 0 || !strings.Contains(moved.String(), "plot.basis: redirected") {
		t.Errorf("child ignored parent output: old %q, new %q", buf.String(), moved.String())
	}
	if child.Enabled(LevelDebug) {
		t.Error("child enabled below parent level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}
