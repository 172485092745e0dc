package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("visible warn")
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error output, got %q", out)
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.WithField("job", 7).Info("started")

	if !strings.Contains(buf.String(), "job=7") {
		t.Errorf("expected field in output, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.WithComponent("session").Info("hi")

	if !strings.Contains(buf.String(), "component=session") {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, Prefix: "test"})

	l.Info("count=%d", 3)

	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("expected formatted message, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "test:") {
		t.Errorf("expected prefix, got %q", buf.String())
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	// Must not panic or write anywhere.
	Null.Info("nothing")
	Null.Error("nothing")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"ERROR":   LevelError,
		"bogus":   LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultConcurrentWithSetDefault(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetDefault(New(Config{Level: LevelInfo, Output: &bytes.Buffer{}}))
		}()
		go func() {
			defer wg.Done()
			if Default() == nil {
				t.Error("Default returned nil")
			}
		}()
	}
	wg.Wait()

	if Default() == nil {
		t.Error("Default returned nil after SetDefault")
	}
}
