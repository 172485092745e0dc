package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/revise/internal/transform"
)

func TestTransformPlainText(t *testing.T) {
	// tr upper-cases stdin; a stand-in for a real transformation command.
	p := New("tr", []string{"a-z", "A-Z"})

	got, err := p.Transform(context.Background(), transform.Request{Text: "hello"})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if got != "HELLO" {
		t.Errorf("expected HELLO, got %q", got)
	}
}

func TestTransformPlaceholders(t *testing.T) {
	p := New("echo", []string{"-n", "{instruction}|{filetype}|{path}"})

	got, err := p.Transform(context.Background(), transform.Request{
		Instruction: "shorten",
		Filetype:    "go",
		Path:        "/tmp/x.go",
	})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if got != "shorten|go|/tmp/x.go" {
		t.Errorf("placeholder expansion: got %q", got)
	}
}

func TestTransformJSONEnvelope(t *testing.T) {
	// cat echoes the JSON payload back; the parser should pull out "text".
	p := &Provider{Command: "cat", JSON: true}

	got, err := p.Transform(context.Background(), transform.Request{
		Text:        "payload body",
		Instruction: "noop",
	})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if got != "payload body" {
		t.Errorf("expected payload body, got %q", got)
	}
}

func TestTransformJSONErrorField(t *testing.T) {
	p := &Provider{
		Command: "sh",
		Args:    []string{"-c", `echo '{"error":"model overloaded"}'`},
		JSON:    true,
	}

	_, err := p.Transform(context.Background(), transform.Request{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected error with diagnostic text, got %v", err)
	}
}

func TestTransformJSONRawOutput(t *testing.T) {
	// A JSON-mode provider that answers with plain text passes through.
	p := &Provider{
		Command: "sh",
		Args:    []string{"-c", "echo raw response"},
		JSON:    true,
	}

	got, err := p.Transform(context.Background(), transform.Request{Text: "x"})
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if got != "raw response" {
		t.Errorf("expected raw response, got %q", got)
	}
}

func TestTransformNonZeroExit(t *testing.T) {
	p := &Provider{
		Command: "sh",
		Args:    []string{"-c", "echo diagnostics >&2; exit 3"},
	}

	_, err := p.Transform(context.Background(), transform.Request{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "diagnostics") {
		t.Errorf("expected stderr in error, got %v", err)
	}
}

func TestTransformNoCommand(t *testing.T) {
	p := &Provider{}

	_, err := p.Transform(context.Background(), transform.Request{})
	if err == nil {
		t.Error("expected error for missing command")
	}
}

func TestTransformContextCancel(t *testing.T) {
	p := &Provider{Command: "sleep", Args: []string{"10"}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Transform(ctx, transform.Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancelled command was not killed promptly")
	}
}
