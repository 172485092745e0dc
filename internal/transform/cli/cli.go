// Package cli implements a transform provider backed by an external command.
//
// The command receives the source text on stdin and writes the transformed
// text to stdout. With JSON mode enabled, stdin carries a JSON envelope
// {"text","instruction","filetype","path"} and stdout may answer with either
// raw text or a JSON object whose "text" field holds the result.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/revise/internal/transform"
)

// Placeholders expanded in command arguments.
const (
	placeholderInstruction = "{instruction}"
	placeholderFiletype    = "{filetype}"
	placeholderPath        = "{path}"
)

// Provider invokes an external command for each transformation.
type Provider struct {
	// Command is the executable to run.
	Command string

	// Args are the command arguments. The placeholders {instruction},
	// {filetype}, and {path} are expanded per request.
	Args []string

	// JSON switches stdin/stdout to the JSON envelope format.
	JSON bool
}

// New creates a CLI provider.
func New(command string, args []string) *Provider {
	return &Provider{Command: command, Args: args}
}

// Name identifies the provider.
func (p *Provider) Name() string {
	return "cli"
}

// Transform runs the command and returns its output.
// A context cancellation or deadline kills the whole process group, so no
// orphaned children survive a timeout.
func (p *Provider) Transform(ctx context.Context, req transform.Request) (string, error) {
	if p.Command == "" {
		return "", fmt.Errorf("cli provider: no command configured")
	}

	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		a = strings.ReplaceAll(a, placeholderInstruction, req.Instruction)
		a = strings.ReplaceAll(a, placeholderFiletype, req.Filetype)
		a = strings.ReplaceAll(a, placeholderPath, req.Path)
		args[i] = a
	}

	stdin, err := p.payload(req)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, p.Command, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Run the child in its own process group and kill the group on cancel.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("cli provider %s: %w", p.Command, err)
		}
		return "", fmt.Errorf("cli provider %s: %s: %w", p.Command, msg, err)
	}

	return p.parse(stdout.String())
}

// payload builds the stdin content for one request.
func (p *Provider) payload(req transform.Request) (string, error) {
	if !p.JSON {
		return req.Text, nil
	}

	body := "{}"
	var err error
	for _, kv := range []struct{ key, val string }{
		{"text", req.Text},
		{"instruction", req.Instruction},
		{"filetype", req.Filetype},
		{"path", req.Path},
	} {
		body, err = sjson.Set(body, kv.key, kv.val)
		if err != nil {
			return "", fmt.Errorf("cli provider: build payload: %w", err)
		}
	}
	return body, nil
}

// parse extracts the transformed text from the command output.
func (p *Provider) parse(out string) (string, error) {
	out = strings.TrimSuffix(out, "\n")
	if !p.JSON {
		return out, nil
	}

	trimmed := strings.TrimSpace(out)
	if gjson.Valid(trimmed) {
		if res := gjson.Get(trimmed, "text"); res.Exists() {
			return res.String(), nil
		}
		if res := gjson.Get(trimmed, "error"); res.Exists() {
			return "", fmt.Errorf("cli provider %s: %s", p.Command, res.String())
		}
	}

	// Not an envelope; treat the output as the raw result.
	return out, nil
}
