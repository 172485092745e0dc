// Package main is the entry point for the revise command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/revise/internal/app"
	"github.com/dshills/revise/internal/engine/buffer"
	"github.com/dshills/revise/internal/preview"
	"github.com/dshills/revise/internal/selection"
	"github.com/dshills/revise/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	app app.Options

	file        string
	instruction string
	mode        string
	startLine   int
	startCol    int
	endLine     int
	endCol      int
	interactive bool
	write       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	data, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	buf := buffer.FromString(string(data),
		buffer.WithPath(opts.file),
		buffer.WithFiletype(detectFiletype(opts.file)))

	mode, err := selection.ParseMode(opts.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := application.Session()

	var confirm session.ConfirmFunc
	if opts.interactive {
		confirm = confirmOnScreen(opts.file)
	}

	err = sess.Run(ctx, buf,
		selection.Pos{Line: opts.startLine, Col: opts.startCol},
		selection.Pos{Line: opts.endLine, Col: opts.endCol},
		mode, opts.instruction, confirm)
	switch {
	case errors.Is(err, session.ErrRejected):
		fmt.Fprintln(os.Stderr, "Replacement discarded.")
		return 0
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.write {
		if err := os.WriteFile(opts.file, []byte(buf.Text()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Print(buf.Text())
	if !strings.HasSuffix(buf.Text(), "\n") {
		fmt.Println()
	}
	return 0
}

// confirmOnScreen shows the diff on a terminal screen and asks for approval.
func confirmOnScreen(title string) session.ConfirmFunc {
	return func(original, replacement []string) (bool, error) {
		ops := preview.Diff(original, replacement)
		if !preview.Changed(ops) {
			return true, nil
		}
		screen, err := preview.NewScreen()
		if err != nil {
			return false, err
		}
		return screen.Confirm(title, ops)
	}
}

// detectFiletype derives a language hint from the file extension.
func detectFiletype(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "py":
		return "python"
	case "rb":
		return "ruby"
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "md":
		return "markdown"
	default:
		return ext
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.app.Provider, "provider", "", "Override the configured provider (cli, anthropic, openai, gemini)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.instruction, "instruction", "", "Transformation instruction")
	flag.StringVar(&opts.instruction, "i", "", "Transformation instruction (shorthand)")
	flag.StringVar(&opts.mode, "mode", "line", "Selection mode (char, line, block)")
	flag.IntVar(&opts.startLine, "start-line", 0, "First selected line (1-based)")
	flag.IntVar(&opts.startCol, "start-col", 0, "Start column (0-based, char/block modes)")
	flag.IntVar(&opts.endLine, "end-line", 0, "Last selected line (1-based, inclusive)")
	flag.IntVar(&opts.endCol, "end-col", 0, "End column (0-based inclusive, char/block modes)")
	flag.BoolVar(&opts.interactive, "interactive", false, "Preview the diff and confirm before applying")
	flag.BoolVar(&opts.write, "write", false, "Write the result back to the file instead of stdout")
	flag.BoolVar(&opts.write, "w", false, "Write the result back to the file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "revise - selection-based AI text transformation\n\n")
		fmt.Fprintf(os.Stderr, "Usage: revise [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  revise -i \"fix grammar\" -start-line 3 -end-line 7 notes.md\n")
		fmt.Fprintf(os.Stderr, "  revise -i \"add error handling\" -mode char -start-line 10 -start-col 4 -end-line 10 -end-col 37 -w main.go\n")
		fmt.Fprintf(os.Stderr, "  revise -i \"align comments\" -mode block -start-line 2 -start-col 20 -end-line 8 -end-col 40 -interactive main.go\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("revise %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one file argument is required")
		flag.Usage()
		os.Exit(1)
	}
	opts.file = flag.Arg(0)

	if opts.instruction == "" {
		fmt.Fprintln(os.Stderr, "Error: -instruction is required")
		os.Exit(1)
	}
	if opts.startLine <= 0 || opts.endLine <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -start-line and -end-line are required and 1-based")
		os.Exit(1)
	}

	return opts
}
