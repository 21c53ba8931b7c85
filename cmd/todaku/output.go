package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/itchyny/json2yaml"

	"github.com/todaku-reader/todaku-api/internal/generation"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// progressPrinter renders attempt events as one line each.
type progressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	ok      *color.Color
	failed  *color.Color
	pending *color.Color
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:       w,
		ok:      color.New(color.FgGreen),
		failed:  color.New(color.FgYellow),
		pending: color.New(color.FgCyan),
	}
}

// Hook implements generation.AttemptHook.
func (p *progressPrinter) Hook(e generation.AttemptEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := e.Elapsed.Round(100 * time.Millisecond)
	switch {
	case !e.Done:
		p.pending.Fprintf(p.w, "  attempt %d/%d started (%s elapsed)\n", e.Attempt, e.MaxAttempts, elapsed)
	case e.Err != nil:
		p.failed.Fprintf(p.w, "  attempt %d/%d failed after %s: %v\n", e.Attempt, e.MaxAttempts, elapsed, e.Err)
	default:
		p.ok.Fprintf(p.w, "  lesson ready after %d attempt(s) in %s\n", e.Attempt, elapsed)
	}
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	c := color.New(color.FgYellow)
	c.Fprintf(w, "%d consistency warning(s):\n", len(warnings))
	for _, warning := range warnings {
		c.Fprintf(w, "  - %s\n", warning)
	}
}

// writeLesson prints v as indented JSON or as YAML.
func writeLesson(w io.Writer, v interface{}, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lesson: %w", err)
	}
	switch format {
	case formatYAML:
		return json2yaml.Convert(w, bytes.NewReader(data))
	case formatJSON, "":
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
