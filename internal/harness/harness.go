package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/rowdb/internal/repl"
	"github.com/roach88/rowdb/internal/table"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh in-memory table with logging discarded and the
// scenario name as session id, so transcripts are reproducible.
//
// Execution flow:
// 1. Create a table bounded by MaxPages
// 2. Feed the expanded command lines to a session
// 3. Capture the transcript and final row count
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	tbl := table.New(table.WithMaxPages(scenario.MaxPages))
	session := repl.New(tbl,
		repl.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		repl.WithIDGenerator(repl.NewFixedGenerator(scenario.Name)),
	)

	script := strings.Join(scenario.Lines(), "\n") + "\n"
	var out bytes.Buffer

	result := NewResult()
	err := session.Run(ctx, strings.NewReader(script), &out)
	switch {
	case err == nil:
		result.Exited = true
	case errors.Is(err, repl.ErrInputClosed):
		result.Exited = false
	default:
		return nil, fmt.Errorf("run scenario %q: %w", scenario.Name, err)
	}

	result.Output = out.String()
	result.Lines = splitLines(result.Output)
	result.RowCount = tbl.Len()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func splitLines(output string) []string {
	trimmed := strings.TrimSuffix(output, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}
