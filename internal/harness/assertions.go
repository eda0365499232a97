package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertOutputEquals:
		return assertOutputEquals(result.Lines, a.Lines)
	case AssertOutputLine:
		return assertOutputLine(result.Lines, a.Index, a.Text)
	case AssertOutputContains:
		return assertOutputContains(result.Output, a.Text)
	case AssertRowCount:
		if a.Count == nil {
			return fmt.Errorf("row_count without count")
		}
		return assertRowCount(result.RowCount, *a.Count)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertOutputEquals(got, want []string) error {
	if len(got) != len(want) {
		return &AssertionError{
			Type:     AssertOutputEquals,
			Expected: fmt.Sprintf("%d lines", len(want)),
			Actual:   fmt.Sprintf("%d lines", len(got)),
		}
	}
	for i := range want {
		if got[i] != want[i] {
			return &AssertionError{
				Type:     AssertOutputEquals,
				Expected: fmt.Sprintf("line %d = %q", i, want[i]),
				Actual:   fmt.Sprintf("line %d = %q", i, got[i]),
			}
		}
	}
	return nil
}

// assertOutputLine resolves negative indexes from the end, so -1 is the last line.
func assertOutputLine(lines []string, index int, want string) error {
	i := index
	if i < 0 {
		i += len(lines)
	}
	if i < 0 || i >= len(lines) {
		return &AssertionError{
			Type:     AssertOutputLine,
			Expected: fmt.Sprintf("line %d = %q", index, want),
			Actual:   fmt.Sprintf("only %d lines", len(lines)),
		}
	}
	if lines[i] != want {
		return &AssertionError{
			Type:     AssertOutputLine,
			Expected: fmt.Sprintf("line %d = %q", index, want),
			Actual:   fmt.Sprintf("line %d = %q", index, lines[i]),
		}
	}
	return nil
}

func assertOutputContains(output, want string) error {
	if !strings.Contains(output, want) {
		return &AssertionError{
			Type:     AssertOutputContains,
			Expected: fmt.Sprintf("output containing %q", want),
			Actual:   "not found",
		}
	}
	return nil
}

func assertRowCount(got, want int) error {
	if got != want {
		return &AssertionError{
			Type:     AssertRowCount,
			Expected: fmt.Sprintf("%d rows", want),
			Actual:   fmt.Sprintf("%d rows", got),
		}
	}
	return nil
}
