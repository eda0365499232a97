package harness

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rowdb/internal/table"
)

// Scenario defines a transcript test.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxPages bounds the scenario's table. Zero uses the table default.
	MaxPages int `yaml:"max_pages,omitempty"`

	// Commands are the input lines, in order.
	Commands []CommandStep `yaml:"commands"`

	// Assertions validate the transcript and final table.
	Assertions []Assertion `yaml:"assertions"`
}

// CommandStep is one input line, optionally repeated with {i} substituted.
type CommandStep struct {
	Command string `yaml:"command"`

	// Repeat runs Command this many times with {i} replaced by 1..Repeat.
	// Zero means once, with {i} left as is.
	Repeat int `yaml:"repeat,omitempty"`
}

// Assertion validates the outcome of a scenario.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Lines is the full expected transcript (output_equals).
	Lines []string `yaml:"lines,omitempty"`

	// Index selects a transcript line (output_line). Negative counts from the end.
	Index int `yaml:"index,omitempty"`

	// Text is the expected line (output_line) or substring (output_contains).
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of rows (row_count).
	Count *int `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertOutputEquals   = "output_equals"
	AssertOutputLine     = "output_line"
	AssertOutputContains = "output_contains"
	AssertRowCount       = "row_count"
)

// Lines expands the command steps into the input script.
func (s *Scenario) Lines() []string {
	var lines []string
	for _, step := range s.Commands {
		if step.Repeat <= 0 {
			lines = append(lines, step.Command)
			continue
		}
		for i := 1; i <= step.Repeat; i++ {
			lines = append(lines, strings.ReplaceAll(step.Command, "{i}", strconv.Itoa(i)))
		}
	}
	return lines
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(s.Name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", s.Name)
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.MaxPages < 0 || s.MaxPages > table.MaxPagesLimit {
		return fmt.Errorf("max_pages must be between 0 and %d", table.MaxPagesLimit)
	}

	if len(s.Commands) == 0 {
		return fmt.Errorf("commands list is required and must be non-empty")
	}

	for i, step := range s.Commands {
		if step.Repeat < 0 {
			return fmt.Errorf("commands[%d]: repeat must not be negative", i)
		}
		if step.Repeat > 0 && !strings.Contains(step.Command, "{i}") {
			return fmt.Errorf("commands[%d]: repeated command must contain {i}", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertOutputEquals:
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines is required for output_equals", index)
		}
	case AssertOutputLine:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_line", index)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertRowCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for row_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
