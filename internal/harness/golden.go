package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenSuffix is the extension of transcript golden files.
const GoldenSuffix = ".golden"

// RunWithGolden executes a scenario and compares the transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie) occurs
// if the transcript doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's transcript against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, name, []byte(result.Output))
}

// GoldenPath returns the golden file path for a scenario under dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, name+GoldenSuffix)
}

// CompareGolden checks a transcript against dir/name.golden outside of tests.
// A missing golden file is an error.
func CompareGolden(dir, name string, result *Result) error {
	path := GoldenPath(dir, name)
	want, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(want, []byte(result.Output)) {
		return fmt.Errorf("transcript differs from %s", path)
	}
	return nil
}

// UpdateGolden writes the transcript to dir/name.golden, creating dir if needed.
func UpdateGolden(dir, name string, result *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	if err := os.WriteFile(GoldenPath(dir, name), []byte(result.Output), 0644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}
