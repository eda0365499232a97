// Package harness runs rowdb transcript scenarios.
//
// A scenario feeds a list of input lines to a fresh in-memory session and
// checks the captured output. Each scenario gets its own table, so scenarios
// never see each other's rows.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: table_full
//	description: "1401 inserts overflow a 100 page table"
//	max_pages: 100            # optional, defaults to the table default
//	commands:
//	  - command: "insert {i} user{i} person{i}@example.com"
//	    repeat: 1401          # {i} runs 1..repeat
//	  - command: ".exit"
//	assertions:
//	  - type: output_line
//	    index: -2             # negative counts from the end
//	    text: "db> Error: Table full."
//	  - type: row_count
//	    count: 1300
//
// Assertion types: output_equals (lines), output_line (index, text),
// output_contains (text), row_count (count).
//
// # Golden Files
//
// RunWithGolden compares the full transcript against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
