package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success. False once any assertion fails.
	Pass bool `json:"pass"`

	// Output is the raw transcript: prompts and responses as written.
	Output string `json:"output"`

	// Lines is Output split on newlines, without the trailing empty element.
	Lines []string `json:"lines"`

	// Exited is true if the script ended with ".exit" rather than running
	// out of input.
	Exited bool `json:"exited"`

	// RowCount is the number of rows in the table after the script.
	RowCount int `json:"row_count"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Lines:  []string{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
