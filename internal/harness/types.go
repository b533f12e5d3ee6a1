package harness

import "github.com/terryli710/gotoh/internal/render"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion and built-in check holds.
	Pass bool `json:"pass"`

	// Score is the best score reported by the engine.
	Score float64 `json:"score"`

	// Alignments are the unique alignments in output order.
	Alignments []render.Alignment `json:"alignments"`

	// PathCount is the number of traceback paths enumerated.
	PathCount int `json:"path_count"`

	// Report is the rendered plain-text report, used for golden comparison.
	Report string `json:"report"`

	// RunID is the id under which the run was recorded.
	RunID string `json:"run_id"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Alignments: []render.Alignment{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
