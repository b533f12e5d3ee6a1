package harness

import (
	"fmt"
	"strings"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/grid"
	"github.com/terryli710/gotoh/internal/render"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type       string             // Assertion type for categorization
	Expected   string             // Human-readable expected outcome
	Actual     string             // Human-readable actual outcome
	Alignments []render.Alignment // Produced alignments for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Alignments) > 0 {
		fmt.Fprintf(&buf, "\nAlignments:\n")
		for i, al := range e.Alignments {
			fmt.Fprintf(&buf, "  [%d] %s / %s\n", i+1, al.A, al.B)
		}
	}

	return buf.String()
}

// assertScore checks the best score, compared at grid precision.
func assertScore(result *Result, assertion Assertion) error {
	want := grid.Round(*assertion.Score, grid.Precision)
	if engine.FuzzyEqual(result.Score, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertScore,
		Expected: fmt.Sprintf("score %v", want),
		Actual:   fmt.Sprintf("score %v", result.Score),
	}
}

// assertAlignmentContains checks that one specific alignment was produced.
func assertAlignmentContains(result *Result, assertion Assertion) error {
	want := render.Alignment{A: assertion.A, B: assertion.B}
	for _, al := range result.Alignments {
		if al == want {
			return nil
		}
	}
	return &AssertionError{
		Type:       AssertAlignmentContains,
		Expected:   fmt.Sprintf("alignment %s / %s", want.A, want.B),
		Actual:     "not produced",
		Alignments: result.Alignments,
	}
}

// assertAlignmentSet checks the produced alignments equal the expected set,
// ignoring order.
func assertAlignmentSet(result *Result, assertion Assertion) error {
	want := make([]render.Alignment, len(assertion.Alignments))
	for i, a := range assertion.Alignments {
		want[i] = render.Alignment{A: a.A, B: a.B}
	}

	d := analysis.Compare(want, result.Alignments)
	if d.Equal() {
		return nil
	}

	var missing, extra []string
	for _, al := range d.OnlyLeft {
		missing = append(missing, al.A+"/"+al.B)
	}
	for _, al := range d.OnlyRight {
		extra = append(extra, al.A+"/"+al.B)
	}
	return &AssertionError{
		Type:       AssertAlignmentSet,
		Expected:   fmt.Sprintf("%d alignments", len(want)),
		Actual:     fmt.Sprintf("missing [%s], unexpected [%s]", strings.Join(missing, ", "), strings.Join(extra, ", ")),
		Alignments: result.Alignments,
	}
}

// assertCount checks an exact count of alignments or paths.
func assertCount(kind string, actual int, assertion Assertion) error {
	if actual == *assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d", *assertion.Count),
		Actual:   fmt.Sprintf("%d", actual),
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertScore:
			if assertion.Score == nil {
				err = fmt.Errorf("assertion[%d]: score requires a score value", i)
			} else {
				err = assertScore(result, assertion)
			}
		case AssertAlignmentContains:
			err = assertAlignmentContains(result, assertion)
		case AssertAlignmentSet:
			err = assertAlignmentSet(result, assertion)
		case AssertAlignmentCount, AssertPathCount:
			actual := len(result.Alignments)
			if assertion.Type == AssertPathCount {
				actual = result.PathCount
			}
			if assertion.Count == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a count", i, assertion.Type)
			} else {
				err = assertCount(assertion.Type, actual, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
