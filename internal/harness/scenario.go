package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one alignment test case.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the path of a configuration file (legacy, YAML or CUE).
	// Relative paths are resolved against the scenario file's directory.
	Config string `yaml:"config,omitempty"`

	// Input is an inline configuration in the legacy text format.
	// Exactly one of Config and Input must be set.
	Input string `yaml:"input,omitempty"`

	// MaxPaths bounds path enumeration; 0 means unlimited.
	MaxPaths int `yaml:"max_paths,omitempty"`

	// Assertions validate the alignment result.
	// Supported types: score, alignment_contains, alignment_set,
	// alignment_count, path_count
	Assertions []Assertion `yaml:"assertions"`
}

// AlignmentSpec is one expected alignment.
type AlignmentSpec struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Assertion validates one aspect of the result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "score": best score equals Score (3 decimal places)
	// - "alignment_contains": the alignment A/B is produced
	// - "alignment_set": exactly the Alignments are produced, in any order
	// - "alignment_count": exactly Count alignments are produced
	// - "path_count": exactly Count traceback paths are enumerated
	Type string `yaml:"type"`

	// Score is the expected best score (used by score).
	Score *float64 `yaml:"score,omitempty"`

	// A and B are the expected aligned strings (used by alignment_contains).
	A string `yaml:"a,omitempty"`
	B string `yaml:"b,omitempty"`

	// Alignments is the expected alignment set (used by alignment_set).
	Alignments []AlignmentSpec `yaml:"alignments,omitempty"`

	// Count is the expected number (used by alignment_count, path_count).
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertScore             = "score"
	AssertAlignmentContains = "alignment_contains"
	AssertAlignmentSet      = "alignment_set"
	AssertAlignmentCount    = "alignment_count"
	AssertPathCount         = "path_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// A relative Config path is resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(path), scenario.Config)
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

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Config == "" && s.Input == "":
		return fmt.Errorf("one of config or input is required")
	case s.Config != "" && s.Input != "":
		return fmt.Errorf("config and input are mutually exclusive")
	}

	if s.Config != "" {
		if _, err := os.Stat(s.Config); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", s.Config)
		}
	}

	if s.MaxPaths < 0 {
		return fmt.Errorf("max_paths must be non-negative")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertScore:
		if a.Score == nil {
			return fmt.Errorf("assertions[%d]: score is required for score", index)
		}
	case AssertAlignmentContains:
		if a.A == "" && a.B == "" {
			return fmt.Errorf("assertions[%d]: a and b are required for alignment_contains", index)
		}
	case AssertAlignmentSet:
		// An empty set is valid: it asserts that nothing aligns.
	case AssertAlignmentCount, AssertPathCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
