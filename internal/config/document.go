package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/terryli710/gotoh/internal/subst"
)

//go:embed schema.cue
var schemaCUE string

// Document is the structured (YAML or CUE) form of a Config.
type Document struct {
	SeqA      string            `json:"seq_a" yaml:"seq_a"`
	SeqB      string            `json:"seq_b" yaml:"seq_b"`
	Mode      string            `json:"mode,omitempty" yaml:"mode,omitempty"`
	Gaps      GapsDocument      `json:"gaps" yaml:"gaps"`
	AlphabetA string            `json:"alphabet_a" yaml:"alphabet_a"`
	AlphabetB string            `json:"alphabet_b" yaml:"alphabet_b"`
	Identity  *IdentityDocument `json:"identity,omitempty" yaml:"identity,omitempty"`
	Scores    []ScoreDocument   `json:"scores,omitempty" yaml:"scores,omitempty"`
}

// GapsDocument holds the four gap penalties.
type GapsDocument struct {
	OpenA   float64 `json:"open_a" yaml:"open_a"`
	ExtendA float64 `json:"extend_a" yaml:"extend_a"`
	OpenB   float64 `json:"open_b" yaml:"open_b"`
	ExtendB float64 `json:"extend_b" yaml:"extend_b"`
}

// IdentityDocument fills the table with match/mismatch scores over
// alphabet A × alphabet B before explicit scores are applied.
type IdentityDocument struct {
	Match    float64 `json:"match" yaml:"match"`
	Mismatch float64 `json:"mismatch" yaml:"mismatch"`
}

// ScoreDocument is one explicit substitution entry.
type ScoreDocument struct {
	A     string  `json:"a" yaml:"a"`
	B     string  `json:"b" yaml:"b"`
	Score float64 `json:"score" yaml:"score"`
}

// ParseYAML decodes a YAML document, rejecting unknown fields, validates it
// against the schema and builds a Config.
func ParseYAML(data []byte) (*Config, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &FormatError{Field: "yaml", Message: "decode failed", Err: err}
	}

	ctx := cuecontext.New()
	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return buildFromCUE(ctx, v)
}

// ParseCUE compiles a CUE document, unifies it with the schema and builds a
// Config. filename is used in error positions only.
func ParseCUE(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return buildFromCUE(ctx, v)
}

// buildFromCUE validates v against #Config and decodes the unified value,
// so schema defaults (mode) are applied.
func buildFromCUE(ctx *cue.Context, v cue.Value) (*Config, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config: compile schema: %w", err)
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}
	return doc.Build()
}

// Build converts a validated document into a Config.
func (d *Document) Build() (*Config, error) {
	mode := Global
	if d.Mode != "" {
		m, err := ParseMode(d.Mode)
		if err != nil {
			return nil, &FormatError{Field: "mode", Message: "invalid mode", Err: err}
		}
		mode = m
	}

	alphaA, err := subst.NewAlphabet(normalize(d.AlphabetA))
	if err != nil {
		return nil, &FormatError{Field: "alphabet_a", Message: "invalid alphabet", Err: err}
	}
	alphaB, err := subst.NewAlphabet(normalize(d.AlphabetB))
	if err != nil {
		return nil, &FormatError{Field: "alphabet_b", Message: "invalid alphabet", Err: err}
	}

	table := subst.New()
	if d.Identity != nil {
		table = subst.Identity(alphaA, alphaB, d.Identity.Match, d.Identity.Mismatch)
	}
	for i, s := range d.Scores {
		a, ok := singleSymbol(s.A)
		if !ok {
			return nil, formatErrorf(0, fmt.Sprintf("scores[%d].a", i), "%q is not a single character", s.A)
		}
		b, ok := singleSymbol(s.B)
		if !ok {
			return nil, formatErrorf(0, fmt.Sprintf("scores[%d].b", i), "%q is not a single character", s.B)
		}
		table.Set(a, b, s.Score)
	}

	return &Config{
		SeqA: normalize(d.SeqA),
		SeqB: normalize(d.SeqB),
		Mode: mode,
		Gaps: Penalties{
			OpenA:   d.Gaps.OpenA,
			ExtendA: d.Gaps.ExtendA,
			OpenB:   d.Gaps.OpenB,
			ExtendB: d.Gaps.ExtendB,
		},
		AlphabetA: alphaA,
		AlphabetB: alphaB,
		DeclaredA: -1,
		DeclaredB: -1,
		Table:     table,
	}, nil
}

// formatCUEError converts a CUE error into a FormatError carrying the first
// error's line when available.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &FormatError{Field: "cue", Message: "invalid document", Err: err}
	}
	first := errs[0]
	fe := &FormatError{Field: "cue", Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		fe.Line = positions[0].Line()
	}
	return fe
}
