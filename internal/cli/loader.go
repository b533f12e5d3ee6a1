package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/store"
)

// LoadError represents an error that occurred while loading a command input.
type LoadError struct {
	Code    string
	Message string
	Line    int // input line if known
	Err     error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadConfig loads an alignment configuration, mapping failures to
// LoadErrors with stable codes.
func LoadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error accessing config file: %v", err), Err: err}
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		var fe *config.FormatError
		if errors.As(err, &fe) {
			return nil, &LoadError{
				Code:    MapFieldToErrorCode(fe.Field),
				Message: fe.Error(),
				Line:    fe.Line,
				Err:     err,
			}
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// LoadReport reads an alignment report file.
func LoadReport(path string) (*analysis.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("report file not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error opening report: %v", err), Err: err}
	}
	defer f.Close()

	rep, err := analysis.ParseReport(f)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadReport, Message: err.Error(), Err: err}
	}
	return rep, nil
}

// OpenStore opens an existing run history database.
func OpenStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", path), Err: err}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeStore, Message: fmt.Sprintf("failed to open database: %v", err), Err: err}
	}
	return st, nil
}

// loadErrorCode returns the code of a LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeLoadFailed  = "E004" // Config load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStore       = "E008" // Database error
	ErrCodeBadReport   = "E009" // Malformed report

	// Config format errors
	ErrCodeHeader   = "E101" // Truncated header
	ErrCodeMode     = "E102" // Bad mode flag
	ErrCodeGaps     = "E103" // Bad gap penalties
	ErrCodeAlphabet = "E104" // Bad alphabet size or symbols
	ErrCodeScores   = "E105" // Bad substitution entry
	ErrCodeSchema   = "E106" // Structured document rejected by schema

	// Alignment errors
	ErrCodeMissingPair = "E201" // Substitution pair missing at fill time
	ErrCodePathLimit   = "E202" // Traceback exceeded --max-paths
	ErrCodeTimeout     = "E203" // Alignment cancelled or timed out
)

// MapFieldToErrorCode maps a config.FormatError field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "header":
		return ErrCodeHeader
	case "mode":
		return ErrCodeMode
	case "gaps":
		return ErrCodeGaps
	case "alphabet_a", "alphabet_a size", "alphabet_b", "alphabet_b size":
		return ErrCodeAlphabet
	case "scores":
		return ErrCodeScores
	case "yaml", "cue":
		return ErrCodeSchema
	case "input":
		return ErrCodeLoadFailed
	default:
		if strings.HasPrefix(field, "scores[") {
			return ErrCodeScores
		}
		return ErrCodeGeneric
	}
}
