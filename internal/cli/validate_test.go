package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeValidate(t *testing.T, format, path string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidConfig(t *testing.T) {
	out, err := executeValidate(t, "text", "testdata/identity.input")
	require.NoError(t, err)
	assert.Equal(t, "✓ Config valid (global, 5 x 4)\n", out)
}

func TestValidateValidConfigJSON(t *testing.T) {
	out, err := executeValidate(t, "json", "testdata/identity.input")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "global", resp.Data.Mode)
	assert.Len(t, resp.Data.Fingerprint, 64)
	assert.Empty(t, resp.Data.Issues)
}

func TestValidateIssues(t *testing.T) {
	out, err := executeValidate(t, "text", "testdata/issues.input")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "  alphabet_a: declared size 3 but 2 symbols given\n")
	assert.Contains(t, out, "  seq_a: symbol 'z' not in alphabet A\n")
	assert.Contains(t, out, "  gaps.open_a: ")
	assert.NotContains(t, out, "alphabet_b")
}

func TestValidateIssuesJSON(t *testing.T) {
	out, err := executeValidate(t, "json", "testdata/issues.input")
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.NotEmpty(t, resp.Data.Issues)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "validation failed with")
}

func TestValidateNonExistentFile(t *testing.T) {
	_, err := executeValidate(t, "text", "/nonexistent/config.input")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidateMalformedJSON(t *testing.T) {
	out, err := executeValidate(t, "json", "testdata/truncated.input")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeHeader, resp.Error.Code)
}

func TestValidateMissingArg(t *testing.T) {
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
