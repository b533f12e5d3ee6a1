package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessTestdata = "../harness/testdata"

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestScenario writes a scenario using an inline two-symbol config.
func writeTestScenario(t *testing.T, dir, name string, wantScore float64) string {
	t.Helper()
	content := `name: ` + name + `
description: "ab against ab"
input: |
  ab
  ab
  0
  1 1 1 1
  2
  ab
  2
  ab
  1 1 a a 1
  1 2 a b -1
  2 1 b a -1
  2 2 b b 1
assertions:
  - type: score
    score: ` + jsonNumber(wantScore) + `
`
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func jsonNumber(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeTest(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeTest(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := executeTest(t, "json", t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := executeTest(t, "text",
		filepath.Join(harnessTestdata, "scenarios"),
		"--golden-dir", filepath.Join(harnessTestdata, "golden"),
	)
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ global_example\n")
	assert.Contains(t, out, "✓ local_repeat\n")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := executeTest(t, "json",
		filepath.Join(harnessTestdata, "scenarios"),
		"--filter", "local_*",
	)
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, 3, resp.Data.Passed)
	for _, s := range resp.Data.Scenarios {
		assert.Contains(t, s.Name, "local_")
	}
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeTestScenario(t, dir, "passing", 2)
	writeTestScenario(t, dir, "failing", 5)

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✓ passing\n")
	assert.Contains(t, out, "✗ failing\n")
	assert.Contains(t, out, "Assertion failed: score")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\n"), 0644))

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Contains(t, resp.Data.Scenarios[0].Errors[0], "failed to load scenario")
}

func TestTestCommandUpdateAndCompareGolden(t *testing.T) {
	dir := t.TempDir()
	writeTestScenario(t, dir, "ab", 2)

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ ab (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "ab.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, "2.0\n\nab\nab\n", string(data))

	// Golden directory is not scanned for scenarios; the report matches.
	_, err = executeTest(t, "text", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("2.0\n\nba\nba\n"), 0644))
	out, err = executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "report does not match golden file")
}
