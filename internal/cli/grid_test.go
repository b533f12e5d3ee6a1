package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeGrid(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewGridCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGrid_Scores(t *testing.T) {
	out, err := executeGrid(t, "text", "testdata/ab.input")
	require.NoError(t, err)
	assert.Equal(t,
		"0.0   0.0   0.0\n"+
			"0.0   1.0   -1.0\n"+
			"0.0   -1.0  2.0\n",
		out)
}

func TestGrid_Pointers(t *testing.T) {
	out, err := executeGrid(t, "text", "testdata/ab.input", "--kind", "M", "--pointers")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimRight([]byte(out), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("{}")), "boundary cells have no pointers")
	assert.True(t, bytes.HasSuffix(lines[2], []byte("{M(1,1)}")))
}

func TestGrid_JSON(t *testing.T) {
	out, err := executeGrid(t, "json", "testdata/ab.input", "--kind", "ix", "--pointers")
	require.NoError(t, err)

	var resp struct {
		Data GridOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Ix", resp.Data.Kind)
	assert.Equal(t, 3, resp.Data.Rows)
	assert.Equal(t, 3, resp.Data.Cols)
	require.Len(t, resp.Data.Scores, 3)
	assert.Equal(t, []float64{0, 0, 0}, resp.Data.Scores[0])
	require.Len(t, resp.Data.Pointers, 3)
	assert.Empty(t, resp.Data.Pointers[0][0])
}

func TestGrid_InvalidKind(t *testing.T) {
	_, err := executeGrid(t, "text", "testdata/ab.input", "--kind", "Q")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid --kind")
}

func TestGrid_MissingPair(t *testing.T) {
	_, err := executeGrid(t, "text", "testdata/missing_pair.input")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "fill failed")
}
