package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tdgeo/internal/testutil"
)

const testTraceID = "trace-0001"

const testConfig = `
dialect: {
	quoting: "ansi"
	grid: {
		u_xmin: 0
		u_ymin: 0
		u_xmax: 100
		u_ymax: 100
		nx: 4
		ny: 4
		levels: 2
		scale: 1
	}
	tables: parcels: { primary_key: "id", indexes: ["geom"] }
}
`

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{TraceIDs: testutil.NewFixedTraceGenerator(testTraceID)})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse parses a single JSON CLIResponse.
func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
