package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_Text(t *testing.T) {
	out, err := executeCommand(t, "capabilities")
	require.NoError(t, err)
	assert.Contains(t, out, "Spatial: Equals, Disjoint, Intersects, BBOX, Crosses, Within, Contains, Overlaps, Touches, DWithin, Beyond\n")
	assert.Contains(t, out, "Operators: And, Exclude, Id, Include, Not, Or, ")
}

func TestCapabilities_JSON(t *testing.T) {
	out, err := executeCommand(t, "capabilities", "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	data := resp.Data.(map[string]any)
	assert.Len(t, data["spatial"], 11)
	assert.Len(t, data["operators"], 14)
	assert.Equal(t, testTraceID, resp.TraceID)
}
