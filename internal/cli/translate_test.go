package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_NoContext(t *testing.T) {
	out, err := executeCommand(t, "translate", "--kind", "Within", "--wkt", "POINT (1 2)")
	require.NoError(t, err)
	assert.Equal(t, `"geom".ST_Within(SYSSPATIAL.ST_GEOMFROMTEXT('POINT (1 2)')) = 1`+"\n", out)
}

func TestTranslate_ConfiguredTableJSON(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "tdgeo.cue", testConfig)

	out, err := executeCommand(t, "translate", "--format", "json",
		"--config", cfg, "--table", "parcels",
		"--kind", "DWithin", "--wkt", "POINT (0 0)", "--distance", "10.5")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "parcels", data["table"])
	assert.Equal(t,
		`"id" IN (SELECT DISTINCT ti.id FROM "parcels_geom_idx" ti, `+
			`TABLE(SYSSPATIAL.tessellate_search(1, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 100.0, 100.0, 4, 4, 2, 1, 0)) AS i `+
			`WHERE ti.cellid = i.cellid) AND "geom".ST_DWithin(SYSSPATIAL.ST_GEOMFROMTEXT('POINT (0 0)'), 10.5)`,
		data["sql"])
}

func TestTranslate_Swapped(t *testing.T) {
	out, err := executeCommand(t, "translate", "--kind", "Contains", "--wkt", "POINT (1 2)", "--swapped")
	require.NoError(t, err)
	assert.Contains(t, out, ".ST_Within(")
}

func TestTranslate_GeoJSON(t *testing.T) {
	out, err := executeCommand(t, "translate", "--kind", "Touches", "--property", "shape",
		"--geojson", `{"type":"Point","coordinates":[2,3]}`)
	require.NoError(t, err)
	assert.Equal(t, `"shape".ST_Touches(SYSSPATIAL.ST_GEOMFROMTEXT('POINT (2 3)')) = 1`+"\n", out)
}

func TestTranslate_PredicateFile(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "tree.yaml", `
or:
  - kind: Crosses
    wkt: "LINESTRING (0 0, 1 1)"
  - kind: Beyond
    wkt: "POINT (0 0)"
    distance: 3
`)

	out, err := executeCommand(t, "translate", "--predicate", tree)
	require.NoError(t, err)
	assert.Equal(t,
		`("geom".ST_Crosses(SYSSPATIAL.ST_GEOMFROMTEXT('LINESTRING (0 0, 1 1)')) = 1 OR `+
			`"geom".ST_Distance(SYSSPATIAL.ST_GEOMFROMTEXT('POINT (0 0)')) > 3)`+"\n",
		out)
}

func TestTranslate_PredicateFileConflictsWithKind(t *testing.T) {
	tree := writeFile(t, t.TempDir(), "tree.yaml", "kind: Within\nwkt: \"POINT (0 0)\"\n")

	out, err := executeCommand(t, "translate", "--predicate", tree, "--kind", "Equals")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestTranslate_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "tdgeo.cue", testConfig)
	badCfg := writeFile(t, dir, "bad.cue", `dialect: quoting: "sometimes"`)

	tests := []struct {
		name     string
		args     []string
		exitCode int
		errCode  string
	}{
		{"missing kind", []string{"--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeUsage},
		{"unknown kind", []string{"--kind", "Near", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeUsage},
		{"bad config", []string{"--config", badCfg, "--kind", "Within", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeConfig},
		{"unknown table", []string{"--config", cfg, "--table", "roads", "--kind", "Within", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeNotFound},
		{"schema without catalog", []string{"--table", "parcels", "--schema", "gis", "--kind", "Within", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeUsage},
		{"catalog without table", []string{"--catalog", "x.db", "--kind", "Within", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeUsage},
		{"missing catalog", []string{"--catalog", dir + "/absent.db", "--table", "parcels", "--kind", "Within", "--wkt", "POINT (0 0)"}, ExitCommandError, ErrCodeNotFound},
		{"bad literal", []string{"--kind", "Within", "--wkt", "POINT (oops)"}, ExitFailure, ErrCodeTranslate},
		{"negative distance", []string{"--kind", "DWithin", "--wkt", "POINT (0 0)", "--distance", "-2"}, ExitFailure, ErrCodeTranslate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"translate", "--format", "json"}, tt.args...)
			out, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))

			resp := decodeResponse(t, out)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.errCode, resp.Error.Code)
			assert.Equal(t, testTraceID, resp.TraceID)
		})
	}
}

func TestTranslate_ErrorDetailsCarryTranslateCode(t *testing.T) {
	out, err := executeCommand(t, "translate", "--format", "json", "--kind", "Within", "--wkt", "nope")
	require.Error(t, err)

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GEOMETRY_EVALUATION", details["code"])
}

func TestTranslate_FromCatalog(t *testing.T) {
	dir := t.TempDir()
	db := dir + "/tdgeo.db"
	cfg := writeFile(t, dir, "tdgeo.cue", testConfig)

	_, err := executeCommand(t, "catalog", "register-table", "--db", db, "--schema", "gis", "--table", "roads", "--primary-key", "road_id")
	require.NoError(t, err)
	_, err = executeCommand(t, "catalog", "register-index", "--db", db, "--schema", "gis", "--table", "roads", "--column", "geom")
	require.NoError(t, err)

	out, err := executeCommand(t, "translate", "--config", cfg, "--catalog", db,
		"--schema", "gis", "--table", "roads",
		"--kind", "Intersects", "--wkt", "POINT (5 5)")
	require.NoError(t, err)
	assert.Contains(t, out, `"road_id" IN (SELECT DISTINCT ti.id FROM "gis"."roads_geom_idx" ti, `)
	assert.Contains(t, out, `tessellate_search(1, 5.0, 5.0, 5.0, 5.0, 0.0, 0.0, 100.0, 100.0, 4, 4, 2, 1, 0)`)
}

func TestTranslate_CatalogIndexWithoutGrid(t *testing.T) {
	db := t.TempDir() + "/tdgeo.db"

	_, err := executeCommand(t, "catalog", "register-table", "--db", db, "--table", "roads", "--primary-key", "id")
	require.NoError(t, err)
	_, err = executeCommand(t, "catalog", "register-index", "--db", db, "--table", "roads", "--column", "geom")
	require.NoError(t, err)

	out, err := executeCommand(t, "translate", "--catalog", db, "--table", "roads", "--kind", "Within", "--wkt", "POINT (0 0)")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E003]")
}
