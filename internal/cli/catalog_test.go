package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RegisterAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tdgeo.db")

	out, err := executeCommand(t, "catalog", "register-table", "--db", db, "--table", "parcels", "--primary-key", "id")
	require.NoError(t, err)
	assert.Contains(t, out, "registered table parcels (primary key id)")

	out, err = executeCommand(t, "catalog", "register-index", "--db", db, "--table", "parcels", "--column", "geom")
	require.NoError(t, err)
	assert.Contains(t, out, "registered index table parcels_geom_idx")

	out, err = executeCommand(t, "catalog", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Tables:\n  parcels (primary key id)\nIndex tables:\n  parcels_geom_idx -> parcels.geom\n", out)
}

func TestCatalog_ListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tdgeo.db")

	out, err := executeCommand(t, "catalog", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No tables registered.\n", out)
}

func TestCatalog_ListJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tdgeo.db")

	_, err := executeCommand(t, "catalog", "register-table", "--db", db, "--schema", "gis", "--table", "roads", "--primary-key", "road_id")
	require.NoError(t, err)

	out, err := executeCommand(t, "catalog", "list", "--db", db, "--schema", "gis", "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	tables := data["tables"].([]any)
	require.Len(t, tables, 1)
	assert.Equal(t, map[string]any{"schema": "gis", "name": "roads", "primary_key": "road_id"}, tables[0])
	assert.Empty(t, data["indexes"])
}

func TestCatalog_RegisterIndexUnknownTable(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tdgeo.db")

	out, err := executeCommand(t, "catalog", "register-index", "--db", db, "--table", "ghost", "--column", "geom")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
	assert.Contains(t, out, "table not registered")
}

func TestCatalog_RequiredFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tdgeo.db")

	_, err := executeCommand(t, "catalog", "register-table", "--db", db, "--table", "parcels")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary-key")
}
