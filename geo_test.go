package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/customer_dashboard/domain/models"
)

func TestDefaultRegionTable(t *testing.T) {
	table := DefaultRegionTable()

	assert.Equal(t, models.Coordinates{Lat: 19.7515, Lon: 75.7139}, table.Lookup("Maharashtra"))
	assert.Equal(t, models.Coordinates{Lat: 28.7041, Lon: 77.1025}, table.Lookup("Delhi"))
	assert.Equal(t, models.Coordinates{}, table.Lookup("Atlantis"))
}

func TestLoadRegionTableOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	content := `Texas:
  lat: 31.9686
  lon: -99.9018
Maharashtra:
  lat: 1.5
  lon: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadRegionTable(path)
	require.NoError(t, err)

	// new region added
	assert.Equal(t, models.Coordinates{Lat: 31.9686, Lon: -99.9018}, table.Lookup("Texas"))
	// built-in overridden
	assert.Equal(t, models.Coordinates{Lat: 1.5, Lon: 2.5}, table.Lookup("Maharashtra"))
	// untouched built-in kept
	assert.Equal(t, models.Coordinates{Lat: 28.7041, Lon: 77.1025}, table.Lookup("Delhi"))
	// defaults stay intact
	assert.Equal(t, models.Coordinates{Lat: 19.7515, Lon: 75.7139}, DefaultRegionTable().Lookup("Maharashtra"))
}

func TestLoadRegionTableEmptyPath(t *testing.T) {
	table, err := LoadRegionTable("")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 22.2587, Lon: 71.1924}, table.Lookup("Gujarat"))
}

func TestLoadRegionTableMissingFile(t *testing.T) {
	_, err := LoadRegionTable(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRegionTableBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := LoadRegionTable(path)
	assert.Error(t, err)
}
