package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// RegionTable maps region names to fixed map coordinates. Unknown regions
// resolve to the (0, 0) sentinel so they still show up in summaries.
type RegionTable struct {
	coords map[string]models.Coordinates
}

// defaultRegionCoords covers the regions of the reference dataset.
var defaultRegionCoords = map[string]models.Coordinates{
	"Maharashtra":    {Lat: 19.7515, Lon: 75.7139},
	"Delhi":          {Lat: 28.7041, Lon: 77.1025},
	"Karnataka":      {Lat: 15.3173, Lon: 75.7139},
	"Gujarat":        {Lat: 22.2587, Lon: 71.1924},
	"Tamil Nadu":     {Lat: 11.1271, Lon: 78.6569},
	"Uttar Pradesh":  {Lat: 26.8467, Lon: 80.9462},
	"West Bengal":    {Lat: 22.9868, Lon: 87.8550},
	"Madhya Pradesh": {Lat: 23.4733, Lon: 77.9470},
	"Rajasthan":      {Lat: 27.0238, Lon: 74.2179},
	"Andhra Pradesh": {Lat: 15.9129, Lon: 79.7400},
}

// DefaultRegionTable returns a copy of the built-in table.
func DefaultRegionTable() *RegionTable {
	t := &RegionTable{coords: map[string]models.Coordinates{}}
	for region, c := range defaultRegionCoords {
		t.coords[region] = c
	}
	return t
}

// LoadRegionTable overlays a YAML file of region -> {lat, lon} entries on
// the built-in table. An empty path returns the defaults unchanged.
func LoadRegionTable(path string) (*RegionTable, error) {
	table := DefaultRegionTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}
	overlay := map[string]models.Coordinates{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse regions file: %w", err)
	}
	for region, c := range overlay {
		table.coords[region] = c
	}
	return table, nil
}

// Lookup returns the fixed coordinates for a region, or the zero sentinel.
func (t *RegionTable) Lookup(region string) models.Coordinates {
	if c, ok := t.coords[region]; ok {
		return c
	}
	return models.Coordinates{}
}
