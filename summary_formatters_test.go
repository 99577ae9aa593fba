package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/customer_dashboard/domain/models"
)

func TestFormatCounts(t *testing.T) {
	counts := []models.CountEntry{
		{Label: "Alice", Count: 2},
		{Label: "Bob", Count: 1},
	}
	result := FormatCounts("Salesperson", counts)
	assert.Equal(t, `+-------------+-----------+
| SALESPERSON | CUSTOMERS |
+-------------+-----------+
| Alice       |         2 |
| Bob         |         1 |
+-------------+-----------+`, result)
}

func TestFormatSummary(t *testing.T) {
	result := FormatSummary(models.Summary{
		TotalCustomers:    2,
		TotalSalespersons: 1,
		Unassigned:        1,
		TopRegion:         "Texas",
	})
	assert.Equal(t, `+----------------------+-------+
| METRIC               | VALUE |
+----------------------+-------+
| Total customers      | 2     |
| Total salespersons   | 1     |
| Unassigned customers | 1     |
| Top region           | Texas |
+----------------------+-------+`, result)
}

func TestFormatSummaryNoRegion(t *testing.T) {
	result := FormatSummary(models.Summary{})
	assert.Contains(t, result, "| Top region           | -     |")
}

func TestFormatRecordsLimit(t *testing.T) {
	records := []models.CustomerRecord{
		{Row: 1, Name: "Alice", Salesperson: "Bob", Region: "Texas"},
		{Row: 2, Name: "Carol", Salesperson: "", Region: "Texas"},
		{Row: 3, Name: "Dave", Salesperson: "Bob", Region: ""},
	}
	result := FormatRecords(records, 2)
	assert.Equal(t, `+-----+----------+-------------+--------+
| ROW | CUSTOMER | SALESPERSON | REGION |
+-----+----------+-------------+--------+
|   1 | Alice    | Bob         | Texas  |
|   2 | Carol    |             | Texas  |
+-----+----------+-------------+--------+
... and 1 more rows`, result)
}

func TestFormatUnassigned(t *testing.T) {
	result := FormatUnassigned([]models.CustomerRecord{
		{Row: 2, Name: "Carol", Region: "Texas"},
	}, 30)
	assert.Equal(t, `+-----+----------+--------+
| ROW | CUSTOMER | REGION |
+-----+----------+--------+
|   2 | Carol    | Texas  |
+-----+----------+--------+`, result)
}

func TestFormatUnassignedEmpty(t *testing.T) {
	assert.Equal(t, "All customers have a salesperson assigned.", FormatUnassigned(nil, 30))
}

func TestFormatGeo(t *testing.T) {
	result := FormatGeo([]models.GeoEntry{
		{Region: "Maharashtra", Count: 3, Lat: 19.7515, Lon: 75.7139},
		{Region: "Atlantis", Count: 1, Lat: 0, Lon: 0},
	})
	assert.Equal(t, `+-------------+-----------+---------+---------+
| REGION      | CUSTOMERS | LAT     | LON     |
+-------------+-----------+---------+---------+
| Maharashtra |         3 | 19.7515 | 75.7139 |
| Atlantis    |         1 | 0.0000  | 0.0000  |
+-------------+-----------+---------+---------+`, result)
}
