package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// FormatCounts renders a counts aggregate as an ascii table. The header
// names the grouping field.
func FormatCounts(header string, counts []models.CountEntry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{header, "Customers"})
	for _, c := range counts {
		t.AppendRows([]table.Row{
			{c.Label, c.Count},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// FormatSummary renders the KPI scalars.
func FormatSummary(s models.Summary) string {
	topRegion := s.TopRegion
	if topRegion == "" {
		topRegion = "-"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total customers", s.TotalCustomers},
		{"Total salespersons", s.TotalSalespersons},
		{"Unassigned customers", s.Unassigned},
		{"Top region", topRegion},
	})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// FormatRecords renders customer rows, at most limit of them.
func FormatRecords(records []models.CustomerRecord, limit int) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Row", "Customer", "Salesperson", "Region"})
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		t.AppendRows([]table.Row{
			{r.Row, r.Name, r.Salesperson, r.Region},
		})
	}
	t.SetStyle(table.StyleDefault)
	out := t.Render()
	if len(records) > len(shown) {
		out += fmt.Sprintf("\n... and %d more rows", len(records)-len(shown))
	}
	return out
}

// FormatUnassigned renders the customers that have no salesperson.
func FormatUnassigned(records []models.CustomerRecord, limit int) string {
	if len(records) == 0 {
		return "All customers have a salesperson assigned."
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Row", "Customer", "Region"})
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		t.AppendRows([]table.Row{
			{r.Row, r.Name, r.Region},
		})
	}
	t.SetStyle(table.StyleDefault)
	out := t.Render()
	if len(records) > len(shown) {
		out += fmt.Sprintf("\n... and %d more rows", len(records)-len(shown))
	}
	return out
}

// FormatGeo renders the map summary with its fixed coordinates.
func FormatGeo(entries []models.GeoEntry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Region", "Customers", "Lat", "Lon"})
	for _, e := range entries {
		t.AppendRows([]table.Row{
			{e.Region, e.Count, fmt.Sprintf("%.4f", e.Lat), fmt.Sprintf("%.4f", e.Lon)},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}
