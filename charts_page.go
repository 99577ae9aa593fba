package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// RenderChartsPage writes the dashboard charts as one self-contained HTML
// page: counts per salesperson, top-5 share, top regions and the region
// scatter built from the fixed coordinates.
func RenderChartsPage(w io.Writer, data DashboardData) error {
	page := components.NewPage()
	page.AddCharts(
		salespersonBarChart(data.SalespersonCounts, data.Summary),
		sharePieChart(data.TopFive),
		regionBarChart(data.RegionCounts),
		geoScatterChart(data.Geo),
	)
	return page.Render(w)
}

func salespersonBarChart(counts []models.CountEntry, summary models.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Customers per salesperson",
			Subtitle: fmt.Sprintf("%d customers, %d salespersons, %d unassigned",
				summary.TotalCustomers, summary.TotalSalespersons, summary.Unassigned),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	labels := make([]string, 0, len(counts))
	values := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		values = append(values, opts.BarData{Value: c.Count})
	}
	bar.SetXAxis(labels).AddSeries("Customers", values)
	return bar
}

func sharePieChart(top []models.CountEntry) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top 5 salespersons"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	)

	values := make([]opts.PieData, 0, len(top))
	for _, c := range top {
		values = append(values, opts.PieData{Name: c.Label, Value: c.Count})
	}
	pie.AddSeries("Customers", values)
	return pie
}

func regionBarChart(counts []models.CountEntry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top 10 regions"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	labels := make([]string, 0, len(counts))
	values := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		values = append(values, opts.BarData{Value: c.Count})
	}
	bar.SetXAxis(labels).AddSeries("Customers", values)
	return bar
}

// geoScatterChart plots regions by their fixed coordinates, longitude on X
// and latitude on Y. Unknown regions cluster at the (0, 0) sentinel.
func geoScatterChart(entries []models.GeoEntry) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Customers by region"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", Type: "value"}),
	)

	values := make([]opts.ScatterData, 0, len(entries))
	for _, e := range entries {
		values = append(values, opts.ScatterData{
			Name:  fmt.Sprintf("%s (%d)", e.Region, e.Count),
			Value: []interface{}{e.Lon, e.Lat},
		})
	}
	scatter.AddSeries("Regions", values)
	return scatter
}
