package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// countsForGraph feeds a bar chart with group labels and group sizes.
type countsForGraph struct {
	labels    []string
	counts    []float64
	nameYAxis string
	nameGraph string
}

func NewCountsForGraph(labels []string, counts []float64, nameYAxis, nameGraph string) countsForGraph {
	return countsForGraph{
		labels:    labels,
		counts:    counts,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d countsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d countsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d countsForGraph) getYValues() []float64 {
	return d.counts
}
func (d countsForGraph) lenXValues() int {
	return len(d.labels)
}
func (d countsForGraph) findMaxValue() float64 {
	return findMaxValue(d.counts)
}

// calculateChartDimensions sizes the image from the bar count: few bars get
// stretched so the chart does not collapse into a sliver, many bars grow
// the width linearly. Height follows a 16:9 ratio.
func (d countsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.counts) == 0 || d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d countsForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i := 0; i < len(d.labels); i++ {
		bars = append(bars, chart.Value{
			Value: d.counts[i],
			Label: d.labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

func (d countsForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := d.findMaxValue()
	gridStep := calculateGridStep(max)
	if gridStep <= 0 {
		return ticks
	}
	for i := 0.0; i <= max; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf("%.0f", i),
		})
	}
	return ticks
}
