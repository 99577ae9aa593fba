package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawCountsBar renders a bar chart of group sizes to PNG bytes.
func DrawCountsBar(labels []string, counts []float64, title string) ([]byte, error) {
	return DrawPlotBar(NewCountsForGraph(labels, counts, "Customers", title))
}

// DrawPlotBar renders any bar-chart data source to PNG bytes.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	if len(barValues) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}

	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	ticks := data.generateGrid()

	maxY := findMaxValue(data.getYValues())
	if len(ticks) > 0 {
		if last := ticks[len(ticks)-1].Value; last > maxY {
			maxY = last
		}
	}

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.TitleStyle = chart.Style{FontSize: 14}
	bar.Background = chart.Style{
		FillColor:   drawing.ColorWhite,
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: maxY,
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		Ticks: ticks,
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawPie renders a share-of-total pie chart to PNG bytes.
func DrawPie(labels []string, values []float64, title string) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}

	pieValues := make([]chart.Value, 0, len(labels))
	for i := range labels {
		pieValues = append(pieValues, chart.Value{
			Value: values[i],
			Label: labels[i],
		})
	}

	pie := chart.PieChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      1024,
		Height:     1024,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding: chart.Box{
				Top:    40,
				Bottom: 40,
			},
		},
		Values: pieValues,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// calculateGridStep picks a readable tick step for a 0..maxValue axis.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
