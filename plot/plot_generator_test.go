package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngMagic = []byte("\x89PNG")

func TestDrawCountsBar(t *testing.T) {
	graph, err := DrawCountsBar([]string{"Bob", "Eve", "Mallory"}, []float64{12, 7, 3}, "Customers per salesperson")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(graph, pngMagic))
}

func TestDrawCountsBarSingle(t *testing.T) {
	graph, err := DrawCountsBar([]string{"Bob"}, []float64{5}, "Customers per salesperson")
	assert.NoError(t, err)
	assert.NotEmpty(t, graph)
}

func TestDrawCountsBarEmpty(t *testing.T) {
	_, err := DrawCountsBar(nil, nil, "empty")
	assert.Error(t, err)
}

func TestDrawPie(t *testing.T) {
	graph, err := DrawPie([]string{"Bob", "Eve"}, []float64{12, 7}, "Top salespersons")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(graph, pngMagic))
}

func TestDrawPieEmpty(t *testing.T) {
	_, err := DrawPie(nil, nil, "empty")
	assert.Error(t, err)
}
