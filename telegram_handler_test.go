package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/customer_dashboard/config"
	"github.com/pivolan/customer_dashboard/domain/models"
)

func TestImportErrorText(t *testing.T) {
	text := importErrorText(&FormatError{Reason: "missing required columns: sales_person"})
	assert.Contains(t, text, "Cannot read this file")
	assert.Contains(t, text, "missing required columns: sales_person")

	assert.Contains(t, importErrorText(ErrEmptyInput), "no data rows")
	assert.Contains(t, importErrorText(errors.New("disk on fire")), "try again")
}

func TestChartCaption(t *testing.T) {
	assert.Contains(t, chartCaption("salespersons"), "Customers per salesperson")
	assert.Contains(t, chartCaption("regions"), "Customers per region")
	assert.Contains(t, chartCaption("share"), "share")
	assert.Contains(t, chartCaption("other"), "other")
}

func TestCountsSeries(t *testing.T) {
	labels, values := countsSeries([]models.CountEntry{
		{Label: "Bob", Count: 2},
		{Label: "Eve", Count: 1},
	})
	assert.Equal(t, []string{"Bob", "Eve"}, labels)
	assert.Equal(t, []float64{2, 1}, values)
}

func TestUploadLinkBindsChat(t *testing.T) {
	link := uploadLinkFor(4242)

	prefix := config.GetConfig().PublicUrl + "/?id="
	require.True(t, strings.HasPrefix(link, prefix), "link %q misses prefix %q", link, prefix)
	id := strings.TrimPrefix(link, prefix)
	require.NotEmpty(t, id)

	sess := store.Put(id, 0, sessionDataset("linked.csv"))
	assert.Equal(t, int64(4242), sess.ChatID)

	got, ok := store.GetByChat(4242)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
}
