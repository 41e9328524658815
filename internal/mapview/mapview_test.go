package mapview

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

func TestBuild(t *testing.T) {
	listings := []models.JobListing{
		{Index: 0, City: "Jakarta", Title: "Backend Engineer", Latitude: -6.2, Longitude: 106.8},
		{Index: 3, City: "Bandung", Title: "Designer <Senior>", Latitude: -6.9, Longitude: 107.6},
	}

	view, err := Build(listings, Options{CenterLat: DefaultCenterLat, CenterLng: DefaultCenterLng, Zoom: 5})
	require.NoError(t, err)

	assert.Equal(t, DefaultCenterLat, view.CenterLat)
	assert.Equal(t, DefaultCenterLng, view.CenterLng)
	assert.Equal(t, 5, view.Zoom)
	assert.Equal(t, PopupMaxWidth, view.PopupMaxWidth)
	require.Len(t, view.Markers, 2)

	m := view.Markers[1]
	assert.Equal(t, -6.9, m.Lat)
	assert.Equal(t, 107.6, m.Lng)
	assert.Equal(t, "Lowongan di Bandung", m.Tooltip)
	assert.Equal(t, MarkerIcon, m.Icon)
	assert.Equal(t, MarkerColor, m.Color)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(m.Popup))
	require.NoError(t, err)
	assert.Equal(t, "Bandung", doc.Find("h3").Text())
	assert.Equal(t, "Pekerjaan", doc.Find("th").Text())
	assert.Equal(t, "Designer <Senior>", doc.Find("td").Text())
	assert.Contains(t, m.Popup, "&lt;Senior&gt;")
}

func TestBuildNoListings(t *testing.T) {
	view, err := Build(nil, Options{Zoom: 6})
	require.NoError(t, err)
	assert.NotNil(t, view.Markers)
	assert.Empty(t, view.Markers)
}

func TestDefaultZoom(t *testing.T) {
	assert.Equal(t, 5, DefaultZoom(models.VariantNumbered))
	assert.Equal(t, 6, DefaultZoom(models.VariantArrowed))
}
