package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobmap/internal/mapview"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
	"github.com/fr4nk3nst1ner/jobmap/internal/pagination"
)

// makeListings builds n listings; every third one is in Bandung
func makeListings(n int) []models.JobListing {
	out := make([]models.JobListing, 0, n)
	for i := 0; i < n; i++ {
		city := "Jakarta"
		if i%3 == 0 {
			city = "Bandung"
		}
		out = append(out, models.JobListing{
			Index:     i,
			City:      city,
			Company:   fmt.Sprintf("PT %d", i),
			Title:     fmt.Sprintf("Job %d", i),
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Type:      "Full-time",
			WorkHours: "Day",
			Latitude:  -6,
			Longitude: 106,
		})
	}
	return out
}

func TestRenderTwentyThreeRows(t *testing.T) {
	svc := NewService(makeListings(23), Options{Variant: models.VariantNumbered})

	view, err := svc.Render(Request{Page: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, view.Window.TotalPages)
	assert.Equal(t, 3, view.Window.Current)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, 20, view.Rows[0].Index)
	assert.Equal(t, 22, view.Rows[2].Index)
	assert.Len(t, view.Map.Markers, 23, "the map shows every filtered listing, not just the page")
	assert.Equal(t, "Menampilkan halaman 3 dari 3 halaman.", view.PageInfo)
	assert.Equal(t, 5, view.Map.Zoom)
	assert.Equal(t, "1 2 3", controlLabels(view.Controls))
}

func TestRenderFilterClampsPage(t *testing.T) {
	svc := NewService(makeListings(60), Options{})

	// 20 Bandung rows fit in two pages, so page 6 clamps to 2
	view, err := svc.Render(Request{Selection: models.FilterSelection{Cities: []string{"Bandung"}}, Page: 6})
	require.NoError(t, err)

	assert.Equal(t, 20, view.FilteredCount)
	assert.Equal(t, 2, view.Window.Current)
	for _, r := range view.Rows {
		assert.Equal(t, "Bandung", r.City)
	}
	assert.Equal(t, "20 dari 60 lowongan", view.Summary)
}

func TestRenderNoMatches(t *testing.T) {
	svc := NewService(makeListings(10), Options{})

	view, err := svc.Render(Request{Selection: models.FilterSelection{Cities: []string{"Medan"}}, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, view.Window.TotalPages)
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.Map.Markers)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(view.Table)))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("tbody tr").Length())
}

func TestRenderActions(t *testing.T) {
	svc := NewService(makeListings(200), Options{Variant: models.VariantArrowed})

	last := pagination.Action{Kind: models.ControlLast}
	view, err := svc.Render(Request{Page: 4, Action: &last})
	require.NoError(t, err)
	assert.Equal(t, 20, view.Window.Current)
	assert.Equal(t, 6, view.Map.Zoom)

	again, err := svc.Render(Request{Page: view.Window.Current, Action: &last})
	require.NoError(t, err)
	assert.Equal(t, 20, again.Window.Current)

	first := pagination.Action{Kind: models.ControlFirst}
	view, err = svc.Render(Request{Page: 20, Action: &first})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Window.Current)

	goTo := pagination.Action{Kind: models.ControlPage, Page: 7}
	view, err = svc.Render(Request{Page: 1, Action: &goTo})
	require.NoError(t, err)
	assert.Equal(t, 7, view.Window.Current)
	assert.Equal(t, 60, view.Rows[0].Index)
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(makeListings(4), Options{Map: mapview.Options{Zoom: 9}})

	assert.Equal(t, models.VariantNumbered, svc.Variant())
	assert.Equal(t, 4, svc.Total())
	assert.Equal(t, []string{"Bandung", "Jakarta"}, svc.Facets().Cities)

	view, err := svc.Render(Request{})
	require.NoError(t, err)
	assert.Equal(t, 9, view.Map.Zoom)
	assert.Equal(t, 1, view.Window.Current)
}

func controlLabels(controls []models.PageControl) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		parts = append(parts, c.Label)
	}
	return strings.Join(parts, " ")
}
