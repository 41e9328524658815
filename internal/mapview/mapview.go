package mapview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

// Centroid of Indonesia, the initial map focus
const (
	DefaultCenterLat = -0.789275
	DefaultCenterLng = 113.921327

	PopupMaxWidth = 250
	MarkerIcon    = "info-sign"
	MarkerColor   = "blue"
)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<h3>{{.City}}</h3>` +
		`<table style="width:100%; table-layout:fixed;">` +
		`<tr><th style="white-space:nowrap;">Pekerjaan</th></tr>` +
		`<tr><td style="white-space:normal; word-wrap:break-word;">{{.Title}}</td></tr>` +
		`</table>`))

// Marker is a single listing pin on the map
type Marker struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
	Icon    string  `json:"icon"`
	Color   string  `json:"color"`
}

// View is everything the page script needs to draw the clustered map
type View struct {
	CenterLat     float64  `json:"center_lat"`
	CenterLng     float64  `json:"center_lng"`
	Zoom          int      `json:"zoom"`
	PopupMaxWidth int      `json:"popup_max_width"`
	Markers       []Marker `json:"markers"`
}

// Options sets the initial viewport
type Options struct {
	CenterLat float64
	CenterLng float64
	Zoom      int
}

// DefaultZoom is the initial zoom level used by each variant
func DefaultZoom(variant models.Variant) int {
	if variant == models.VariantArrowed {
		return 6
	}
	return 5
}

// Build creates a fresh map view with one marker per listing
func Build(listings []models.JobListing, opts Options) (View, error) {
	view := View{
		CenterLat:     opts.CenterLat,
		CenterLng:     opts.CenterLng,
		Zoom:          opts.Zoom,
		PopupMaxWidth: PopupMaxWidth,
		Markers:       make([]Marker, 0, len(listings)),
	}

	var buf bytes.Buffer
	for _, l := range listings {
		buf.Reset()
		if err := popupTemplate.Execute(&buf, l); err != nil {
			return View{}, fmt.Errorf("render popup for listing %d: %w", l.Index, err)
		}
		view.Markers = append(view.Markers, Marker{
			Lat:     l.Latitude,
			Lng:     l.Longitude,
			Popup:   buf.String(),
			Tooltip: Tooltip(l.City),
			Icon:    MarkerIcon,
			Color:   MarkerColor,
		})
	}
	return view, nil
}

// Tooltip is the hover text of a marker
func Tooltip(city string) string {
	return "Lowongan di " + city
}
