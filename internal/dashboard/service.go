package dashboard

import (
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"

	"github.com/fr4nk3nst1ner/jobmap/internal/filter"
	"github.com/fr4nk3nst1ner/jobmap/internal/mapview"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
	"github.com/fr4nk3nst1ner/jobmap/internal/pagination"
	"github.com/fr4nk3nst1ner/jobmap/internal/table"
)

// Options configures how the dashboard lays out results
type Options struct {
	Variant  models.Variant
	PageSize int
	Map      mapview.Options
}

// Request is one user interaction: the facet selection, the page the
// session was on, and an optional pagination click
type Request struct {
	Selection models.FilterSelection
	Page      int
	Action    *pagination.Action
}

// View is the fully computed dashboard for one interaction
type View struct {
	Variant       models.Variant
	Facets        models.Facets
	Selection     models.FilterSelection
	Map           mapview.View
	Window        models.PageWindow
	Controls      []models.PageControl
	Rows          []models.JobListing
	Table         template.HTML
	PageInfo      string
	TotalListings int
	FilteredCount int
	Summary       string
}

// Service recomputes the dashboard from the immutable listing set
type Service struct {
	listings []models.JobListing
	facets   models.Facets
	opts     Options
	table    *table.Renderer
}

// NewService prepares a dashboard over listings
func NewService(listings []models.JobListing, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	if opts.Variant == "" {
		opts.Variant = models.VariantNumbered
	}
	if opts.Map.Zoom == 0 {
		opts.Map.Zoom = mapview.DefaultZoom(opts.Variant)
	}

	return &Service{
		listings: listings,
		facets:   filter.BuildFacets(listings),
		opts:     opts,
		table:    table.NewRenderer(opts.Variant),
	}
}

// Facets returns the selectable values of each facet
func (s *Service) Facets() models.Facets {
	return s.facets
}

// Variant returns the layout this service renders
func (s *Service) Variant() models.Variant {
	return s.opts.Variant
}

// Total returns the number of loaded listings
func (s *Service) Total() int {
	return len(s.listings)
}

// Filter returns the listings matching sel
func (s *Service) Filter(sel models.FilterSelection) []models.JobListing {
	return filter.Apply(s.listings, sel)
}

// Render runs filter, map, pagination and table for one interaction
func (s *Service) Render(req Request) (View, error) {
	filtered := s.Filter(req.Selection)

	window := pagination.NewWindow(len(filtered), s.opts.PageSize, req.Page)
	if req.Action != nil {
		window = pagination.NewWindow(len(filtered), s.opts.PageSize, pagination.Navigate(window, *req.Action))
	}

	mapView, err := mapview.Build(filtered, s.opts.Map)
	if err != nil {
		return View{}, err
	}

	rows := pagination.Slice(filtered, window)
	tableHTML, err := s.table.Render(rows)
	if err != nil {
		return View{}, err
	}

	return View{
		Variant:       s.opts.Variant,
		Facets:        s.facets,
		Selection:     req.Selection,
		Map:           mapView,
		Window:        window,
		Controls:      pagination.Controls(s.opts.Variant, window),
		Rows:          rows,
		Table:         tableHTML,
		PageInfo:      PageInfo(window),
		TotalListings: len(s.listings),
		FilteredCount: len(filtered),
		Summary:       Summary(len(filtered), len(s.listings)),
	}, nil
}

// PageInfo is the line shown under the table
func PageInfo(w models.PageWindow) string {
	return fmt.Sprintf("Menampilkan halaman %d dari %d halaman.", w.Current, w.TotalPages)
}

// Summary describes how many listings the filter kept
func Summary(filtered, total int) string {
	return fmt.Sprintf("%s dari %s lowongan", humanize.Comma(int64(filtered)), humanize.Comma(int64(total)))
}
