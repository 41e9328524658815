package pagination

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

const (
	// DefaultPageSize is the number of listings shown per table page
	DefaultPageSize = 10

	// windows with at most this many pages show every page number
	compactLimit = 6
	edgeSize     = 3
	wideEdgeSize = 5

	ellipsisLabel = "..."
	firstLabel    = "«"
	lastLabel     = "»"
)

// TotalPages returns ceil(totalItems/pageSize), never less than 1
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems <= 0 {
		return 1
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Clamp limits page to [1, totalPages]
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// NewWindow builds the window for the requested page, clamping it into range
func NewWindow(totalItems, pageSize, page int) models.PageWindow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}
	total := TotalPages(totalItems, pageSize)
	return models.PageWindow{
		Current:    Clamp(page, total),
		TotalPages: total,
		PageSize:   pageSize,
		TotalItems: totalItems,
	}
}

// Bounds returns the half-open row range [start, end) of the window's page
func Bounds(w models.PageWindow) (start, end int) {
	start = (w.Current - 1) * w.PageSize
	end = start + w.PageSize
	if start > w.TotalItems {
		start = w.TotalItems
	}
	if end > w.TotalItems {
		end = w.TotalItems
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// Slice returns the items on the window's page
func Slice[T any](items []T, w models.PageWindow) []T {
	start, end := Bounds(w)
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}

// Controls computes the pagination bar for a window under the given variant
func Controls(variant models.Variant, w models.PageWindow) []models.PageControl {
	switch variant {
	case models.VariantArrowed:
		return arrowedControls(w)
	default:
		return withEllipses(numberedPages(w.Current, w.TotalPages), w.Current)
	}
}

// numberedPages shows the first and last three pages and the current page
// with its neighbours when it lies between them
func numberedPages(current, total int) []int {
	if total <= compactLimit {
		return span(1, total)
	}

	pages := append(span(1, edgeSize), span(total-edgeSize+1, total)...)
	if current > edgeSize && current <= total-edgeSize {
		pages = append(pages, current-1, current, current+1)
	}
	return pages
}

// arrowedPages widens the leading or trailing edge to five pages when the
// current page sits near it
func arrowedPages(current, total int) []int {
	if total <= compactLimit {
		return span(1, total)
	}

	switch {
	case current <= edgeSize:
		return append(span(1, wideEdgeSize), span(total-edgeSize+1, total)...)
	case current > total-edgeSize:
		return append(span(1, edgeSize), span(total-wideEdgeSize+1, total)...)
	default:
		return numberedPages(current, total)
	}
}

func arrowedControls(w models.PageWindow) []models.PageControl {
	var controls []models.PageControl
	if w.Current != 1 {
		controls = append(controls, models.PageControl{Kind: models.ControlFirst, Page: 1, Label: firstLabel})
	}
	controls = append(controls, withEllipses(arrowedPages(w.Current, w.TotalPages), w.Current)...)
	if w.Current != w.TotalPages {
		controls = append(controls, models.PageControl{Kind: models.ControlLast, Page: w.TotalPages, Label: lastLabel})
	}
	return controls
}

// withEllipses sorts and de-duplicates pages and puts one inert ellipsis in
// every gap between consecutive displayed pages
func withEllipses(pages []int, current int) []models.PageControl {
	sort.Ints(pages)

	controls := make([]models.PageControl, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if p == prev {
			continue
		}
		if prev != 0 && p > prev+1 {
			controls = append(controls, models.PageControl{Kind: models.ControlEllipsis, Label: ellipsisLabel})
		}
		controls = append(controls, models.PageControl{
			Kind:   models.ControlPage,
			Page:   p,
			Label:  strconv.Itoa(p),
			Active: p == current,
		})
		prev = p
	}
	return controls
}

func span(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// Action is a click on a pagination control
type Action struct {
	Kind models.ControlKind
	Page int
}

// ParseAction reads a navigation value: a page number, "first" or "last".
// Anything else, including the ellipsis, is not an action.
func ParseAction(value string) (Action, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return Action{}, false
	case string(models.ControlFirst):
		return Action{Kind: models.ControlFirst}, true
	case string(models.ControlLast):
		return Action{Kind: models.ControlLast}, true
	}

	page, err := strconv.Atoi(value)
	if err != nil {
		return Action{}, false
	}
	return Action{Kind: models.ControlPage, Page: page}, true
}

// Navigate applies an action to the window and returns the new active page
func Navigate(w models.PageWindow, a Action) int {
	switch a.Kind {
	case models.ControlFirst:
		return 1
	case models.ControlLast:
		return Clamp(w.TotalPages, w.TotalPages)
	case models.ControlPage:
		return Clamp(a.Page, w.TotalPages)
	default:
		return Clamp(w.Current, w.TotalPages)
	}
}
