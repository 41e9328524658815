package table

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fr4nk3nst1ner/jobmap/internal/dataset"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

// Column is one rendered table column
type Column struct {
	Header string
	Cell   func(models.JobListing) string
}

// Row holds the sanitized cells of one listing
type Row struct {
	Index int
	Cells []template.HTML
}

// Data is what the table template renders
type Data struct {
	Headers []string
	Rows    []Row
}

var tableTemplate = template.Must(template.New("table").Parse(
	`<table border="1" class="dataframe">` +
		`<thead><tr style="text-align: right;"><th></th>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range .Rows}}<tr><th>{{.Index}}</th>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>` +
		`</table>`))

// Renderer turns a page of listings into an HTML table
type Renderer struct {
	columns []Column
	policy  *bluemonday.Policy
}

// NewRenderer creates a renderer for the variant's column set
func NewRenderer(variant models.Variant) *Renderer {
	return &Renderer{
		columns: Columns(variant),
		policy:  cellPolicy(),
	}
}

// cellPolicy lets anchors through unescaped and strips any other markup
func cellPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return p
}

// Columns lists the table columns for a variant
func Columns(variant models.Variant) []Column {
	city := Column{dataset.ColumnCity, func(l models.JobListing) string { return l.City }}
	company := Column{dataset.ColumnCompany, func(l models.JobListing) string { return l.Company }}
	jobType := Column{dataset.ColumnType, func(l models.JobListing) string { return l.Type }}
	hours := Column{dataset.ColumnWorkHours, func(l models.JobListing) string { return l.WorkHours }}

	if variant == models.VariantArrowed {
		return []Column{
			city,
			company,
			{dataset.ColumnTitle, func(l models.JobListing) string { return MakeClickable(l.URL, l.Title) }},
			jobType,
			hours,
		}
	}

	return []Column{
		city,
		company,
		{dataset.ColumnTitle, func(l models.JobListing) string { return l.Title }},
		{dataset.ColumnURL, func(l models.JobListing) string { return l.URL }},
		jobType,
		hours,
	}
}

// MakeClickable wraps text in a link opening url in a new tab
func MakeClickable(url, text string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, html.EscapeString(url), text)
}

// Headers returns the column headers in render order
func (r *Renderer) Headers() []string {
	headers := make([]string, 0, len(r.columns))
	for _, c := range r.columns {
		headers = append(headers, c.Header)
	}
	return headers
}

// Build sanitizes every cell of the given rows
func (r *Renderer) Build(rows []models.JobListing) Data {
	data := Data{Headers: r.Headers(), Rows: make([]Row, 0, len(rows))}
	for _, l := range rows {
		row := Row{Index: l.Index, Cells: make([]template.HTML, 0, len(r.columns))}
		for _, c := range r.columns {
			row.Cells = append(row.Cells, template.HTML(r.policy.Sanitize(c.Cell(l))))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// Render produces the table markup for one page of listings
func (r *Renderer) Render(rows []models.JobListing) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, r.Build(rows)); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return template.HTML(buf.String()), nil
}
