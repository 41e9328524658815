package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

// Column headers expected in the listing file
const (
	ColumnCity      = "Kota"
	ColumnCompany   = "Company Name"
	ColumnTitle     = "Job Title"
	ColumnURL       = "URL"
	ColumnType      = "Type"
	ColumnWorkHours = "Work Hours"
	ColumnLatitude  = "Latitude"
	ColumnLongitude = "Longitude"
)

var (
	ErrEmptyFile     = errors.New("dataset file has no header")
	ErrMissingColumn = errors.New("dataset is missing a required column")
)

// RequiredColumns lists every column a listing needs to be usable
var RequiredColumns = []string{
	ColumnCity,
	ColumnCompany,
	ColumnTitle,
	ColumnURL,
	ColumnType,
	ColumnWorkHours,
	ColumnLatitude,
	ColumnLongitude,
}

// DefaultDropColumns are index columns left behind by dataframe exports
var DefaultDropColumns = []string{"Unnamed: 0", ""}

// Values treated as missing, the same tokens pandas reads as NaN
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Options controls how a listing file is parsed
type Options struct {
	DropColumns []string
	Comma       rune
}

// Dataset is the immutable, in-memory listing collection
type Dataset struct {
	Listings []models.JobListing
	Columns  []string
	Read     int
	Dropped  int
}

// Len returns the number of usable listings
func (d *Dataset) Len() int {
	return len(d.Listings)
}

// LoadFile reads a listing file from disk
func LoadFile(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Load(f, opts)
}

// Load parses delimited listing data. Rows with any missing value or
// non-numeric coordinates are dropped; a missing required column is an error.
func Load(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	drop := opts.DropColumns
	if drop == nil {
		drop = DefaultDropColumns
	}
	kept := keptColumns(header, drop)

	index := make(map[string]int, len(kept))
	for _, i := range kept {
		index[strings.TrimSpace(header[i])] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	ds := &Dataset{}
	for _, i := range kept {
		ds.Columns = append(ds.Columns, strings.TrimSpace(header[i]))
	}

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		ds.Read++

		listing, ok := parseRecord(record, kept, index)
		if !ok {
			ds.Dropped++
			continue
		}
		listing.Index = row
		ds.Listings = append(ds.Listings, listing)
	}

	return ds, nil
}

func keptColumns(header, drop []string) []int {
	dropSet := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		dropSet[strings.TrimSpace(d)] = struct{}{}
	}

	var kept []int
	for i, h := range header {
		if _, ok := dropSet[strings.TrimSpace(h)]; ok {
			continue
		}
		kept = append(kept, i)
	}
	return kept
}

func parseRecord(record []string, kept []int, index map[string]int) (models.JobListing, bool) {
	for _, i := range kept {
		// a short row leaves its trailing columns empty
		if i >= len(record) || IsMissing(record[i]) {
			return models.JobListing{}, false
		}
	}

	lat, err := ParseCoordinate(record[index[ColumnLatitude]])
	if err != nil {
		return models.JobListing{}, false
	}
	lng, err := ParseCoordinate(record[index[ColumnLongitude]])
	if err != nil {
		return models.JobListing{}, false
	}

	field := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	return models.JobListing{
		City:      field(ColumnCity),
		Company:   field(ColumnCompany),
		Title:     field(ColumnTitle),
		URL:       field(ColumnURL),
		Type:      field(ColumnType),
		WorkHours: field(ColumnWorkHours),
		Latitude:  lat,
		Longitude: lng,
	}, true
}

// IsMissing reports whether a cell holds no usable value
func IsMissing(value string) bool {
	_, ok := missingTokens[strings.TrimSpace(value)]
	return ok
}

// ParseCoordinate parses a finite latitude or longitude
func ParseCoordinate(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", value)
	}
	return v, nil
}
