// Package geocode fills in missing listing coordinates by looking up each
// city once through a geocoding backend.
package geocode

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"

	"github.com/fr4nk3nst1ner/jobmap/internal/dataset"
)

var ErrNoResults = errors.New("geocoder returned no results")

// Geocoder resolves a free-form place name to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// GoogleGeocoder looks places up with the Google Maps Geocoding API
type GoogleGeocoder struct {
	client *maps.Client
	region string
}

// NewGoogleGeocoder creates a geocoder biased towards region (a ccTLD such
// as "id"). rate caps requests per second; zero leaves the client default.
func NewGoogleGeocoder(apiKey, region string, rate int, httpClient *http.Client) (*GoogleGeocoder, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if rate > 0 {
		opts = append(opts, maps.WithRateLimit(rate))
	}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}

	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleGeocoder{client: c, region: region}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	resp, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return 0, 0, err
	}
	if len(resp) == 0 {
		return 0, 0, ErrNoResults
	}
	loc := resp[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// Result counts what FillCoordinates did
type Result struct {
	Rows    int
	Filled  int
	Failed  int
	Lookups int
}

type coordinate struct {
	lat, lng float64
	ok       bool
}

// FillCoordinates copies a listing CSV from r to w, geocoding the city of
// every row whose coordinates are missing or invalid. Latitude and
// Longitude columns are appended when the input has none. Each distinct
// city is looked up at most once; rows whose city cannot be resolved are
// written unchanged.
func FillCoordinates(ctx context.Context, g Geocoder, r io.Reader, w io.Writer, comma rune) (Result, error) {
	var res Result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if comma != 0 {
		reader.Comma = comma
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return res, dataset.ErrEmptyFile
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cityCol := columnIndex(header, dataset.ColumnCity)
	if cityCol < 0 {
		return res, fmt.Errorf("%w: %s", dataset.ErrMissingColumn, dataset.ColumnCity)
	}
	latCol := columnIndex(header, dataset.ColumnLatitude)
	if latCol < 0 {
		header = append(header, dataset.ColumnLatitude)
		latCol = len(header) - 1
	}
	lngCol := columnIndex(header, dataset.ColumnLongitude)
	if lngCol < 0 {
		header = append(header, dataset.ColumnLongitude)
		lngCol = len(header) - 1
	}

	writer := csv.NewWriter(w)
	if comma != 0 {
		writer.Comma = comma
	}
	if err := writer.Write(header); err != nil {
		return res, err
	}

	cache := make(map[string]coordinate)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", res.Rows, err)
		}
		res.Rows++

		for len(record) < len(header) {
			record = append(record, "")
		}

		if hasCoordinates(record[latCol], record[lngCol]) {
			if err := writer.Write(record); err != nil {
				return res, err
			}
			continue
		}

		city := strings.TrimSpace(record[cityCol])
		coord, seen := cache[city]
		if !seen && !dataset.IsMissing(city) {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			res.Lookups++
			lat, lng, err := g.Geocode(ctx, city)
			if err != nil {
				log.Warn().Err(err).Str("city", city).Msg("geocode failed")
			} else {
				coord = coordinate{lat: lat, lng: lng, ok: true}
			}
			cache[city] = coord
		}

		if coord.ok {
			record[latCol] = strconv.FormatFloat(coord.lat, 'f', -1, 64)
			record[lngCol] = strconv.FormatFloat(coord.lng, 'f', -1, 64)
			res.Filled++
		} else {
			res.Failed++
		}
		if err := writer.Write(record); err != nil {
			return res, err
		}
	}

	writer.Flush()
	return res, writer.Error()
}

func hasCoordinates(lat, lng string) bool {
	if _, err := dataset.ParseCoordinate(lat); err != nil {
		return false
	}
	_, err := dataset.ParseCoordinate(lng)
	return err == nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
