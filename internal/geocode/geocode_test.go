package geocode

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobmap/internal/dataset"
)

type fakeGeocoder struct {
	places map[string][2]float64
	calls  map[string]int
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		places: map[string][2]float64{
			"Jakarta": {-6.2, 106.8},
			"Bandung": {-6.9, 107.6},
		},
		calls: map[string]int{},
	}
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (float64, float64, error) {
	f.calls[address]++
	p, ok := f.places[address]
	if !ok {
		return 0, 0, ErrNoResults
	}
	return p[0], p[1], nil
}

func TestFillCoordinates(t *testing.T) {
	in := ",Kota,Company Name,Latitude,Longitude\n" +
		"0,Jakarta,PT Maju,,\n" +
		"1,Bandung,PT Jaya,-6.91,107.61\n" +
		"2,Jakarta,PT Kota,NaN,106.8\n" +
		"3,Atlantis,PT Laut,,\n" +
		"4,Bandung,PT Baru,,\n"

	g := newFakeGeocoder()
	var out bytes.Buffer
	res, err := FillCoordinates(context.Background(), g, strings.NewReader(in), &out, 0)
	require.NoError(t, err)

	assert.Equal(t, Result{Rows: 5, Filled: 3, Failed: 1, Lookups: 3}, res)
	assert.Equal(t, 1, g.calls["Jakarta"], "each city is looked up once")
	assert.Equal(t, 1, g.calls["Bandung"])

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "0,Jakarta,PT Maju,-6.2,106.8", lines[1])
	assert.Equal(t, "1,Bandung,PT Jaya,-6.91,107.61", lines[2], "valid coordinates are kept")
	assert.Equal(t, "2,Jakarta,PT Kota,-6.2,106.8", lines[3])
	assert.Equal(t, "3,Atlantis,PT Laut,,", lines[4])
	assert.Equal(t, "4,Bandung,PT Baru,-6.9,107.6", lines[5])

}

func TestFillCoordinatesAddsColumns(t *testing.T) {
	in := "Kota;Company Name\nJakarta;PT Maju\n"

	var out bytes.Buffer
	res, err := FillCoordinates(context.Background(), newFakeGeocoder(), strings.NewReader(in), &out, ';')
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filled)
	assert.Equal(t, "Kota;Company Name;Latitude;Longitude\nJakarta;PT Maju;-6.2;106.8\n", out.String())
}

func TestFillCoordinatesErrors(t *testing.T) {
	_, err := FillCoordinates(context.Background(), newFakeGeocoder(), strings.NewReader(""), &bytes.Buffer{}, 0)
	assert.ErrorIs(t, err, dataset.ErrEmptyFile)

	_, err = FillCoordinates(context.Background(), newFakeGeocoder(), strings.NewReader("Company Name\nPT\n"), &bytes.Buffer{}, 0)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FillCoordinates(ctx, newFakeGeocoder(), strings.NewReader("Kota\nJakarta\n"), &bytes.Buffer{}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
