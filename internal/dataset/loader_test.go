package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,Kota,Company Name,Job Title,URL,Type,Work Hours,Latitude,Longitude
0,Jakarta,PT Maju,Backend Engineer,https://example.com/1,Full-time,Day,-6.2,106.8
1,Bandung,PT Jaya,Designer,https://example.com/2,Contract,Shift,-6.9,107.6
2,Surabaya,,Analyst,https://example.com/3,Full-time,Day,-7.2,112.7
3,Medan,PT Sumber,Driver,https://example.com/4,Part-time,Night,NaN,98.6
4,Makassar,PT Timur,Cashier,https://example.com/5,Part-time,Day,abc,119.4
5,Jakarta,PT Kota,QA Engineer,https://example.com/6,Contract,Shift,-6.21,106.85
`

func TestLoad(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Read)
	assert.Equal(t, 3, ds.Dropped)
	require.Equal(t, 3, ds.Len())

	assert.NotContains(t, ds.Columns, "")
	assert.Equal(t, RequiredColumns, ds.Columns)

	first := ds.Listings[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "Jakarta", first.City)
	assert.Equal(t, "PT Maju", first.Company)
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "https://example.com/1", first.URL)
	assert.Equal(t, "Full-time", first.Type)
	assert.Equal(t, "Day", first.WorkHours)
	assert.InDelta(t, -6.2, first.Latitude, 1e-9)
	assert.InDelta(t, 106.8, first.Longitude, 1e-9)

	// row positions survive the dropped rows
	assert.Equal(t, 1, ds.Listings[1].Index)
	assert.Equal(t, 5, ds.Listings[2].Index)
}

func TestLoadUnnamedIndexColumn(t *testing.T) {
	data := "Unnamed: 0,Kota,Company Name,Job Title,URL,Type,Work Hours,Latitude,Longitude\n" +
		",Jakarta,PT Maju,Backend Engineer,https://example.com/1,Full-time,Day,-6.2,106.8\n"

	ds, err := Load(strings.NewReader(data), Options{})
	require.NoError(t, err)
	// the empty index value must not cause the row to be dropped
	assert.Equal(t, 1, ds.Len())
	assert.NotContains(t, ds.Columns, "Unnamed: 0")
}

func TestLoadExtraColumnMissingValueDropsRow(t *testing.T) {
	data := "Kota,Company Name,Job Title,URL,Type,Work Hours,Latitude,Longitude,Salary\n" +
		"Jakarta,PT Maju,Backend Engineer,https://example.com/1,Full-time,Day,-6.2,106.8,\n" +
		"Bandung,PT Jaya,Designer,https://example.com/2,Contract,Shift,-6.9,107.6,5000000\n"

	ds, err := Load(strings.NewReader(data), Options{})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Bandung", ds.Listings[0].City)
}

func TestLoadShortRowDropped(t *testing.T) {
	data := "Kota,Company Name,Job Title,URL,Type,Work Hours,Latitude,Longitude\n" +
		"Jakarta,PT Maju,Backend Engineer,https://example.com/1,Full-time,Day,-6.2,106.8\n" +
		"Bandung,PT Jaya,Designer,https://example.com/2,Contract,Shift\n" +
		"Surabaya,PT Timur,Analyst,https://example.com/3,Full-time,Day,-7.2,112.7,extra\n"

	ds, err := Load(strings.NewReader(data), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Read)
	assert.Equal(t, 1, ds.Dropped)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 0, ds.Listings[0].Index)
	assert.Equal(t, 2, ds.Listings[1].Index)
	assert.Equal(t, "Surabaya", ds.Listings[1].City)
}

func TestLoadMissingColumn(t *testing.T) {
	data := "Kota,Company Name,Job Title,URL,Type,Latitude,Longitude\n"

	_, err := Load(strings.NewReader(data), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Work Hours")
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadSemicolon(t *testing.T) {
	data := "Kota;Company Name;Job Title;URL;Type;Work Hours;Latitude;Longitude\n" +
		"Jakarta;PT Maju;Backend Engineer;https://example.com/1;Full-time;Day;-6.2;106.8\n"

	ds, err := Load(strings.NewReader(data), Options{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	ds, err := LoadFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
