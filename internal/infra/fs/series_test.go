package fs

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexachart/internal/features/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSeriesJSONArray(t *testing.T) {
	path := writeFile(t, "s.json", `[
		{"timestamp": "2024-01-01T00:00:00Z", "value": 10},
		{"timestamp": "2024-01-02", "value": 20.5},
		{"timestamp": 1704240000000, "value": 30}
	]`)

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Timestamp.UTC())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series[1].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), series[2].Timestamp)
	assert.Equal(t, 20.5, series[1].Value)
}

func TestLoadSeriesEntriesObjectFallsBackToDate(t *testing.T) {
	path := writeFile(t, "s.json", `{"entries": [
		{"date": "2024-03-01", "value": 1},
		{"date": "2024-03-02", "value": 2}
	]}`)

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 2.0, series[1].Value)
}

func TestLoadSeriesCSVWithHeader(t *testing.T) {
	path := writeFile(t, "s.csv", "timestamp,value\n2024-01-01,5\n2024-01-02, 7.25\n")

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 7.25, series[1].Value)
}

func TestLoadSeriesCSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "s.csv", "2024-01-01,5\n2024-01-02,6\n")

	series, err := LoadSeries(path)
	require.NoError(t, err)
	assert.Len(t, series, 2)
}

func TestLoadSeriesRejectsUnsorted(t *testing.T) {
	path := writeFile(t, "s.csv", "2024-01-02,5\n2024-01-01,6\n")

	_, err := LoadSeries(path)
	assert.ErrorIs(t, err, ErrUnsorted)
}

func TestLoadSeriesRejectsNonFiniteValues(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf", "+Infinity"} {
		path := writeFile(t, "s.csv", "timestamp,value\n2024-01-01,1\n2024-01-02,"+v+"\n")

		_, err := LoadSeries(path)
		assert.ErrorIs(t, err, ErrBadValue, v)
	}
}

func TestLoadSeriesBadTimestamp(t *testing.T) {
	path := writeFile(t, "s.json", `[{"timestamp": "yesterday", "value": 1}]`)

	_, err := LoadSeries(path)
	assert.ErrorIs(t, err, ErrBadTimestamp)
}

func TestLoadSeriesEmptyFile(t *testing.T) {
	series, err := LoadSeries(writeFile(t, "s.json", ""))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestAppendPoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "series.json")
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, AppendPoint(path, chart.DataPoint{Timestamp: day, Value: 1}))
	require.NoError(t, AppendPoint(path, chart.DataPoint{Timestamp: day.AddDate(0, 0, 1), Value: 2}))

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.True(t, series[1].Timestamp.Equal(day.AddDate(0, 0, 1)))

	err = AppendPoint(path, chart.DataPoint{Timestamp: day.AddDate(0, 0, -1), Value: 0})
	assert.ErrorIs(t, err, ErrUnsorted)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestAppendPointKeepsCSV(t *testing.T) {
	path := writeFile(t, "s.csv", "timestamp,value\n2024-01-01,1\n")

	require.NoError(t, AppendPoint(path, chart.DataPoint{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Value: 2.5}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,value\n2024-01-01T00:00:00Z,1\n2024-01-02T00:00:00Z,2.5\n", string(raw))

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 2.5, series[1].Value)
}

func TestAppendPointRejectsNonFiniteValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")

	err := AppendPoint(path, chart.DataPoint{Timestamp: time.Now(), Value: math.NaN()})
	assert.ErrorIs(t, err, ErrBadValue)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppendPointKeepsMilliseconds(t *testing.T) {
	path := writeFile(t, "s.json", `[{"timestamp": 1704067200123, "value": 1}]`)

	require.NoError(t, AppendPoint(path, chart.DataPoint{Timestamp: time.UnixMilli(1704067200456).UTC(), Value: 2}))

	series, err := LoadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, int64(1704067200123), series[0].Timestamp.UnixMilli())
	assert.Equal(t, int64(1704067200456), series[1].Timestamp.UnixMilli())
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{0xff, 0, 0, 0xff})

	path := filepath.Join(t.TempDir(), "charts", "chart.png")
	size, err := SavePNG(img, path)
	require.NoError(t, err)
	assert.Positive(t, size)

	_, err = SavePNG(image.NewRGBA(image.Rectangle{}), path)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestWaitForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.json")
	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(path, []byte("[]"), 0644)
	}()

	require.NoError(t, WaitForFile(context.Background(), path, 2*time.Second))
}

func TestWaitForFileTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.json")
	err := WaitForFile(context.Background(), path, 60*time.Millisecond)
	assert.ErrorContains(t, err, "timeout")
}
