package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nexachart/internal/features/chart"
)

var (
	ErrUnsorted     = errors.New("series is not sorted by timestamp")
	ErrBadTimestamp = errors.New("unrecognized timestamp")
	ErrBadValue     = errors.New("value is not a finite number")
)

// SeriesEntry is one record of a series file. Timestamp may be an RFC3339
// string, a YYYY-MM-DD date or unix milliseconds; Date is used when
// Timestamp is absent.
type SeriesEntry struct {
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Date      string          `json:"date,omitempty"`
	Value     float64         `json:"value"`
}

// SeriesFile is the on-disk layout written by AppendPoint. LoadSeries also
// accepts a bare JSON array of entries.
type SeriesFile struct {
	Entries []SeriesEntry `json:"entries"`
}

// LoadSeries reads a .json or .csv series file. The points must already be
// in ascending timestamp order; the renderer relies on it and does not sort.
func LoadSeries(path string) (chart.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file: %w", err)
	}

	var series chart.Series
	if isCSV(path) {
		series, err = parseCSV(data)
	} else {
		series, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := checkSorted(series); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

func parseJSON(data []byte) (chart.Series, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return chart.Series{}, nil
	}

	var entries []SeriesEntry
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	} else {
		var file SeriesFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, err
		}
		entries = file.Entries
	}

	series := make(chart.Series, 0, len(entries))
	for i, e := range entries {
		ts, err := e.time()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := checkValue(e.Value); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		series = append(series, chart.DataPoint{Timestamp: ts, Value: e.Value})
	}
	return series, nil
}

// checkValue rejects NaN and infinities, which strconv happily parses but
// which have no place on a value axis.
func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrBadValue, v)
	}
	return nil
}

func (e SeriesEntry) time() (time.Time, error) {
	raw := bytes.TrimSpace(e.Timestamp)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return parseTimestamp(e.Date)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		return parseTimestamp(s)
	}
	return parseTimestamp(string(raw))
}

// parseTimestamp accepts RFC3339, YYYY-MM-DD or unix milliseconds.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

func parseCSV(data []byte) (chart.Series, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	var series chart.Series
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ts, tsErr := parseTimestamp(rec[0])
		value, valErr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if line == 1 && (tsErr != nil || valErr != nil) {
			continue // header
		}
		if tsErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, tsErr)
		}
		if valErr != nil {
			return nil, fmt.Errorf("line %d: invalid value: %w", line, valErr)
		}
		if err := checkValue(value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series = append(series, chart.DataPoint{Timestamp: ts, Value: value})
	}
	return series, nil
}

func checkSorted(series chart.Series) error {
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp.Before(series[i-1].Timestamp) {
			return fmt.Errorf("%w: entry %d (%s) precedes entry %d",
				ErrUnsorted, i, series[i].Timestamp.Format(time.RFC3339), i-1)
		}
	}
	return nil
}

// AppendPoint adds p to the series file at path, creating it if needed. A
// .csv file stays CSV, anything else is written as {"entries": [...]}.
// The write goes through a temp file and rename so readers never see a
// partial file.
func AppendPoint(path string, p chart.DataPoint) error {
	if err := checkValue(p.Value); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	existing, err := LoadSeries(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		existing = chart.Series{}
	}
	if n := len(existing); n > 0 && p.Timestamp.Before(existing[n-1].Timestamp) {
		return fmt.Errorf("%w: new point precedes the last entry", ErrUnsorted)
	}
	existing = append(existing, p)

	var data []byte
	if isCSV(path) {
		data, err = encodeCSV(existing)
	} else {
		data, err = encodeJSON(existing)
	}
	if err != nil {
		return err
	}

	tempFilePath := path + ".tmp"
	if err := os.WriteFile(tempFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary series file: %w", err)
	}
	if err := os.Rename(tempFilePath, path); err != nil {
		_ = os.Remove(tempFilePath)
		return fmt.Errorf("failed to rename temporary file to series file: %w", err)
	}
	return nil
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func encodeJSON(series chart.Series) ([]byte, error) {
	file := SeriesFile{Entries: make([]SeriesEntry, len(series))}
	for i, pt := range series {
		ts, _ := json.Marshal(pt.Timestamp.Format(time.RFC3339Nano))
		file.Entries[i] = SeriesEntry{
			Timestamp: ts,
			Date:      pt.Timestamp.Format("2006-01-02"),
			Value:     pt.Value,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal series JSON: %w", err)
	}
	return data, nil
}

func encodeCSV(series chart.Series) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"timestamp", "value"})
	for _, pt := range series {
		w.Write([]string{
			pt.Timestamp.Format(time.RFC3339Nano),
			strconv.FormatFloat(pt.Value, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write series CSV: %w", err)
	}
	return buf.Bytes(), nil
}
