// Package chart draws a single time series as a line or bar chart onto a
// raster canvas, with gridlines, axis labels and a nearest-point tooltip.
//
// The package never fetches data. Callers hand a Surface an ordered Series
// and Options, attach it to a Host that reports size and pointer events, and
// read back the rendered image and the tooltip overlay.
package chart

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	ErrInvalidOptions  = errors.New("invalid chart options")
)

// DataPoint is one sample of the series.
type DataPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series must be sorted ascending by Timestamp. The renderer does not sort
// and treats the slice as read-only for the duration of a draw pass.
type Series []DataPoint

// Finite reports whether every value is a real number.
func (s Series) Finite() bool {
	for _, p := range s {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return false
		}
	}
	return true
}

type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

const (
	defaultHeight      = 200.0
	defaultStrokeColor = "#3498db"
	defaultFillColor   = "rgba(52, 152, 219, 0.1)"
)

// Options configures how a series is drawn. Start from DefaultOptions:
// empty strings and a zero Height fall back to the defaults, booleans are
// taken as given.
type Options struct {
	Kind        Kind    `mapstructure:"kind"`
	Height      float64 `mapstructure:"height"`
	StrokeColor string  `mapstructure:"stroke_color"`
	FillColor   string  `mapstructure:"fill_color"`
	Background  string  `mapstructure:"background"` // empty clears to transparent
	ShowGrid    bool    `mapstructure:"show_grid"`
	ShowTooltip bool    `mapstructure:"show_tooltip"`
	Label       string  `mapstructure:"label"`
}

func DefaultOptions() Options {
	return Options{
		Kind:        KindLine,
		Height:      defaultHeight,
		StrokeColor: defaultStrokeColor,
		FillColor:   defaultFillColor,
		ShowGrid:    true,
		ShowTooltip: true,
	}
}

// Normalize fills unset fields with defaults and validates the rest.
func (o Options) Normalize() (Options, error) {
	if o.Kind == "" {
		o.Kind = KindLine
	}
	switch o.Kind {
	case KindLine, KindBar:
	default:
		return o, fmt.Errorf("%w: %q", ErrUnsupportedKind, o.Kind)
	}
	if o.Height < 0 {
		return o, fmt.Errorf("%w: height %v is negative", ErrInvalidOptions, o.Height)
	}
	if o.Height == 0 {
		o.Height = defaultHeight
	}
	if o.StrokeColor == "" {
		o.StrokeColor = defaultStrokeColor
	}
	if o.FillColor == "" {
		o.FillColor = defaultFillColor
	}
	for _, c := range []string{o.StrokeColor, o.FillColor, o.Background} {
		if c == "" {
			continue
		}
		if _, err := ParseColor(c); err != nil {
			return o, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return o, nil
}

// Formatters is the label formatting collaborator.
type Formatters struct {
	Value     func(float64) string
	ShortDate func(time.Time) string
	Date      func(time.Time) string
}
