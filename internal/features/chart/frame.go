package chart

import (
	"image/color"

	"nexachart/internal/features/format"
)

var (
	gridColor      = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	tickLabelColor = color.RGBA{0x66, 0x66, 0x66, 0xff}
	axisColor      = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	titleColor     = color.RGBA{0x33, 0x33, 0x33, 0xff}
	highlightColor = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
)

const (
	highlightRadius = 5.0
	titleOffsetY    = 5.0
)

// NoHighlight draws the base frame without a hovered point.
const NoHighlight = -1

// Frame is the drawing environment of one pass: the logical canvas width,
// padding, fonts and label formatters. The height comes from Options.
type Frame struct {
	Width   float64
	Padding Padding
	Fonts   Fonts
	Format  Formatters
}

func (f Frame) withDefaults() Frame {
	if f.Format.Value == nil {
		f.Format.Value = format.Currency
	}
	if f.Format.ShortDate == nil {
		f.Format.ShortDate = format.ShortDate
	}
	if f.Format.Date == nil {
		f.Format.Date = format.Date
	}
	if f.Fonts.Label == nil || f.Fonts.Title == nil {
		f.Fonts = fallbackFonts()
	}
	return f
}

// DrawFrame runs the whole pipeline: clear, grid, series, axes, label and
// the optional highlight marker. It is the only code path that draws a
// chart, used by both updates and tooltip highlights.
//
// It returns the Mapper used for the pass, or nil when nothing beyond the
// clear was drawn (empty series, zero width, a zero-area plot or a
// non-finite value).
// opts must already be normalized.
func DrawFrame(c Canvas, f Frame, data Series, opts Options, highlight int) *Mapper {
	f = f.withDefaults()

	c.SetColor(mustColor(opts.Background, color.Transparent))
	c.Clear()

	if f.Width <= 0 || opts.Height <= 0 || len(data) == 0 {
		return nil
	}
	m := NewMapper(data, f.Width, opts.Height, f.Padding)
	if m == nil || m.Rect.Empty() {
		return nil
	}

	if opts.ShowGrid {
		drawGrid(c, m, data, f)
	}

	stroke := mustColor(opts.StrokeColor, mustColor(defaultStrokeColor, color.Black))
	switch opts.Kind {
	case KindBar:
		drawBars(c, m, data, stroke)
	default:
		drawLine(c, m, data, stroke, mustColor(opts.FillColor, color.Transparent))
	}

	drawAxes(c, m)
	drawTitle(c, f, opts.Label)

	if highlight >= 0 && highlight < len(data) {
		drawHighlight(c, m, highlight)
	}
	return m
}

func drawTitle(c Canvas, f Frame, label string) {
	if label == "" {
		return
	}
	c.SetFontFace(f.Fonts.Title)
	c.SetColor(titleColor)
	c.DrawStringAnchored(label, f.Width/2, titleOffsetY, 0.5, 1)
}

// drawHighlight draws only the hover marker. The base frame is assumed to be
// on the canvas already.
func drawHighlight(c Canvas, m *Mapper, i int) {
	x, y := m.Point(i)
	c.SetColor(highlightColor)
	c.DrawCircle(x, y, highlightRadius)
	c.Fill()
}
