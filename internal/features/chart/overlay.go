package chart

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

var (
	overlayBackground = color.RGBA{0xff, 0xff, 0xff, 0xee}
	overlayBorder     = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	overlayText       = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

const (
	overlayPadding     = 6.0
	overlayLineSpacing = 1.4
)

// Snapshot returns a copy of the current frame with the tooltip overlay
// composited on top. It is meant for raster output where no host element can
// float above the canvas. The live canvas is not modified.
func (s *Surface) Snapshot() *image.RGBA {
	src, ok := s.Image().(*image.RGBA)
	if !ok || src.Bounds().Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	out := cloneRGBA(src)

	ov := s.Overlay()
	if !ov.Visible || len(ov.Lines) == 0 {
		return out
	}

	dc := gg.NewContextForRGBA(out)
	dc.Scale(s.dpr, s.dpr)
	fonts := s.frame().withDefaults().Fonts
	dc.SetFontFace(fonts.Label)

	// Measured widths are device pixels because the face is sized for dpr.
	var textW, textH float64
	for _, line := range ov.Lines {
		w, h := dc.MeasureString(line)
		textW = max(textW, w/s.dpr)
		textH = max(textH, h/s.dpr)
	}
	lineH := textH * overlayLineSpacing
	boxW := textW + 2*overlayPadding
	boxH := lineH*float64(len(ov.Lines)) + 2*overlayPadding

	// Center horizontally on the point and keep the box on the canvas.
	left := clamp(ov.Left-boxW/2, 0, max(0, s.width-boxW))
	top := clamp(ov.Top-boxH/2, 0, max(0, s.opts.Height-boxH))

	dc.SetColor(overlayBackground)
	dc.DrawRoundedRectangle(left, top, boxW, boxH, 4)
	dc.FillPreserve()
	dc.SetColor(overlayBorder)
	dc.SetLineWidth(s.dpr)
	dc.Stroke()

	dc.SetColor(overlayText)
	for i, line := range ov.Lines {
		y := top + overlayPadding + lineH*float64(i) + lineH/2
		dc.DrawStringAnchored(line, left+overlayPadding, y, 0, 0.5)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
