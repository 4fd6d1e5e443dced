package chart

import (
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas is the subset of *gg.Context the draw pipeline needs. Coordinates
// are logical pixels; the implementation handles device scaling.
type Canvas interface {
	Clear()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetFontFace(f font.Face)
	NewSubPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()
	DrawLine(x1, y1, x2, y2 float64)
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)
	DrawStringAnchored(s string, x, y, ax, ay float64)
}

// scaledCanvas is a gg context whose transform already carries the device
// pixel ratio. gg does not scale stroke widths with the matrix, so widths are
// scaled here.
type scaledCanvas struct {
	*gg.Context
	dpr float64
}

func newScaledCanvas(width, height int, dpr float64) scaledCanvas {
	dc := gg.NewContext(width, height)
	dc.Scale(dpr, dpr)
	return scaledCanvas{Context: dc, dpr: dpr}
}

func (c scaledCanvas) SetLineWidth(w float64) {
	c.Context.SetLineWidth(w * c.dpr)
}
