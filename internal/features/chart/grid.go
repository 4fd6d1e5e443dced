package chart

const (
	valueTickCount   = 5
	maxTimeTickCount = 7
	tickLabelGap     = 5.0
)

// valueTicks spreads valueTickCount ticks over [MinY, MaxY], both ends
// included. A zero-span domain yields a single tick.
func valueTicks(m *Mapper) []float64 {
	if m.MaxY == m.MinY {
		return []float64{m.MinY}
	}
	ticks := make([]float64, valueTickCount)
	for i := range ticks {
		ticks[i] = m.MinY + float64(i)/float64(valueTickCount-1)*(m.MaxY-m.MinY)
	}
	return ticks
}

// timeTickIndices picks min(7, n) evenly spaced indices into the series,
// always including the first and last point. Spacing is by index, not time.
func timeTickIndices(n int) []int {
	count := min(maxTimeTickCount, n)
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []int{0}
	}
	idx := make([]int, count)
	for i := range idx {
		idx[i] = i * (n - 1) / (count - 1)
	}
	return idx
}

func drawGrid(c Canvas, m *Mapper, data Series, f Frame) {
	r := m.Rect
	c.SetLineWidth(1)
	c.SetFontFace(f.Fonts.Label)

	for _, v := range valueTicks(m) {
		y := m.ScaleY(v)
		c.SetColor(gridColor)
		c.DrawLine(r.Left, y, r.Right(), y)
		c.Stroke()

		c.SetColor(tickLabelColor)
		c.DrawStringAnchored(f.Format.Value(v), r.Left-tickLabelGap, y, 1, 0.5)
	}

	for _, i := range timeTickIndices(len(data)) {
		t := data[i].Timestamp
		x := m.ScaleX(t)
		c.SetColor(gridColor)
		c.DrawLine(x, r.Top, x, r.Bottom())
		c.Stroke()

		c.SetColor(tickLabelColor)
		c.DrawStringAnchored(f.Format.ShortDate(t), x, r.Bottom()+tickLabelGap, 0.5, 1)
	}
}

// drawAxes draws the X axis along the plot bottom and the Y axis along its
// left edge. They are drawn whether or not the grid is enabled.
func drawAxes(c Canvas, m *Mapper) {
	r := m.Rect
	c.SetColor(axisColor)
	c.SetLineWidth(1)

	c.DrawLine(r.Left, r.Bottom(), r.Right(), r.Bottom())
	c.Stroke()

	c.DrawLine(r.Left, r.Top, r.Left, r.Bottom())
	c.Stroke()
}
