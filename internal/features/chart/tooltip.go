package chart

const (
	TooltipThreshold = 30.0 // pixels
	overlayOffsetY   = 40.0
)

// HoverState is the point currently under the pointer. Point is nil while the
// tooltip is hidden.
type HoverState struct {
	Point          *DataPoint
	Index          int
	PixelX, PixelY float64
}

func (h HoverState) Shown() bool { return h.Point != nil }

// Overlay is the tooltip element the host displays on top of the canvas.
// Left/Top are canvas-relative logical pixels.
type Overlay struct {
	Visible   bool
	Left, Top float64
	Lines     []string
}

// frameSource is what the tooltip needs from the surface. The tooltip never
// draws itself; every highlight goes through redraw.
type frameSource interface {
	currentMapper() *Mapper
	redraw(highlight int) *Mapper
	describe(p DataPoint) []string
}

// Tooltip is a two-state machine: Hidden, or Shown on one point.
type Tooltip struct {
	src     frameSource
	state   HoverState
	overlay Overlay
}

func newTooltip(src frameSource) *Tooltip {
	return &Tooltip{src: src, state: HoverState{Index: NoHighlight}}
}

// Move handles a pointer move at canvas-relative (x, y). It reuses the
// mapper of the most recent draw to find the nearest point within 30px.
func (t *Tooltip) Move(x, y float64) {
	m := t.src.currentMapper()
	i, ok := m.Nearest(x, y, TooltipThreshold)
	if !ok {
		t.Hide()
		return
	}
	if t.state.Shown() && t.state.Index == i {
		return
	}

	if redrawn := t.src.redraw(i); redrawn != nil {
		m = redrawn
	}
	px, py := m.Point(i)
	p := m.series[i]
	t.state = HoverState{Point: &p, Index: i, PixelX: px, PixelY: py}
	t.overlay = Overlay{
		Visible: true,
		Left:    px,
		Top:     py - overlayOffsetY,
		Lines:   t.src.describe(p),
	}
}

// Leave hides the tooltip when the pointer exits the canvas.
func (t *Tooltip) Leave() {
	t.Hide()
}

// Hide moves to Hidden and, if a highlight was showing, restores the base frame.
func (t *Tooltip) Hide() {
	wasShown := t.state.Shown()
	t.reset()
	if wasShown {
		t.src.redraw(NoHighlight)
	}
}

// reset drops hover state without redrawing. The caller is about to redraw.
func (t *Tooltip) reset() {
	t.state = HoverState{Index: NoHighlight}
	t.overlay = Overlay{}
}

func (t *Tooltip) State() HoverState { return t.state }
func (t *Tooltip) Overlay() Overlay  { return t.overlay }
