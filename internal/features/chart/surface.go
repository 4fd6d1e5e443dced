package chart

import (
	"errors"
	"image"
	"image/draw"
	"math"
	"time"

	logging "nexachart/internal/infra/log"

	"go.uber.org/zap"
)

var ErrNoHost = errors.New("chart surface needs a host")

// Surface owns one chart instance: the backing canvas, the data and options
// being drawn, and the tooltip. Its lifecycle is NewSurface, Attach, any
// number of Update/OnResize calls, then Detach.
//
// A Surface is driven from a single goroutine. Pointer handlers run
// synchronously inside the host's dispatch, so they always see the mapper
// of the last completed draw.
type Surface struct {
	data     Series
	opts     Options
	padding  Padding
	format   Formatters
	fontPath string
	cacheMin int

	host    Host
	canvas  *scaledCanvas
	width   float64
	dpr     float64
	fonts   Fonts
	mapper  *Mapper
	base    *image.RGBA
	tooltip *Tooltip
	release []func()
}

type SurfaceOption func(*Surface)

func WithPadding(p Padding) SurfaceOption {
	return func(s *Surface) { s.padding = p }
}

// WithFormatters replaces the label formatters. Nil fields keep the defaults.
func WithFormatters(f Formatters) SurfaceOption {
	return func(s *Surface) { s.format = f }
}

// WithFontPath loads label fonts from a TrueType file, or FontAuto.
func WithFontPath(path string) SurfaceOption {
	return func(s *Surface) { s.fontPath = path }
}

// WithBaseCache memoizes the un-highlighted frame for series of at least
// minPoints points, so a hover only restores the cached pixels and draws the
// marker. Zero disables the cache and every hover does a full redraw.
func WithBaseCache(minPoints int) SurfaceOption {
	return func(s *Surface) { s.cacheMin = minPoints }
}

// NewSurface validates opts and prepares a detached surface.
func NewSurface(data Series, opts Options, options ...SurfaceOption) (*Surface, error) {
	normalized, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	s := &Surface{
		data:    data,
		opts:    normalized,
		padding: DefaultPadding,
		dpr:     1,
	}
	for _, o := range options {
		o(s)
	}
	s.tooltip = newTooltip(s)
	warnNonFinite(data)
	return s, nil
}

// Attach binds the surface to a host, sizes the canvas, draws, and
// registers pointer handlers when the tooltip is enabled. Attaching an
// attached surface detaches it first.
func (s *Surface) Attach(h Host) error {
	if h == nil {
		return ErrNoHost
	}
	if s.host != nil {
		s.Detach()
	}
	s.host = h
	s.resize()
	s.redraw(NoHighlight)
	s.syncHandlers()
	return nil
}

// Update replaces data and options and redraws everything. Invalid options
// are reported and leave the previous chart untouched.
func (s *Surface) Update(data Series, opts Options) error {
	normalized, err := opts.Normalize()
	if err != nil {
		logging.LogWarn("Rejected chart options", zap.Error(err))
		return err
	}

	heightChanged := normalized.Height != s.opts.Height
	warnNonFinite(data)
	s.data = data
	s.opts = normalized
	s.tooltip.reset()
	s.base = nil

	if s.host == nil {
		return nil
	}
	if heightChanged {
		s.resize()
	}
	s.redraw(NoHighlight)
	s.syncHandlers()
	return nil
}

// OnResize re-reads the host size and redraws. Hover state is dropped
// because pixel positions are no longer valid.
func (s *Surface) OnResize() {
	if s.host == nil {
		return
	}
	s.tooltip.reset()
	s.resize()
	s.redraw(NoHighlight)
}

// Detach releases every pointer handler before dropping the canvas.
func (s *Surface) Detach() {
	for _, release := range s.release {
		release()
	}
	s.release = nil
	s.tooltip.reset()
	s.host = nil
	s.canvas = nil
	s.mapper = nil
	s.base = nil
}

func (s *Surface) Attached() bool { return s.host != nil }

// Image is the current frame at device resolution. It is empty when the
// surface is detached or the container has no width.
func (s *Surface) Image() image.Image {
	if s.canvas == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return s.canvas.Image()
}

// Mapper returns the scale functions of the last draw, or nil after a no-op draw.
func (s *Surface) Mapper() *Mapper { return s.mapper }

func (s *Surface) Hover() HoverState { return s.tooltip.State() }
func (s *Surface) Overlay() Overlay  { return s.tooltip.Overlay() }
func (s *Surface) Options() Options  { return s.opts }

// DevicePixelRatio is the ratio the canvas was last sized with.
func (s *Surface) DevicePixelRatio() float64 { return s.dpr }

func (s *Surface) resize() {
	s.base = nil
	s.width = s.host.Width()
	s.dpr = s.host.DevicePixelRatio()
	if s.dpr <= 0 {
		s.dpr = 1
	}

	if s.width <= 0 {
		logging.LogWarn("Chart container has no width, skipping draw", zap.Float64("width", s.width))
		s.canvas = nil
		return
	}

	pw := int(math.Round(s.width * s.dpr))
	ph := int(math.Round(s.opts.Height * s.dpr))
	c := newScaledCanvas(pw, ph, s.dpr)
	s.canvas = &c
	s.fonts = LoadFonts(s.fontPath, s.dpr)
}

func (s *Surface) frame() Frame {
	return Frame{
		Width:   s.width,
		Padding: s.padding,
		Fonts:   s.fonts,
		Format:  s.format,
	}
}

func (s *Surface) cacheEnabled() bool {
	return s.cacheMin > 0 && len(s.data) >= s.cacheMin
}

// redraw is the single drawing entry point for updates and tooltip highlights.
func (s *Surface) redraw(highlight int) *Mapper {
	if s.canvas == nil {
		s.mapper = nil
		return nil
	}
	start := time.Now()

	if !s.cacheEnabled() {
		s.mapper = DrawFrame(s.canvas, s.frame(), s.data, s.opts, highlight)
	} else {
		dst := s.canvas.Image().(*image.RGBA)
		if s.base == nil {
			s.mapper = DrawFrame(s.canvas, s.frame(), s.data, s.opts, NoHighlight)
			s.base = cloneRGBA(dst)
		} else {
			draw.Draw(dst, dst.Bounds(), s.base, s.base.Bounds().Min, draw.Src)
		}
		if s.mapper != nil && highlight >= 0 && highlight < len(s.data) {
			drawHighlight(s.canvas, s.mapper, highlight)
		}
	}

	logging.LogDebug("Chart frame drawn",
		zap.Int("points", len(s.data)),
		zap.String("kind", string(s.opts.Kind)),
		zap.Int("highlight", highlight),
		zap.Bool("cached_base", s.base != nil),
		zap.Int64("duration_us", time.Since(start).Microseconds()))
	return s.mapper
}

// syncHandlers registers pointer handlers while the tooltip is enabled and
// releases them when it is turned off.
func (s *Surface) syncHandlers() {
	registered := len(s.release) > 0
	switch {
	case s.opts.ShowTooltip && !registered:
		s.release = append(s.release,
			s.host.OnPointerMove(s.tooltip.Move),
			s.host.OnPointerLeave(s.tooltip.Leave),
		)
	case !s.opts.ShowTooltip && registered:
		for _, release := range s.release {
			release()
		}
		s.release = nil
		s.tooltip.reset()
	}
}

func (s *Surface) currentMapper() *Mapper { return s.mapper }

func (s *Surface) describe(p DataPoint) []string {
	f := s.frame().withDefaults().Format
	value := f.Value(p.Value)
	if s.opts.Label != "" {
		value = s.opts.Label + ": " + value
	}
	return []string{f.Date(p.Timestamp), value}
}

func warnNonFinite(data Series) {
	if !data.Finite() {
		logging.LogWarn("Series contains NaN or infinite values, chart will be blank", zap.Int("points", len(data)))
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
