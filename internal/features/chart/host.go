package chart

// Host is the environment a Surface is attached to: it reports the
// container's layout width and device pixel ratio and delivers pointer
// events in canvas-relative logical pixels. Each registration returns a
// release func that must be safe to call more than once.
type Host interface {
	Width() float64
	DevicePixelRatio() float64
	OnPointerMove(fn func(x, y float64)) (release func())
	OnPointerLeave(fn func()) (release func())
}

// MemoryHost is an in-process Host. Pointer events are injected with Move
// and Leave, and dispatched synchronously on the caller's goroutine.
// It is not safe for concurrent use.
type MemoryHost struct {
	width float64
	dpr   float64

	nextID int
	moves  []moveHandler
	leaves []leaveHandler
}

type moveHandler struct {
	id int
	fn func(x, y float64)
}

type leaveHandler struct {
	id int
	fn func()
}

func NewMemoryHost(width, dpr float64) *MemoryHost {
	return &MemoryHost{width: width, dpr: dpr}
}

func (h *MemoryHost) Width() float64 { return h.width }

func (h *MemoryHost) DevicePixelRatio() float64 {
	if h.dpr <= 0 {
		return 1
	}
	return h.dpr
}

// SetWidth changes the container width. Call Surface.OnResize afterwards.
func (h *MemoryHost) SetWidth(width float64) { h.width = width }

func (h *MemoryHost) OnPointerMove(fn func(x, y float64)) func() {
	h.nextID++
	id := h.nextID
	h.moves = append(h.moves, moveHandler{id: id, fn: fn})
	return func() {
		for i, m := range h.moves {
			if m.id == id {
				h.moves = append(h.moves[:i], h.moves[i+1:]...)
				return
			}
		}
	}
}

func (h *MemoryHost) OnPointerLeave(fn func()) func() {
	h.nextID++
	id := h.nextID
	h.leaves = append(h.leaves, leaveHandler{id: id, fn: fn})
	return func() {
		for i, l := range h.leaves {
			if l.id == id {
				h.leaves = append(h.leaves[:i], h.leaves[i+1:]...)
				return
			}
		}
	}
}

// Move dispatches a pointer move to every registered handler.
func (h *MemoryHost) Move(x, y float64) {
	for _, m := range append([]moveHandler(nil), h.moves...) {
		m.fn(x, y)
	}
}

func (h *MemoryHost) Leave() {
	for _, l := range append([]leaveHandler(nil), h.leaves...) {
		l.fn()
	}
}

// Handlers reports how many pointer handlers are registered.
func (h *MemoryHost) Handlers() int {
	return len(h.moves) + len(h.leaves)
}
