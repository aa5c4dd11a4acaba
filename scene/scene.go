// Package scene is the handle to the drawing area shared by every task body
// It owns the viewport geometry and the pointer listener registry
package scene

import (
	"github.com/lixenwraith/taskfall/vmath"
)

// PointerKind is the pointer event type
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerMove
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent is a pointer or touch event in scene-local world coordinates
type PointerEvent struct {
	Kind PointerKind
	Pos  vmath.Vec2
	// Touch marks touch input; Touches is the number of active contacts
	Touch   bool
	Touches int
}

// Listener receives pointer events dispatched on the scene
type Listener func(ev PointerEvent)

type registration struct {
	fn     Listener
	active bool
}

// Scene is the viewport handle passed to components
// Not safe for concurrent use; owned by the loop goroutine
type Scene struct {
	rect      vmath.Rect
	mounted   bool
	listeners []*registration
}

// New creates a mounted scene covering rect; rect origin is the scene's offset in screen space
func New(rect vmath.Rect) *Scene {
	return &Scene{rect: rect, mounted: true}
}

// Bounds returns the scene rectangle in screen-space world units
// ok is false once the scene is unmounted
func (s *Scene) Bounds() (rect vmath.Rect, ok bool) {
	if s == nil || !s.mounted {
		return vmath.Rect{}, false
	}
	return s.rect, true
}

// View returns the scene-local viewport (origin at zero)
func (s *Scene) View() (view vmath.Rect, ok bool) {
	r, ok := s.Bounds()
	if !ok {
		return vmath.Rect{}, false
	}
	return vmath.R(0, 0, r.W, r.H), true
}

// Mounted reports whether the scene is live
func (s *Scene) Mounted() bool {
	return s != nil && s.mounted
}

// Resize updates the scene rectangle
func (s *Scene) Resize(rect vmath.Rect) {
	if s == nil {
		return
	}
	s.rect = rect
}

// Unmount detaches the scene; listeners stay registered but receive nothing
func (s *Scene) Unmount() {
	if s == nil {
		return
	}
	s.mounted = false
}

// ToLocal converts a screen-space point to scene-local coordinates
func (s *Scene) ToLocal(p vmath.Vec2) vmath.Vec2 {
	if s == nil {
		return p
	}
	return s.rect.Local(p)
}

// AddListener registers fn and returns its disposer; the disposer is idempotent
func (s *Scene) AddListener(fn Listener) (dispose func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	r := &registration{fn: fn, active: true}
	s.listeners = append(s.listeners, r)
	return func() {
		if !r.active {
			return
		}
		r.active = false
		s.remove(r)
	}
}

func (s *Scene) remove(r *registration) {
	for i, o := range s.listeners {
		if o == r {
			copy(s.listeners[i:], s.listeners[i+1:])
			s.listeners[len(s.listeners)-1] = nil
			s.listeners = s.listeners[:len(s.listeners)-1]
			return
		}
	}
}

// Listeners returns the number of registered listeners
func (s *Scene) Listeners() int {
	if s == nil {
		return 0
	}
	return len(s.listeners)
}

// Dispatch delivers ev to every listener registered before the call
// Listeners disposed during dispatch are skipped
func (s *Scene) Dispatch(ev PointerEvent) {
	if !s.Mounted() || len(s.listeners) == 0 {
		return
	}
	snapshot := make([]*registration, len(s.listeners))
	copy(snapshot, s.listeners)
	for _, r := range snapshot {
		if r.active {
			r.fn(ev)
		}
	}
}
