// Package body creates task bodies in the shared world and guarantees their single removal
package body

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/visual"
	"github.com/lixenwraith/taskfall/vmath"
)

// Factory spawns task bodies into a simulation it does not own
type Factory struct {
	sim physics.Simulation
	rng *rand.Rand
	// newLabel produces fallback labels for tasks without an id
	newLabel func() string
}

// NewFactory creates a factory; a nil rng seeds one from the clock
func NewFactory(sim physics.Simulation, rng *rand.Rand) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Factory{
		sim: sim,
		rng: rng,
		newLabel: func() string {
			return parameter.FallbackLabelPrefix + uuid.NewString()
		},
	}
}

// Spawn creates exactly one body for t at a random position inside region (minus SpawnMargin),
// gives it one random initial push and adds it to the world
// Returns nil when the factory has no simulation
func (f *Factory) Spawn(opts visual.Options, t task.Task, region vmath.Rect) *Handle {
	if f == nil || f.sim == nil {
		return nil
	}

	label := t.Label()
	if label == "" {
		label = f.newLabel()
	}

	pos := f.randomPoint(region)
	b := f.sim.CreateBody(opts.PhysicsShape(), pos, opts.BodyOptions(label))
	if b == nil {
		return nil
	}

	// Horizontal ±InitialForceX, vertical [0, InitialForceY] downward, scaled by mass to a velocity change
	push := vmath.V(
		(f.rng.Float64()*2-1)*parameter.InitialForceX,
		f.rng.Float64()*parameter.InitialForceY,
	)
	f.sim.Add(b)
	f.sim.ApplyForce(b, push.Scale(b.Mass()))

	log.Printf("body: spawned %s %s at (%.1f, %.1f) size %.1f", label, opts.Shape, pos.X, pos.Y, opts.Size)
	return &Handle{sim: f.sim, body: b, label: label, task: t}
}

// randomPoint picks a uniform point inside region shrunk by SpawnMargin
// A region too small for the margin collapses to its center on that axis
func (f *Factory) randomPoint(region vmath.Rect) vmath.Vec2 {
	m := parameter.SpawnMargin
	x := region.X + region.W/2
	y := region.Y + region.H/2
	if region.W > 2*m {
		x = region.X + m + f.rng.Float64()*(region.W-2*m)
	}
	if region.H > 2*m {
		y = region.Y + m + f.rng.Float64()*(region.H-2*m)
	}
	return vmath.V(x, y)
}

// Handle is the caller's ownership of one spawned body
type Handle struct {
	sim     physics.Simulation
	body    *physics.Body
	label   string
	task    task.Task
	removed bool
}

// Body returns the live body, nil after removal
func (h *Handle) Body() *physics.Body {
	if h == nil || h.removed {
		return nil
	}
	return h.body
}

// Label returns the correlation label
func (h *Handle) Label() string {
	if h == nil {
		return ""
	}
	return h.label
}

// Task returns the task the body represents
func (h *Handle) Task() task.Task {
	if h == nil {
		return task.Task{}
	}
	return h.task
}

// Removed reports whether Remove has run
func (h *Handle) Removed() bool {
	return h == nil || h.removed
}

// Remove takes the body out of the world; safe to call repeatedly and on a nil handle
func (h *Handle) Remove() {
	if h == nil || h.removed {
		return
	}
	h.removed = true
	if h.sim != nil && h.body != nil {
		h.sim.Remove(h.body)
		log.Printf("body: removed %s", h.label)
	}
	h.body = nil
}
