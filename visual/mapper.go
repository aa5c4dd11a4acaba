package visual

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

var palette = parsePalette()

func parsePalette() []colorful.Color {
	out := make([]colorful.Color, 0, len(parameter.Palette))
	for _, hex := range parameter.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Palette returns the task hues
func Palette() []colorful.Color {
	out := make([]colorful.Color, len(palette))
	copy(out, palette)
	return out
}

// Mapper converts tasks to body options
// By default color and shape are keyed by task type; WithRandom switches to a random pick per call
type Mapper struct {
	rng *rand.Rand
}

// Option configures a Mapper
type Option func(*Mapper)

// WithRandom picks color and shape from rng on every call
func WithRandom(rng *rand.Rand) Option {
	return func(m *Mapper) {
		m.rng = rng
	}
}

// NewMapper creates a mapper
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMapper = NewMapper()

// MapTask maps a task with the deterministic per-type color and shape policy
func MapTask(t task.Task, viewportW, viewportH float64, now time.Time) Options {
	return defaultMapper.Map(t, viewportW, viewportH, now)
}

// Map derives body options for t in a viewportW×viewportH scene at time now
func (m *Mapper) Map(t task.Task, viewportW, viewportH float64, now time.Time) Options {
	minDim := math.Min(viewportW, viewportH)
	if minDim < 0 {
		minDim = 0
	}

	shapeIdx, colorIdx := m.pick(t.EffectiveType())
	shape := Shapes[shapeIdx]
	size := Size(t.EffectiveDuration(), minDim)
	w, h := dimensions(shape, size)

	opacity := parameter.OpacityUndated
	if hours, ok := t.HoursUntilDue(now); ok {
		opacity = Opacity(hours)
	}

	density := parameter.DensityUndated
	if age, ok := t.AgeDays(now); ok {
		density = Density(age)
	}

	mod := ImportanceModifier(t.Importance)
	fill := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	if len(palette) > 0 {
		fill = palette[colorIdx%len(palette)]
	}

	return Options{
		Shape:       shape,
		Size:        size,
		Width:       w,
		Height:      h,
		Restitution: parameter.BaseRestitution * mod,
		Friction:    parameter.BaseFriction,
		AirFriction: parameter.BaseAirFriction / mod,
		Density:     density,
		Style: physics.Style{
			Fill:    fill,
			Stroke:  Darken(fill, parameter.StrokeDarken),
			Opacity: opacity,
		},
	}
}

// pick returns shape and palette indices
func (m *Mapper) pick(ty task.Type) (shape, color int) {
	if m.rng != nil {
		return m.rng.Intn(len(Shapes)), m.rng.Intn(len(parameter.Palette))
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(ty))
	sum := h.Sum32()
	color = int(sum % uint32(len(parameter.Palette)))
	shape = int((sum / uint32(len(parameter.Palette))) % uint32(len(Shapes)))
	return shape, color
}

// Size returns the body size for a duration in minutes
// Grows with the square root of the day fraction from SizeBaseFraction to SizeMaxFraction of minDim
func Size(durationMinutes int, minDim float64) float64 {
	base := parameter.SizeBaseFraction * minDim
	maxSize := parameter.SizeMaxFraction * minDim
	if durationMinutes < 0 {
		durationMinutes = task.DefaultDuration
	}
	ratio := math.Min(float64(durationMinutes)/task.MinutesPerDay, 1)
	return base + (maxSize-base)*math.Sqrt(ratio)
}

// Opacity maps hours until due to an urgency opacity; overdue counts as urgent
func Opacity(hours float64) float64 {
	switch {
	case hours <= parameter.UrgentHours:
		return parameter.OpacityUrgent
	case hours <= parameter.SoonHours:
		t := vmath.InverseLerp(parameter.UrgentHours, parameter.SoonHours, hours)
		return vmath.Lerp(parameter.OpacityNear, parameter.OpacityFar, t)
	case hours <= parameter.WeekHours:
		t := vmath.InverseLerp(parameter.SoonHours, parameter.WeekHours, hours)
		return vmath.Lerp(parameter.OpacityFar, parameter.OpacityFloor, t)
	default:
		return parameter.OpacityFloor
	}
}

// Density maps task age in days to body density
func Density(ageDays float64) float64 {
	if ageDays < 0 {
		ageDays = 0
	}
	return parameter.DensityMin + math.Min(ageDays/parameter.DensityAgeDays, 1)
}

// ImportanceModifier scales bounciness up and drag down for important tasks
func ImportanceModifier(imp task.Importance) float64 {
	switch imp {
	case task.ImportanceHigh:
		return parameter.ImportanceModifierHigh
	case task.ImportanceLow, task.ImportanceUnset:
		return parameter.ImportanceModifierLow
	default:
		return parameter.ImportanceModifierDefault
	}
}

// Darken lowers Lab lightness by amount (0..1)
func Darken(c colorful.Color, amount float64) colorful.Color {
	l, a, b := c.Lab()
	return colorful.Lab(l*(1-vmath.Clamp(amount, 0, 1)), a, b).Clamped()
}
