// Package status holds lock-free runtime metrics shown on the status line and in logs
package status

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// MaxLabelLen is the maximum length of a label metric
const MaxLabelLen = 24

// Gauge is an atomic float64; zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }
func (g *Gauge) Get() float64  { return math.Float64frombits(g.bits.Load()) }

// Label is an atomic bounded string; zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Set stores v truncated to MaxLabelLen
func (l *Label) Set(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

func (l *Label) Get() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// family is a named set of metrics of one kind
// Registration takes the mutex; callers cache the returned pointer
type family[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newFamily[T any]() *family[T] {
	return &family[T]{items: make(map[string]*T)}
}

func (f *family[T]) get(name string) *T {
	f.mu.RLock()
	p, ok := f.items[name]
	f.mu.RUnlock()
	if ok {
		return p
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.items[name]; ok {
		return p
	}
	p = new(T)
	f.items[name] = p
	return p
}

func (f *family[T]) each(fn func(name string, p *T)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for name, p := range f.items {
		fn(name, p)
	}
}

// Metric is a point-in-time reading
type Metric struct {
	Name  string
	Value string
}

// Registry is the metrics facade
// Components cache pointers at construction and write atomics from the loop goroutine
type Registry struct {
	counters *family[atomic.Int64]
	gauges   *family[Gauge]
	labels   *family[Label]
	flags    *family[atomic.Bool]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		counters: newFamily[atomic.Int64](),
		gauges:   newFamily[Gauge](),
		labels:   newFamily[Label](),
		flags:    newFamily[atomic.Bool](),
	}
}

// Counter returns the named counter, creating it on first use
// A nil registry returns a detached counter so callers need no guards
func (r *Registry) Counter(name string) *atomic.Int64 {
	if r == nil {
		return new(atomic.Int64)
	}
	return r.counters.get(name)
}

// Gauge returns the named gauge
func (r *Registry) Gauge(name string) *Gauge {
	if r == nil {
		return new(Gauge)
	}
	return r.gauges.get(name)
}

// Label returns the named label
func (r *Registry) Label(name string) *Label {
	if r == nil {
		return new(Label)
	}
	return r.labels.get(name)
}

// Flag returns the named boolean
func (r *Registry) Flag(name string) *atomic.Bool {
	if r == nil {
		return new(atomic.Bool)
	}
	return r.flags.get(name)
}

// Snapshot returns all metrics sorted by name
func (r *Registry) Snapshot() []Metric {
	if r == nil {
		return nil
	}
	var out []Metric
	r.counters.each(func(name string, p *atomic.Int64) {
		out = append(out, Metric{name, strconv.FormatInt(p.Load(), 10)})
	})
	r.gauges.each(func(name string, p *Gauge) {
		out = append(out, Metric{name, strconv.FormatFloat(p.Get(), 'f', 2, 64)})
	})
	r.labels.each(func(name string, p *Label) {
		out = append(out, Metric{name, p.Get()})
	})
	r.flags.each(func(name string, p *atomic.Bool) {
		out = append(out, Metric{name, strconv.FormatBool(p.Load())})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Format renders the named metrics as "name=value" pairs in the given order
// Unknown names are skipped
func (r *Registry) Format(names ...string) string {
	if r == nil {
		return ""
	}
	index := make(map[string]string)
	for _, m := range r.Snapshot() {
		index[m.Name] = m.Value
	}
	var sb strings.Builder
	for _, name := range names {
		v, ok := index[name]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", name, v)
	}
	return sb.String()
}
