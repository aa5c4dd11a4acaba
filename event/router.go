package event

// Handler processes one event
type Handler func(ev Event)

// Router fans queued events out to handlers registered per type
// Dispatch runs on the loop goroutine; handlers run in registration order
type Router struct {
	queue    *Queue
	handlers map[Type][]Handler
}

// NewRouter creates a router draining q
func NewRouter(q *Queue) *Router {
	return &Router{
		queue:    q,
		handlers: make(map[Type][]Handler),
	}
}

// On registers fn for the given types
func (r *Router) On(fn Handler, types ...Type) {
	if fn == nil {
		return
	}
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], fn)
	}
}

// HandlerCount returns the number of handlers for t
func (r *Router) HandlerCount(t Type) int {
	return len(r.handlers[t])
}

// DispatchAll consumes the queue and routes every event, returning the number consumed
func (r *Router) DispatchAll() int {
	if r.queue == nil {
		return 0
	}
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h(ev)
		}
	}
	return len(events)
}
