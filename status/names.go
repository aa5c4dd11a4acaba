package status

// Metric names shared by producers and the status line
const (
	BodiesLive       = "bodies.live"
	BodiesSpawned    = "bodies.spawned"
	BodiesRemoved    = "bodies.removed"
	StackPending     = "stack.pending"
	GestureLongPress = "gesture.longpress"
	GestureCancel    = "gesture.cancel"
	BoundaryMark     = "boundary.mark"
	BoundaryClear    = "boundary.clear"
	TimelineProgress = "timeline.progress"
	TimelineClock    = "timeline.clock"
	DetailVisible    = "detail.visible"
	EngineFrames     = "engine.frames"
	EngineSteps      = "engine.steps"
	EventsDropped    = "events.dropped"
)
