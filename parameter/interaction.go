package parameter

import "time"

// Gesture
const (
	// LongPressDuration is the hold time that opens task details
	LongPressDuration = 800 * time.Millisecond
)

// Boundary monitor
const (
	// BoundarySampleInterval is the out-of-bounds polling period
	BoundarySampleInterval = 100 * time.Millisecond

	// BoundaryMarginPx is the library default margin beyond the viewport edge
	BoundaryMarginPx = 50.0

	// OutOfBoundsOpacity is the feedback opacity of a body marked for deletion
	OutOfBoundsOpacity = 0.5

	// InBoundsOpacity is the feedback opacity of a body inside the viewport
	InBoundsOpacity = 1.0
)

// Time boundary
const (
	// DefaultDayStart is the top of the time window
	DefaultDayStart = "08:00"

	// DefaultDayEnd is the bottom of the time window
	DefaultDayEnd = "20:00"

	// TimelineTopMargin and TimelineBottomMargin inset the sweep range
	TimelineTopMargin    = 10.0
	TimelineBottomMargin = 10.0

	// TimelineStripHeight is the thickness of the "now" strip
	TimelineStripHeight = 2.0

	// TimelineStripInset is the horizontal gap left at each end of the strip
	TimelineStripInset = 1.0

	// TimelineLabel tags the time boundary body
	TimelineLabel = "currentTime"
)
