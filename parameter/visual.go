package parameter

// Attribute mapping
const (
	// SizeBaseFraction is the size of a zero-duration task relative to min(viewportW, viewportH)
	SizeBaseFraction = 0.05

	// SizeMaxFraction caps the size of a full-day task relative to min(viewportW, viewportH)
	SizeMaxFraction = 0.25

	// RectangleWidthFactor and RectangleHeightFactor derive rectangle sides from the size
	RectangleWidthFactor  = 2.0
	RectangleHeightFactor = 1.25

	// OpacityUndated applies to tasks without a due date
	OpacityUndated = 0.8
	// OpacityUrgent applies to tasks due within UrgentHours (and overdue ones)
	OpacityUrgent = 1.0
	// OpacityNear and OpacityFar bound the 24-72h interpolation
	OpacityNear = 0.8
	OpacityFar  = 0.6
	// OpacityFloor is reached at WeekHours and held beyond
	OpacityFloor = 0.3

	UrgentHours = 24.0
	SoonHours   = 72.0
	WeekHours   = 168.0

	// DensityUndated applies to tasks without a creation time
	DensityUndated = 1.0
	// DensityMin is the density of a brand new task; age adds up to one more unit
	DensityMin = 0.5
	// DensityAgeDays is the age at which density saturates
	DensityAgeDays = 7.0

	BaseRestitution = 0.6
	BaseFriction    = 0.3
	BaseAirFriction = 0.01

	ImportanceModifierHigh    = 1.2
	ImportanceModifierDefault = 1.0
	ImportanceModifierLow     = 0.8

	// StrokeDarken is the Lab lightness blend towards black for body outlines
	StrokeDarken = 0.3
)

// Palette is the soft hue set used for task bodies
var Palette = [10]string{
	"#ff6b6b", "#ff8e53", "#ff6b9d", "#88ebeb", "#4ecdc4",
	"#45aaf2", "#26de81", "#96ceb4", "#ffeaa7", "#dda0dd",
}

// TimelineColor is the fill of the "now" strip
const TimelineColor = "#fdf7c3"

// BackgroundColor is the scene background used for opacity blending
const BackgroundColor = "#afc8fe"
