package parameter

// World
const (
	// Gravity is the downward acceleration in world units/s²
	Gravity = 30.0

	// SolverIterations is the number of contact resolution passes per step
	SolverIterations = 4

	// RestingSpeed is the normal speed below which contacts do not bounce
	RestingSpeed = 1.5

	// AirFrictionReferenceHz converts per-tick air friction into a per-second decay
	AirFrictionReferenceHz = 60.0

	// WallThickness is the thickness of static walls in world units
	WallThickness = 4.0
)

// Body Factory
const (
	// SpawnMargin keeps spawn positions away from the viewport edges
	SpawnMargin = 4.0

	// InitialForceX is the half-range of the random horizontal spawn impulse
	InitialForceX = 6.0

	// InitialForceY is the upper bound of the random downward spawn impulse
	InitialForceY = 3.0

	// FallbackLabelPrefix prefixes generated labels for tasks without ids
	FallbackLabelPrefix = "task-"
)

// Drag constraint
const (
	// DragStiffness is the fraction of the pointer offset closed per move event
	DragStiffness = 1.0

	// DragMaxReleaseSpeed caps the velocity inherited when a dragged body is released
	DragMaxReleaseSpeed = 60.0
)
