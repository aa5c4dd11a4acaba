package parameter

// Terminal view geometry
const (
	// CellAspect is the world height of one terminal row relative to one column
	CellAspect = 2.0

	// GutterCells is the margin kept between the scene and the terminal edge so bodies can be dragged out
	GutterCells = 10

	// ViewBoundaryMargin is the out-of-bounds margin used by the terminal day view
	ViewBoundaryMargin = 3.0

	// StatusRows is the number of rows reserved below the scene for the status line
	StatusRows = 1

	// MinSpawnHeight is the smallest strip below the time line used for spawning before falling back to the whole scene
	MinSpawnHeight = 2 * SpawnMargin
)
