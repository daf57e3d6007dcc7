package component

// Input stores per-tick input state for an entity.
type Input struct {
	// MoveX is the horizontal axis in [-1, 1].
	MoveX float64
	// Jump is held this tick.
	Jump bool
	// DashPressed is true only on the tick the dash button went down.
	DashPressed bool
}

var InputComponent = NewComponent[Input]()
