package component

// Camera follows a target at a fixed offset. Z is pinned to Depth every tick.
type Camera struct {
	OffsetX    float64
	OffsetY    float64
	Smoothness float64
	Depth      float64
	Z          float64
}

var CameraComponent = NewComponent[Camera]()
