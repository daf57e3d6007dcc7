package component

// Hazard marks an entity that kills the player on overlap. Bounds are
// relative to the Transform, which is the bottom-left corner.
type Hazard struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var HazardComponent = NewComponent[Hazard]()
