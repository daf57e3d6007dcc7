package component

// GroundWallProbe is the fixed probe geometry used to classify contact: a
// circle under the feet and a box cast to either side. Offsets are relative
// to the entity Transform.
type GroundWallProbe struct {
	GroundOffsetX float64
	GroundOffsetY float64
	GroundRadius  float64

	WallWidth    float64
	WallHeight   float64
	WallOffsetX  float64
	WallOffsetY  float64
	WallDistance float64

	// Layer is the category mask the probes test against.
	Layer uint32
}

// Configured reports whether the probe has usable geometry.
func (p GroundWallProbe) Configured() bool {
	return p.GroundRadius > 0 && p.WallWidth > 0 && p.WallHeight > 0 && p.Layer != 0
}

var GroundWallProbeComponent = NewComponent[GroundWallProbe]()

// Contact is this tick's classification. It is rebuilt every tick.
type Contact struct {
	Grounded     bool
	TouchingWall bool
}

var ContactComponent = NewComponent[Contact]()
