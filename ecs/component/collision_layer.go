package component

import "strings"

// Collision categories. Shapes carry one category; queries pass a mask.
const (
	LayerGround uint32 = 1 << iota
	LayerPlayer
	LayerHazard
)

var layerNames = map[string]uint32{
	"ground": LayerGround,
	"player": LayerPlayer,
	"hazard": LayerHazard,
}

// LayerByName resolves a named collision layer as written in prefab specs.
func LayerByName(name string) (uint32, bool) {
	l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// CollisionLayer declares the category an entity's shape belongs to and the
// categories it collides with. A zero Mask collides with everything.
type CollisionLayer struct {
	Category uint32
	Mask     uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
