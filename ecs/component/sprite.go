package component

import "image/color"

// Sprite is a flat colored rectangle. Transform is its center for dynamic
// bodies and its bottom-left corner when BottomLeft is set.
type Sprite struct {
	Width      float64
	Height     float64
	Color      color.NRGBA
	BottomLeft bool
	FacingLeft bool
	Layer      int
}

var SpriteComponent = NewComponent[Sprite]()
