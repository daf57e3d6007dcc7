package component

import "image/color"

// AnimationLabel is the discrete visual state selected each tick.
type AnimationLabel int

const (
	AnimIdle AnimationLabel = iota
	AnimRunning
	AnimJumping
	AnimFalling
	AnimWallSliding
	AnimDashing
	AnimLanding
)

var animationLabelNames = [...]string{"idle", "running", "jumping", "falling", "wall_sliding", "dashing", "landing"}

func (l AnimationLabel) String() string {
	if l < 0 || int(l) >= len(animationLabelNames) {
		return "unknown"
	}
	return animationLabelNames[l]
}

// AnimationLabelByName parses the names used in prefab specs.
func AnimationLabelByName(name string) (AnimationLabel, bool) {
	for i, n := range animationLabelNames {
		if n == name {
			return AnimationLabel(i), true
		}
	}
	return AnimIdle, false
}

type AnimationDef struct {
	FrameCount int
	FPS        float64
	Loop       bool
	Color      color.NRGBA
}

// Animation is the sink the animation system writes into and the renderer
// reads from.
type Animation struct {
	Defs map[AnimationLabel]AnimationDef

	Label    AnimationLabel
	Previous AnimationLabel
	// Landed is set for exactly one tick when a fall ends on the ground.
	Landed bool
	// falling remembers that the last airborne label was Falling.
	Falling bool

	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
