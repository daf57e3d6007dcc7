package component

import "math"

// MotionState is the controller state after a tick.
type MotionState int

const (
	MotionIdle MotionState = iota
	MotionRunning
	MotionJumping
	MotionFalling
	MotionWallSliding
	MotionDashing
)

var motionStateNames = [...]string{"idle", "running", "jumping", "falling", "wall_sliding", "dashing"}

func (s MotionState) String() string {
	if s < 0 || int(s) >= len(motionStateNames) {
		return "unknown"
	}
	return motionStateNames[s]
}

// Dash tracks the dash window and its cooldown with explicit timers.
type Dash struct {
	Active            bool
	Remaining         float64
	CooldownRemaining float64
	DirX              float64
}

// Available reports whether a new dash may start.
func (d Dash) Available() bool {
	return !d.Active && d.CooldownRemaining <= 0
}

// Motion is the controller-owned state of a moving entity.
type Motion struct {
	State      MotionState
	FacingLeft bool
	LastJumpAt float64
	Dash       Dash
}

// NewMotion returns a motion state that has never jumped.
func NewMotion(facingLeft bool) *Motion {
	return &Motion{FacingLeft: facingLeft, LastJumpAt: math.Inf(-1)}
}

// FacingDir is -1 when facing left and 1 otherwise.
func (m Motion) FacingDir() float64 {
	if m.FacingLeft {
		return -1
	}
	return 1
}

var MotionComponent = NewComponent[Motion]()
