package component

// Player holds movement tuning. Speeds are in units per second and times in
// seconds.
type Player struct {
	MoveSpeed     float64
	JumpForce     float64
	WallJumpForce float64
	JumpCooldown  float64
	DashSpeed     float64
	DashDuration  float64
	DashCooldown  float64
}

// WallJumpPush is the horizontal speed of a wall jump. It falls back to
// JumpForce when no dedicated value is configured.
func (p Player) WallJumpPush() float64 {
	if p.WallJumpForce > 0 {
		return p.WallJumpForce
	}
	return p.JumpForce
}

var PlayerComponent = NewComponent[Player]()
