package system

import (
	"log"

	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// timerEpsilon absorbs float drift from summing fixed timesteps.
const timerEpsilon = 1e-9

// MotionSystem integrates player velocity from input and contact state.
type MotionSystem struct {
	diag diagnostics
}

func NewMotionSystem(logger *log.Logger) *MotionSystem {
	return &MotionSystem{diag: newDiagnostics(logger)}
}

func (m *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Time()
	dt := w.Timestep()

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, p *component.Player, motion *component.Motion) {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			m.diag.once(e, "input", "motion: entity %v has no input: %v", e, ErrCollaboratorMissing)
			return
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		body, bodyOK := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || !bodyOK {
			m.diag.once(e, "body", "motion: entity %v has no body: %v", e, ErrCollaboratorMissing)
			return
		}
		probe, ok := ecs.Get(w, e, component.GroundWallProbeComponent.Kind())
		if !ok || !probe.Configured() {
			m.diag.once(e, "probe", "motion: entity %v probe geometry unset: %v", e, ErrConfigurationMissing)
			return
		}
		contact, ok := ecs.Get(w, e, component.ContactComponent.Kind())
		if !ok {
			m.diag.once(e, "contact", "motion: entity %v has no contact state: %v", e, ErrCollaboratorMissing)
			return
		}

		StepMotion(*p, motion, *input, *contact, vel, now, dt)
		body.IgnoreGravity = motion.Dash.Active
	})
}

// StepMotion advances one entity by one tick. It is the whole controller:
// dash timers first, then horizontal movement, facing, jumps and finally a
// new dash.
func StepMotion(p component.Player, m *component.Motion, in component.Input, c component.Contact, v *component.Velocity, now, dt float64) {
	if m.Dash.Active {
		m.Dash.Remaining -= dt
		if m.Dash.Remaining > timerEpsilon {
			v.X = m.Dash.DirX * p.DashSpeed
			v.Y = 0
			m.State = component.MotionDashing
			return
		}
		m.Dash.Active = false
		m.Dash.Remaining = 0
		m.Dash.CooldownRemaining = p.DashCooldown
	} else if m.Dash.CooldownRemaining > 0 {
		m.Dash.CooldownRemaining -= dt
		if m.Dash.CooldownRemaining <= timerEpsilon {
			m.Dash.CooldownRemaining = 0
		}
	}

	axis := clampAxis(in.MoveX)
	if axis > 0 {
		m.FacingLeft = false
	} else if axis < 0 {
		m.FacingLeft = true
	}
	v.X = axis * p.MoveSpeed

	jumped := false
	if in.Jump && now+timerEpsilon >= m.LastJumpAt+p.JumpCooldown {
		switch {
		case c.Grounded:
			v.Y = p.JumpForce
			m.LastJumpAt = now
			jumped = true
		case c.TouchingWall:
			// push away from the wall the entity is facing into
			v.X = -m.FacingDir() * p.WallJumpPush()
			v.Y = p.JumpForce
			m.LastJumpAt = now
			jumped = true
		}
	}

	if in.DashPressed && m.Dash.Available() {
		dir := common.Sign(axis)
		if dir == 0 {
			dir = m.FacingDir()
		}
		m.Dash = component.Dash{Active: true, Remaining: p.DashDuration, DirX: dir}
		v.X = dir * p.DashSpeed
		v.Y = 0
		m.State = component.MotionDashing
		return
	}

	m.State = classifyMotion(c, v, axis, jumped)
}

func classifyMotion(c component.Contact, v *component.Velocity, axis float64, jumped bool) component.MotionState {
	switch {
	case jumped:
		return component.MotionJumping
	case c.TouchingWall && !c.Grounded:
		return component.MotionWallSliding
	case !c.Grounded && v.Y > 0:
		return component.MotionJumping
	case !c.Grounded:
		return component.MotionFalling
	case axis != 0:
		return component.MotionRunning
	}
	return component.MotionIdle
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
