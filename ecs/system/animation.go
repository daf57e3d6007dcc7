package system

import (
	"math"

	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

const (
	// runThreshold matches the dead zone used to tell running from idle.
	runThreshold = 0.1
	// verticalDeadzone hides solver jitter while resting on the ground.
	verticalDeadzone = 1e-3
)

// AnimationInput is everything the label selection looks at.
type AnimationInput struct {
	TouchingWall bool
	Grounded     bool
	VelocityY    float64
	Dashing      bool
	MoveX        float64
}

// AnimationSystem picks the animation label for each entity and steps its
// frames.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.ContactComponent.Kind(), func(e ecs.Entity, anim *component.Animation, contact *component.Contact) {
		in := AnimationInput{TouchingWall: contact.TouchingWall, Grounded: contact.Grounded}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			in.VelocityY = v.Y
		}
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			in.MoveX = input.MoveX
		}
		if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
			in.Dashing = m.Dash.Active
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FacingLeft = m.FacingLeft
			}
		}

		label := SelectAnimation(anim, in)
		if label != anim.Label {
			anim.Previous = anim.Label
			anim.Label = label
			anim.Frame = 0
			anim.FrameTimer = 0
			anim.Playing = true
		}
		stepFrames(anim)
	})
}

// SelectAnimation maps this tick's state to a label. Wall contact suppresses
// every other label. Landing starts on the first grounded tick after a fall,
// and Landed is set for that tick only. A non-looping landing clip keeps the
// label until it finishes or the player starts running.
func SelectAnimation(anim *component.Animation, in AnimationInput) component.AnimationLabel {
	anim.Landed = false
	vy := verticalSign(in.VelocityY)

	switch {
	case in.TouchingWall:
		anim.Falling = false
		return component.AnimWallSliding
	case in.Dashing:
		return component.AnimDashing
	case vy > 0:
		anim.Falling = false
		return component.AnimJumping
	case !in.Grounded && vy < 0:
		anim.Falling = true
		return component.AnimFalling
	case !in.Grounded:
		// apex or freshly spawned in the air
		if anim.Label == component.AnimJumping {
			return component.AnimJumping
		}
		anim.Falling = true
		return component.AnimFalling
	case anim.Falling:
		anim.Falling = false
		anim.Landed = true
		return component.AnimLanding
	case math.Abs(in.MoveX) > runThreshold:
		return component.AnimRunning
	case anim.Label == component.AnimLanding && clipPlaying(anim, component.AnimLanding):
		return component.AnimLanding
	}
	return component.AnimIdle
}

func clipPlaying(anim *component.Animation, label component.AnimationLabel) bool {
	def, ok := anim.Defs[label]
	return ok && !def.Loop && def.FrameCount > 0 && anim.Playing
}

func verticalSign(vy float64) float64 {
	if math.Abs(vy) <= verticalDeadzone {
		return 0
	}
	return common.Sign(vy)
}

func stepFrames(anim *component.Animation) {
	def, ok := anim.Defs[anim.Label]
	if !ok || def.FrameCount <= 0 || !anim.Playing {
		return
	}

	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = int(float64(common.TPS) / def.FPS)
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame >= def.FrameCount {
		if def.Loop {
			anim.Frame = 0
		} else {
			anim.Frame = def.FrameCount - 1
			anim.Playing = false
		}
	}
}
