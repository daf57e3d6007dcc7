package system

import (
	"testing"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

func TestSelectAnimation(t *testing.T) {
	cases := []struct {
		name string
		prev component.AnimationLabel
		in   AnimationInput
		want component.AnimationLabel
	}{
		{"idle", component.AnimIdle, AnimationInput{Grounded: true}, component.AnimIdle},
		{"running", component.AnimIdle, AnimationInput{Grounded: true, MoveX: 1}, component.AnimRunning},
		{"tiny_axis_is_idle", component.AnimIdle, AnimationInput{Grounded: true, MoveX: 0.05}, component.AnimIdle},
		{"rising", component.AnimIdle, AnimationInput{VelocityY: 5}, component.AnimJumping},
		{"falling", component.AnimJumping, AnimationInput{VelocityY: -5}, component.AnimFalling},
		{"apex_keeps_jump", component.AnimJumping, AnimationInput{}, component.AnimJumping},
		{"wall_beats_all", component.AnimFalling, AnimationInput{TouchingWall: true, Dashing: true, VelocityY: -5}, component.AnimWallSliding},
		{"dashing", component.AnimRunning, AnimationInput{Dashing: true, Grounded: true}, component.AnimDashing},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			anim := &component.Animation{Label: c.prev}
			if got := SelectAnimation(anim, c.in); got != c.want {
				t.Fatalf("label = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLandingFiresOnce(t *testing.T) {
	anim := &component.Animation{}

	anim.Label = SelectAnimation(anim, AnimationInput{VelocityY: -3})
	if anim.Label != component.AnimFalling {
		t.Fatalf("label = %v, want falling", anim.Label)
	}

	anim.Label = SelectAnimation(anim, AnimationInput{Grounded: true})
	if anim.Label != component.AnimLanding || !anim.Landed {
		t.Fatalf("first grounded tick: label=%v landed=%v", anim.Label, anim.Landed)
	}

	anim.Label = SelectAnimation(anim, AnimationInput{Grounded: true})
	if anim.Label != component.AnimIdle || anim.Landed {
		t.Fatalf("second grounded tick: label=%v landed=%v", anim.Label, anim.Landed)
	}
}

func TestWallContactCancelsLanding(t *testing.T) {
	anim := &component.Animation{}
	anim.Label = SelectAnimation(anim, AnimationInput{VelocityY: -3})
	anim.Label = SelectAnimation(anim, AnimationInput{TouchingWall: true, VelocityY: -1})
	anim.Label = SelectAnimation(anim, AnimationInput{Grounded: true})
	if anim.Label == component.AnimLanding {
		t.Fatalf("landing should not follow a wall slide")
	}
}

func TestStepFrames(t *testing.T) {
	anim := &component.Animation{
		Label:   component.AnimJumping,
		Playing: true,
		Defs: map[component.AnimationLabel]component.AnimationDef{
			component.AnimJumping: {FrameCount: 2, FPS: 30, Loop: false},
		},
	}
	// 30 fps at 60 TPS advances every second tick
	for i := 0; i < 10; i++ {
		stepFrames(anim)
	}
	if anim.Frame != 1 || anim.Playing {
		t.Fatalf("non-looping clip should hold last frame, frame=%d playing=%v", anim.Frame, anim.Playing)
	}
}

func landingWorld(t *testing.T) (*ecs.World, *component.Animation, *component.Contact, *component.Velocity, *component.Input) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.Animation{Defs: map[component.AnimationLabel]component.AnimationDef{
		// 15 fps at 60 TPS: four ticks per frame, twelve for the clip
		component.AnimLanding: {FrameCount: 3, FPS: 15},
	}}
	contact := &component.Contact{}
	vel := &component.Velocity{Y: -3}
	in := &component.Input{}
	for _, err := range []error{
		ecs.Add(w, e, component.AnimationComponent.Kind(), anim),
		ecs.Add(w, e, component.ContactComponent.Kind(), contact),
		ecs.Add(w, e, component.VelocityComponent.Kind(), vel),
		ecs.Add(w, e, component.InputComponent.Kind(), in),
	} {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	sys := NewAnimationSystem()
	sys.Update(w)
	if anim.Label != component.AnimFalling {
		t.Fatalf("label = %v, want falling", anim.Label)
	}
	contact.Grounded = true
	vel.Y = 0
	return w, anim, contact, vel, in
}

func TestLandingClipPlaysToEnd(t *testing.T) {
	w, anim, _, _, _ := landingWorld(t)
	sys := NewAnimationSystem()

	for tick := 0; tick < 12; tick++ {
		sys.Update(w)
		if anim.Label != component.AnimLanding {
			t.Fatalf("tick %d: label = %v, want landing", tick, anim.Label)
		}
		if anim.Landed != (tick == 0) {
			t.Fatalf("tick %d: landed = %v", tick, anim.Landed)
		}
	}
	if anim.Frame != 2 || anim.Playing {
		t.Fatalf("landing clip should finish on its last frame, frame=%d playing=%v", anim.Frame, anim.Playing)
	}

	sys.Update(w)
	if anim.Label != component.AnimIdle {
		t.Fatalf("label after clip = %v, want idle", anim.Label)
	}
}

func TestRunningInterruptsLanding(t *testing.T) {
	w, anim, _, _, in := landingWorld(t)
	sys := NewAnimationSystem()

	sys.Update(w)
	if anim.Label != component.AnimLanding {
		t.Fatalf("label = %v, want landing", anim.Label)
	}
	in.MoveX = 1
	sys.Update(w)
	if anim.Label != component.AnimRunning {
		t.Fatalf("label = %v, want running", anim.Label)
	}
}
