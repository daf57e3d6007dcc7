package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
	"github.com/milk9111/spikerun/prefabs"
)

var (
	ErrNilSpec      = errors.New("entity: nil spec")
	ErrUnknownLayer = errors.New("entity: unknown collision layer")
	ErrUnknownLabel = errors.New("entity: unknown animation label")
)

// BuildPlayer instantiates the player prefab with its center at the spawn
// point. It has the system.PlayerBuilder signature.
func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, at component.SpawnPoint) (ecs.Entity, error) {
	if spec == nil {
		return ecs.NoEntity, ErrNilSpec
	}
	probe, err := PlayerProbe(spec)
	if err != nil {
		return ecs.NoEntity, fmt.Errorf("player: %w", err)
	}
	defs, err := PlayerAnimations(spec)
	if err != nil {
		return ecs.NoEntity, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return ecs.NoEntity, fmt.Errorf("player: add %s: %w", what, err)
	}

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fail("player tag", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        at.X,
		Y:        at.Y,
		ScaleX:   1,
		ScaleY:   1,
		Rotation: at.Rotation,
	}); err != nil {
		return fail("transform", err)
	}
	tuning := PlayerTuning(spec)
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &tuning); err != nil {
		return fail("player", err)
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), component.NewMotion(spec.FacingLeft)); err != nil {
		return fail("motion", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fail("input", err)
	}
	if err := ecs.Add(w, e, component.GroundWallProbeComponent.Kind(), &probe); err != nil {
		return fail("probe", err)
	}
	if err := ecs.Add(w, e, component.ContactComponent.Kind(), &component.Contact{}); err != nil {
		return fail("contact", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return fail("velocity", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Collider.Mass,
		Friction: spec.Collider.Friction,
	}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerGround,
	}); err != nil {
		return fail("collision layer", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Defs: defs, Playing: true}); err != nil {
		return fail("animation", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      spec.Collider.Width,
		Height:     spec.Collider.Height,
		Color:      spec.Color.Color,
		FacingLeft: spec.FacingLeft,
		Layer:      10,
	}); err != nil {
		return fail("sprite", err)
	}

	return e, nil
}

// ApplyPlayerSpec refreshes tuning, probes and animations of a live player
// in place. Position, velocity and timers are kept.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return ErrNilSpec
	}
	if !ecs.IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	probe, err := PlayerProbe(spec)
	if err != nil {
		return err
	}
	defs, err := PlayerAnimations(spec)
	if err != nil {
		return err
	}

	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		*p = PlayerTuning(spec)
	}
	if p, ok := ecs.Get(w, e, component.GroundWallProbeComponent.Kind()); ok {
		*p = probe
	}
	if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		a.Defs = defs
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Color = spec.Color.Color
	}
	return nil
}

func PlayerTuning(spec *prefabs.PlayerSpec) component.Player {
	return component.Player{
		MoveSpeed:     spec.MoveSpeed,
		JumpForce:     spec.JumpForce,
		WallJumpForce: spec.WallJumpForce,
		JumpCooldown:  spec.JumpCooldown,
		DashSpeed:     spec.DashSpeed,
		DashDuration:  spec.DashDuration,
		DashCooldown:  spec.DashCooldown,
	}
}

// PlayerProbe converts the probe section. Missing geometry is not an error
// here; the sensor reports it at runtime.
func PlayerProbe(spec *prefabs.PlayerSpec) (component.GroundWallProbe, error) {
	p := spec.Probe
	var layer uint32
	if p.GroundLayer != "" {
		l, ok := component.LayerByName(p.GroundLayer)
		if !ok {
			return component.GroundWallProbe{}, fmt.Errorf("%w: %q", ErrUnknownLayer, p.GroundLayer)
		}
		layer = l
	}
	return component.GroundWallProbe{
		GroundOffsetX: p.GroundOffset.X,
		GroundOffsetY: p.GroundOffset.Y,
		GroundRadius:  p.GroundRadius,
		WallWidth:     p.WallSize.X,
		WallHeight:    p.WallSize.Y,
		WallOffsetX:   p.WallOffset.X,
		WallOffsetY:   p.WallOffset.Y,
		WallDistance:  p.WallDistance,
		Layer:         layer,
	}, nil
}

func PlayerAnimations(spec *prefabs.PlayerSpec) (map[component.AnimationLabel]component.AnimationDef, error) {
	defs := make(map[component.AnimationLabel]component.AnimationDef, len(spec.Animations))
	for name, a := range spec.Animations {
		label, ok := component.AnimationLabelByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
		}
		defs[label] = component.AnimationDef{
			FrameCount: a.Frames,
			FPS:        a.FPS,
			Loop:       a.Loop,
			Color:      a.Color.Color,
		}
	}
	return defs, nil
}
