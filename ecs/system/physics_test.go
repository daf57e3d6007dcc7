package system

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func addGround(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: true}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerGround}); err != nil {
		t.Fatalf("add layer: %v", err)
	}
	return e
}

func addBody(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 0.8, Height: 1.5, Mass: 1}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		t.Fatalf("add velocity: %v", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerPlayer, Mask: component.LayerGround}); err != nil {
		t.Fatalf("add layer: %v", err)
	}
	return e
}

func TestOverlapQueries(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(quietLogger())
	addGround(t, w, -5, -1, 10, 1)
	ps.Sync(w)

	cases := []struct {
		name string
		hit  bool
		got  func() bool
	}{
		{"circle_on_surface", true, func() bool { return ps.OverlapCircle(0, 0.1, 0.2, component.LayerGround) }},
		{"circle_above", false, func() bool { return ps.OverlapCircle(0, 1, 0.2, component.LayerGround) }},
		{"circle_wrong_mask", false, func() bool { return ps.OverlapCircle(0, 0.1, 0.2, component.LayerHazard) }},
		{"box_inside", true, func() bool { return ps.OverlapBox(AABB{X: 4.5, Y: -0.5, W: 1, H: 1}, component.LayerGround) }},
		{"box_beside", false, func() bool { return ps.OverlapBox(AABB{X: 5.5, Y: -0.5, W: 1, H: 1}, component.LayerGround) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.got(); got != c.hit {
				t.Fatalf("overlap = %v, want %v", got, c.hit)
			}
		})
	}
}

func TestQueriesSkipDynamicBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(quietLogger())
	addBody(t, w, 0, 0)
	ps.Sync(w)

	if ps.OverlapCircle(0, 0, 0.5, component.LayerGround) {
		t.Fatalf("player body should not answer ground queries")
	}
}

func TestBodyFallsAndLands(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(quietLogger())
	addGround(t, w, -5, -1, 10, 1)
	e := addBody(t, w, 0, 3)

	// the first step only changes velocity; position follows a step later
	ps.Update(w)
	w.Advance()
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if v.Y >= 0 {
		t.Fatalf("body should gain downward velocity, vy=%v", v.Y)
	}
	ps.Update(w)
	w.Advance()
	if tr.Y >= 3 {
		t.Fatalf("body should start falling, y=%v vy=%v", tr.Y, v.Y)
	}

	for i := 0; i < 180; i++ {
		ps.Update(w)
		w.Advance()
	}
	if math.Abs(tr.Y-0.75) > 0.15 {
		t.Fatalf("body should rest on the ground, y=%v", tr.Y)
	}
}

func TestIgnoreGravity(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(quietLogger())
	e := addBody(t, w, 0, 5)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	body.IgnoreGravity = true

	for i := 0; i < 10; i++ {
		ps.Update(w)
		w.Advance()
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if math.Abs(tr.Y-5) > 1e-9 {
		t.Fatalf("body should hover without gravity, y=%v", tr.Y)
	}
}

func TestBodiesFollowEntityLifetime(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(quietLogger())
	addGround(t, w, -5, -1, 10, 1)
	e := addBody(t, w, 0, 3)
	ps.Sync(w)
	if ps.BodyCount() != 2 {
		t.Fatalf("BodyCount = %d, want 2", ps.BodyCount())
	}

	ecs.DestroyEntity(w, e)
	ps.Update(w)
	if ps.BodyCount() != 1 {
		t.Fatalf("BodyCount after destroy = %d, want 1", ps.BodyCount())
	}
	dynamic := 0
	ps.Space().EachBody(func(b *cp.Body) {
		if b.GetType() == cp.BODY_DYNAMIC {
			dynamic++
		}
	})
	if dynamic != 0 {
		t.Fatalf("dynamic bodies left in space: %d", dynamic)
	}
}
