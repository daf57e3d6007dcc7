package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// PhysicsSystem owns the chipmunk space. It creates bodies for new entities,
// pushes gameplay velocity in, steps, and copies positions back out. It also
// answers overlap queries for the sensor.
type PhysicsSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*bodyInfo
	logger *log.Logger
}

type bodyInfo struct {
	body          *cp.Body
	shape         *cp.Shape
	static        bool
	ignoreGravity bool
}

func NewPhysicsSystem(logger *log.Logger) *PhysicsSystem {
	if logger == nil {
		logger = log.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
		logger: logger,
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, v *component.Velocity) {
		info, ok := ps.bodies[e]
		if !ok || info.static {
			return
		}
		info.ignoreGravity = b.IgnoreGravity
		b.Body.SetVelocity(v.X, v.Y)
		b.Body.SetAngle(0)
		b.Body.SetAngularVelocity(0)
	})

	ps.space.Step(w.Timestep())

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Static || b.Body == nil {
			return
		}
		pos := b.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel := b.Body.Velocity()
			v.X = vel.X
			v.Y = vel.Y
		}
	})
}

// Sync removes bodies whose entities are gone and creates bodies for new
// ones. Update calls it; tests and level loading may call it directly so
// static geometry is queryable before the first step.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	ps.cleanup(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.bodies[e]; ok {
			return
		}
		layer := component.CollisionLayer{}
		if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = *l
		}
		info := ps.createBody(*t, b, layer)
		if info == nil {
			ps.logger.Printf("physics: entity %v has an empty collider, skipped", e)
			return
		}
		ps.bodies[e] = info
		b.Body = info.body
		b.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBody(t component.Transform, b *component.PhysicsBody, layer component.CollisionLayer) *bodyInfo {
	if b.Width <= 0 || b.Height <= 0 {
		return nil
	}

	filter := shapeFilter(layer, b.Static)

	if b.Static {
		// static colliders use the transform as their bottom-left corner
		bb := cp.BB{L: t.X, B: t.Y, R: t.X + b.Width, T: t.Y + b.Height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(b.Friction)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	// infinite moment keeps the body upright
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	info := &bodyInfo{body: body}
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if info.ignoreGravity {
			gravity = cp.Vector{}
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
	})

	shape := cp.NewBox(body, b.Width, b.Height, 0)
	shape.SetFriction(b.Friction)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

// BodyCount is the number of entities with a live chipmunk body.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.bodies)
}

func shapeFilter(layer component.CollisionLayer, static bool) cp.ShapeFilter {
	category := layer.Category
	if category == 0 {
		category = component.LayerPlayer
		if static {
			category = component.LayerGround
		}
	}
	mask := uint(cp.ALL_CATEGORIES)
	if layer.Mask != 0 {
		mask = uint(layer.Mask)
	}
	return cp.NewShapeFilter(cp.NO_GROUP, uint(category), mask)
}

func queryFilter(mask uint32) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(cp.ALL_CATEGORIES), uint(mask))
}

// OverlapCircle reports whether any shape in mask lies within radius of the
// point.
func (ps *PhysicsSystem) OverlapCircle(x, y, radius float64, mask uint32) bool {
	info := ps.space.PointQueryNearest(cp.Vector{X: x, Y: y}, radius, queryFilter(mask))
	return info != nil && info.Shape != nil
}

// OverlapBox reports whether any shape in mask intersects the box.
func (ps *PhysicsSystem) OverlapBox(box AABB, mask uint32) bool {
	hit := false
	bb := cp.BB{L: box.X, B: box.Y, R: box.MaxX(), T: box.MaxY()}
	ps.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		hit = true
	}, nil)
	return hit
}
