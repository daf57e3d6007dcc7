package system

import (
	"log"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// OverlapQuerier answers shape overlap queries against collision layers.
// PhysicsSystem implements it on top of the chipmunk space.
type OverlapQuerier interface {
	OverlapCircle(x, y, radius float64, mask uint32) bool
	OverlapBox(box AABB, mask uint32) bool
}

// SensorSystem classifies ground and wall contact for every entity with a
// probe. It must run before MotionSystem.
type SensorSystem struct {
	query OverlapQuerier
	diag  diagnostics
}

func NewSensorSystem(query OverlapQuerier, logger *log.Logger) *SensorSystem {
	return &SensorSystem{query: query, diag: newDiagnostics(logger)}
}

func (s *SensorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.GroundWallProbeComponent.Kind(), func(e ecs.Entity, t *component.Transform, probe *component.GroundWallProbe) {
		contact := component.Contact{}
		switch {
		case s.query == nil:
			s.diag.once(ecs.NoEntity, "query", "sensor: no physics world to query: %v", ErrCollaboratorMissing)
		case !probe.Configured():
			s.diag.once(e, "probe", "sensor: entity %v probe geometry unset: %v", e, ErrConfigurationMissing)
		default:
			contact = SenseContact(s.query, *t, *probe)
		}
		if c, ok := ecs.Get(w, e, component.ContactComponent.Kind()); ok {
			*c = contact
			return
		}
		_ = ecs.Add(w, e, component.ContactComponent.Kind(), &contact)
	})
}

// SenseContact runs the ground circle and both wall casts for one entity.
func SenseContact(q OverlapQuerier, t component.Transform, p component.GroundWallProbe) component.Contact {
	gx := t.X + p.GroundOffsetX
	gy := t.Y + p.GroundOffsetY
	return component.Contact{
		Grounded:     q.OverlapCircle(gx, gy, p.GroundRadius, p.Layer),
		TouchingWall: q.OverlapBox(WallCastBounds(t, p, 1), p.Layer) || q.OverlapBox(WallCastBounds(t, p, -1), p.Layer),
	}
}

// WallCastBounds is the region swept by the wall box cast toward dir (+1
// right, -1 left): the probe box moved from its origin out to WallDistance.
func WallCastBounds(t component.Transform, p component.GroundWallProbe, dir float64) AABB {
	ox := t.X + p.WallOffsetX
	oy := t.Y + p.WallOffsetY
	halfW := p.WallWidth / 2
	minX, maxX := ox-halfW, ox+halfW+p.WallDistance
	if dir < 0 {
		minX, maxX = ox-halfW-p.WallDistance, ox+halfW
	}
	return AABB{X: minX, Y: oy - p.WallHeight/2, W: maxX - minX, H: p.WallHeight}
}
