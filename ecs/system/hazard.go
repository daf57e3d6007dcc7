package system

import (
	"log"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// HazardSystem turns player/spike overlap into a DeathRequest. It runs after
// physics so it sees this tick's positions.
type HazardSystem struct {
	logger *log.Logger
}

func NewHazardSystem(logger *log.Logger) *HazardSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &HazardSystem{logger: logger}
}

func (h *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var hazards []AABB
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, t *component.Transform) {
		if b, ok := HazardBounds(*hz, *t); ok {
			hazards = append(hazards, b)
		}
	})
	if len(hazards) == 0 {
		return
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform, b *component.PhysicsBody) {
		if ecs.Has(w, e, component.DeathRequestComponent.Kind()) {
			return
		}
		body := centeredAABB(t.X, t.Y, b.Width, b.Height)
		for _, hb := range hazards {
			if !body.Overlaps(hb) {
				continue
			}
			h.logger.Printf("hazard: player %v touched spikes", e)
			if err := ecs.Add(w, e, component.DeathRequestComponent.Kind(), &component.DeathRequest{Cause: "spikes"}); err != nil {
				h.logger.Printf("hazard: mark player %v dead: %v", e, err)
			}
			return
		}
	})
}

// HazardBounds returns the world box of a hazard. Empty hazards never hit.
func HazardBounds(h component.Hazard, t component.Transform) (AABB, bool) {
	if h.Width <= 0 || h.Height <= 0 {
		return AABB{}, false
	}
	return AABB{X: t.X + h.OffsetX, Y: t.Y + h.OffsetY, W: h.Width, H: h.Height}, true
}
