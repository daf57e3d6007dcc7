package entity

import (
	"fmt"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
	"github.com/milk9111/spikerun/prefabs"
)

// BuildCamera creates the camera entity at x, y. Smoothness falls back to 5.
func BuildCamera(w *ecs.World, spec *prefabs.CameraSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return ecs.NoEntity, ErrNilSpec
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return ecs.NoEntity, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return ecs.NoEntity, fmt.Errorf("camera: add transform: %w", err)
	}
	cam := CameraFromSpec(spec)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &cam); err != nil {
		return ecs.NoEntity, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

func CameraFromSpec(spec *prefabs.CameraSpec) component.Camera {
	smooth := spec.Smoothness
	if smooth <= 0 {
		smooth = 5
	}
	return component.Camera{
		OffsetX:    spec.Offset.X,
		OffsetY:    spec.Offset.Y,
		Smoothness: smooth,
		Depth:      spec.Depth,
		Z:          spec.Depth,
	}
}

// ApplyCameraSpec swaps offset, smoothing and depth on a live camera.
func ApplyCameraSpec(w *ecs.World, e ecs.Entity, spec *prefabs.CameraSpec) error {
	if spec == nil {
		return ErrNilSpec
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return fmt.Errorf("camera: %w", component.ErrEntityNotAlive)
	}
	*cam = CameraFromSpec(spec)
	return nil
}
