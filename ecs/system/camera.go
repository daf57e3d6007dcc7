package system

import (
	"fmt"
	"log"

	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// CameraTargeter is what the spawn coordinator needs from the camera.
type CameraTargeter interface {
	SetTarget(w *ecs.World, e ecs.Entity) error
}

// CameraSystem eases the camera toward its target plus offset. It runs last
// so it follows the position physics just produced.
type CameraSystem struct {
	camera ecs.Entity
	target ecs.Entity
	logger *log.Logger
	warned bool
}

func NewCameraSystem(logger *log.Logger) *CameraSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &CameraSystem{logger: logger}
}

// SetTarget makes the camera follow e. An entity that is dead or has no
// transform is rejected and the previous target is kept.
func (cs *CameraSystem) SetTarget(w *ecs.World, e ecs.Entity) error {
	if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.TransformComponent.Kind()) {
		err := fmt.Errorf("camera: set target %v: %w", e, ErrCollaboratorMissing)
		cs.logger.Print(err)
		return err
	}
	cs.target = e
	cs.warned = false
	cs.logger.Printf("camera: now following %v", e)
	return nil
}

func (cs *CameraSystem) Target() ecs.Entity {
	return cs.target
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !ecs.IsAlive(w, cs.camera) {
		e, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camera = e
	}
	cam, ok := ecs.Get(w, cs.camera, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camera, component.TransformComponent.Kind())
	if !ok {
		return
	}

	target, ok := ecs.Get(w, cs.target, component.TransformComponent.Kind())
	if !ok || !ecs.IsAlive(w, cs.target) {
		if !cs.warned {
			cs.logger.Printf("camera: target missing, holding position")
			cs.warned = true
		}
		cam.Z = cam.Depth
		return
	}

	FollowTarget(camTransform, cam, *target, w.Timestep())
}

// FollowTarget moves the camera one step toward target+offset. A step of
// Smoothness*dt >= 1 snaps.
func FollowTarget(pos *component.Transform, cam *component.Camera, target component.Transform, dt float64) {
	t := cam.Smoothness * dt
	pos.X = common.Lerp(pos.X, target.X+cam.OffsetX, t)
	pos.Y = common.Lerp(pos.Y, target.Y+cam.OffsetY, t)
	cam.Z = cam.Depth
}
