package system

import (
	"fmt"
	"log"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
	"github.com/milk9111/spikerun/prefabs"
)

// PlayerBuilder instantiates the player prefab at a spawn point.
type PlayerBuilder func(w *ecs.World, spec *prefabs.PlayerSpec, at component.SpawnPoint) (ecs.Entity, error)

// SpawnCoordinator owns the single player instance. It spawns the player
// when none exists, and on death destroys it and builds a fresh one at the
// spawn point before retargeting the camera.
type SpawnCoordinator struct {
	// SpawnName selects the spawn point used by Start and Death. Empty
	// means the first spawn point in the level.
	SpawnName string

	prefab *prefabs.PlayerSpec
	build  PlayerBuilder
	camera CameraTargeter
	logger *log.Logger

	points  map[string]component.SpawnPoint
	order   []string
	current ecs.Entity
	started bool
}

func NewSpawnCoordinator(prefab *prefabs.PlayerSpec, build PlayerBuilder, camera CameraTargeter, logger *log.Logger) *SpawnCoordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &SpawnCoordinator{prefab: prefab, build: build, camera: camera, logger: logger}
}

// SetPrefab replaces the prefab used by later spawns.
func (s *SpawnCoordinator) SetPrefab(spec *prefabs.PlayerSpec) {
	s.prefab = spec
}

func (s *SpawnCoordinator) Prefab() *prefabs.PlayerSpec {
	return s.prefab
}

// Current is the live player, or NoEntity.
func (s *SpawnCoordinator) Current() ecs.Entity {
	return s.current
}

func (s *SpawnCoordinator) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !s.started {
		s.started = true
		_ = s.Start(w)
	}

	var died bool
	ecs.ForEach(w, component.DeathRequestComponent.Kind(), func(e ecs.Entity, req *component.DeathRequest) {
		if e != s.current {
			s.logger.Printf("spawn: dropping stray entity %v (%s)", e, req.Cause)
			ecs.DestroyEntity(w, e)
			return
		}
		s.logger.Printf("spawn: player %v died (%s)", e, req.Cause)
		died = true
	})
	if died {
		_ = s.Death(w)
	}
}

// Start spawns the player if there is none yet.
func (s *SpawnCoordinator) Start(w *ecs.World) error {
	if ecs.IsAlive(w, s.current) {
		return nil
	}
	s.logger.Printf("spawn: no player found, spawning")
	return s.Spawn(w, s.SpawnName)
}

// Death destroys the current player and spawns a replacement. The old
// player is gone even when the replacement cannot be built.
func (s *SpawnCoordinator) Death(w *ecs.World) error {
	if ecs.DestroyEntity(w, s.current) {
		s.logger.Printf("spawn: destroyed player %v", s.current)
	}
	s.current = ecs.NoEntity
	return s.Spawn(w, s.SpawnName)
}

// Spawn builds the player at the named spawn point. Any existing player is
// destroyed first, so at most one ever exists.
func (s *SpawnCoordinator) Spawn(w *ecs.World, name string) error {
	if w == nil {
		return fmt.Errorf("spawn: %w", ErrCollaboratorMissing)
	}

	at, err := s.lookup(w, name)
	if err != nil {
		s.logger.Print(err)
		return err
	}
	if s.prefab == nil || s.build == nil {
		err := fmt.Errorf("spawn: player prefab: %w", ErrConfigurationMissing)
		s.logger.Print(err)
		return err
	}

	ecs.ForEach(w, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
		ecs.DestroyEntity(w, e)
	})
	s.current = ecs.NoEntity

	e, err := s.build(w, s.prefab, at)
	if err != nil {
		err = fmt.Errorf("spawn: build player: %w", err)
		s.logger.Print(err)
		return err
	}
	s.current = e
	s.logger.Printf("spawn: player %v at %q (%.2f, %.2f)", e, at.Name, at.X, at.Y)

	if s.camera == nil {
		s.logger.Printf("spawn: no camera to retarget: %v", ErrCollaboratorMissing)
		return nil
	}
	if err := s.camera.SetTarget(w, e); err != nil {
		s.logger.Printf("spawn: retarget camera: %v", err)
	}
	return nil
}

// lookup finds a spawn point by name. Points are read from the world the
// first time any are found and never reread.
func (s *SpawnCoordinator) lookup(w *ecs.World, name string) (component.SpawnPoint, error) {
	if len(s.points) == 0 {
		s.points = make(map[string]component.SpawnPoint)
		s.order = s.order[:0]
		ecs.ForEach(w, component.SpawnPointComponent.Kind(), func(e ecs.Entity, sp *component.SpawnPoint) {
			if _, dup := s.points[sp.Name]; dup {
				s.logger.Printf("spawn: duplicate spawn point %q ignored", sp.Name)
				return
			}
			s.points[sp.Name] = *sp
			s.order = append(s.order, sp.Name)
		})
	}
	if len(s.order) == 0 {
		return component.SpawnPoint{}, fmt.Errorf("spawn: no spawn point: %w", ErrConfigurationMissing)
	}
	if name == "" {
		return s.points[s.order[0]], nil
	}
	at, ok := s.points[name]
	if !ok {
		return component.SpawnPoint{}, fmt.Errorf("spawn: unknown spawn point %q: %w", name, ErrConfigurationMissing)
	}
	return at, nil
}
