package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/entity"
	"github.com/milk9111/spikerun/ecs/system"
	"github.com/milk9111/spikerun/levels"
	"github.com/milk9111/spikerun/prefabs"
)

var errQuit = errors.New("quit")

var clearColor = color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}

type Config struct {
	Level  string
	Debug  bool
	Script string
	Watch  bool
	Spawn  string
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	input     *system.InputSystem
	spawn     *system.SpawnCoordinator
	camera    *system.CameraSystem
	cameraEnt ecs.Entity
	watcher   *prefabs.Watcher
	script    string

	ui     *ebitenui.UI
	paused bool
	quit   bool
}

func NewGame(cfg Config) (*Game, error) {
	logger := log.Default()

	levelName := cfg.Level
	if levelName == "" {
		levelName = "level1"
	}
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelName, err)
	}

	// A broken player prefab is not fatal: the coordinator reports the
	// missing configuration and the level still runs.
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		logger.Printf("game: %v", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		logger.Printf("game: %v", err)
		cameraSpec = &prefabs.CameraSpec{}
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevel(w, lvl); err != nil {
		return nil, err
	}
	camEnt, err := entity.BuildCamera(w, cameraSpec, float64(lvl.Width)/2, float64(lvl.Height)/2)
	if err != nil {
		return nil, err
	}

	var source system.InputSource = system.KeyboardSource{}
	if cfg.Script != "" {
		s, err := system.NewScriptSource(cfg.Script)
		if err != nil {
			return nil, err
		}
		source = s
	}

	physics := system.NewPhysicsSystem(logger)
	camera := system.NewCameraSystem(logger)
	spawn := system.NewSpawnCoordinator(playerSpec, entity.BuildPlayer, camera, logger)
	spawn.SpawnName = cfg.Spawn
	input := system.NewInputSystem(source, logger)

	g := &Game{
		world:     w,
		render:    system.NewRenderSystem(cfg.Debug),
		input:     input,
		spawn:     spawn,
		camera:    camera,
		cameraEnt: camEnt,
		script:    cfg.Script,
	}

	g.scheduler = ecs.NewScheduler()
	if cfg.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Printf("game: prefab watch disabled: %v", err)
		} else {
			g.watcher = watcher
			reload := system.NewReloadSystem(watcher, logger)
			g.registerReloads(reload)
			g.scheduler.Add(reload)
		}
	}

	for _, s := range []ecs.System{
		input,
		system.NewSensorSystem(physics, logger),
		system.NewMotionSystem(logger),
		system.NewAnimationSystem(),
		physics,
		system.NewHazardSystem(logger),
		spawn,
		camera,
	} {
		g.scheduler.Add(s)
	}

	// static ground must be queryable before the first sensor pass
	physics.Sync(w)

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) registerReloads(r *system.ReloadSystem) {
	r.Handle(prefabs.PlayerFile, func(w *ecs.World, _ string) error {
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		g.spawn.SetPrefab(spec)
		if e := g.spawn.Current(); ecs.IsAlive(w, e) {
			return entity.ApplyPlayerSpec(w, e, spec)
		}
		return nil
	})
	r.Handle(prefabs.CameraFile, func(w *ecs.World, _ string) error {
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		return entity.ApplyCameraSpec(w, g.cameraEnt, spec)
	})
	if g.script == "" {
		return
	}
	r.Handle(filepath.Base(g.script), func(w *ecs.World, _ string) error {
		s, err := system.NewScriptSource(g.script)
		if err != nil {
			return err
		}
		g.input.SetSource(s)
		return nil
	})
}

// Respawn kills the current player through the normal death path.
func (g *Game) Respawn() {
	if err := g.spawn.Death(g.world); err != nil {
		log.Printf("game: respawn: %v", err)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = !g.render.Debug
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	g.render.Draw(g.world, screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
