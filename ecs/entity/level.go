package entity

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
	"github.com/milk9111/spikerun/levels"
	"github.com/milk9111/spikerun/prefabs"
)

const (
	spikeHeight = 0.5
	// spawnLift puts the player's center this far above the tile floor.
	spawnLift = 0.8
)

var (
	groundColor = color.NRGBA{R: 0x3c, G: 0x46, B: 0x58, A: 0xff}
	spikeColor  = color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
)

// LoadLevel creates ground, spikes and spawn points. One tile is one world
// unit; tile row 0 is the top of the map, world y points up.
func LoadLevel(w *ecs.World, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("level: %w", ErrNilSpec)
	}

	for layerIdx, layer := range lvl.Layers {
		meta := levels.LayerMeta{}
		if layerIdx < len(lvl.LayerMeta) {
			meta = lvl.LayerMeta[layerIdx]
		}
		col := groundColor
		if meta.Color != "" {
			c, err := prefabs.ParseColor(meta.Color)
			if err != nil {
				return fmt.Errorf("level: layer %d: %w", layerIdx, err)
			}
			col = c
		}
		for _, r := range MergeTiles(layer, lvl.Width, lvl.Height) {
			if err := addGround(w, r, lvl.Height, col, layerIdx, meta.Physics); err != nil {
				return fmt.Errorf("level: layer %d: %w", layerIdx, err)
			}
		}
	}

	for _, ent := range lvl.Entities {
		x := float64(ent.X)
		y := float64(lvl.Height - 1 - ent.Y)
		switch strings.ToLower(ent.Type) {
		case "spawn":
			sp := component.SpawnPoint{
				Name:     ent.StringProp("name", "start"),
				X:        x + 0.5,
				Y:        y + spawnLift,
				Rotation: ent.FloatProp("rotation", 0),
			}
			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.SpawnPointComponent.Kind(), &sp); err != nil {
				return fmt.Errorf("level: add spawn point: %w", err)
			}
		case "spike":
			if _, err := NewSpike(w, x, y, ent.FloatProp("width", 1)); err != nil {
				return err
			}
		default:
			log.Printf("level: unknown entity type %q at %d,%d", ent.Type, ent.X, ent.Y)
		}
	}

	return nil
}

// NewSpike creates a row of spikes whose bottom-left corner is at x, y.
func NewSpike(w *ecs.World, x, y, width float64) (ecs.Entity, error) {
	if width <= 0 {
		width = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return ecs.NoEntity, fmt.Errorf("spike: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Width: width, Height: spikeHeight}); err != nil {
		return ecs.NoEntity, fmt.Errorf("spike: add hazard: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      width,
		Height:     spikeHeight,
		Color:      spikeColor,
		BottomLeft: true,
		Layer:      5,
	}); err != nil {
		return ecs.NoEntity, fmt.Errorf("spike: add sprite: %w", err)
	}
	return e, nil
}

// TileRect is a merged block of solid tiles in tile coordinates.
type TileRect struct {
	X, Y, W, H int
}

// MergeTiles greedily merges solid tiles into rectangles: widest run first,
// then as many full rows below it as fit.
func MergeTiles(layer []int, width, height int) []TileRect {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	solid := func(x, y int) bool {
		idx := index(x, y)
		return idx < len(layer) && !visited[idx] && layer[idx] > 0
	}

	var rects []TileRect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && solid(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !solid(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			rects = append(rects, TileRect{X: x, Y: y, W: maxW, H: maxH})
		}
	}
	return rects
}

func addGround(w *ecs.World, r TileRect, levelHeight int, col color.NRGBA, layer int, physics bool) error {
	// the rect's bottom row in world space
	bottom := float64(levelHeight - (r.Y + r.H))
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      float64(r.X),
		Y:      bottom,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      float64(r.W),
		Height:     float64(r.H),
		Color:      col,
		BottomLeft: true,
		Layer:      layer,
	}); err != nil {
		return err
	}
	if !physics {
		return nil
	}
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    float64(r.W),
		Height:   float64(r.H),
		Friction: 0,
		Static:   true,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerGround})
}
