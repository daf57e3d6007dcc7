package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var (
	probeGroundColor = color.NRGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}
	probeWallColor   = color.NRGBA{R: 0xff, G: 0xc0, B: 0x20, A: 0xff}
	probeHitColor    = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
	hudColor         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RenderSystem draws sprites as flat rectangles through the camera. It is
// not part of the scheduler; the game calls Draw once per frame.
type RenderSystem struct {
	// Debug adds the sensor probes and a state readout.
	Debug bool

	camera ecs.Entity
	face   ebtext.Face
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug, face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

// View maps world units to screen pixels around a camera center.
type View struct {
	CamX, CamY    float64
	Width, Height float64
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	sx := (x-v.CamX)*common.PixelsPerUnit + v.Width/2
	sy := v.Height/2 - (y-v.CamY)*common.PixelsPerUnit
	return sx, sy
}

// Rect converts a bottom-left world box to a top-left screen rect.
func (v View) Rect(b AABB) (x, y, w, h float64) {
	x, y = v.ToScreen(b.X, b.MaxY())
	return x, y, b.W * common.PixelsPerUnit, b.H * common.PixelsPerUnit
}

func (r *RenderSystem) view(w *ecs.World, screen *ebiten.Image) View {
	bounds := screen.Bounds()
	v := View{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	if !ecs.IsAlive(w, r.camera) {
		if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camera = e
		}
	}
	if t, ok := ecs.Get(w, r.camera, component.TransformComponent.Kind()); ok {
		v.CamX, v.CamY = t.X, t.Y
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	v := r.view(w, screen)

	type drawable struct {
		e      ecs.Entity
		layer  int
		box    AABB
		sprite *component.Sprite
	}
	var items []drawable
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		box := centeredAABB(t.X, t.Y, s.Width, s.Height)
		if s.BottomLeft {
			box = AABB{X: t.X, Y: t.Y, W: s.Width, H: s.Height}
		}
		items = append(items, drawable{e: e, layer: s.Layer, box: box, sprite: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		col := it.sprite.Color
		if anim, ok := ecs.Get(w, it.e, component.AnimationComponent.Kind()); ok {
			if def, ok := anim.Defs[anim.Label]; ok && def.Color.A > 0 {
				col = def.Color
			}
		}
		x, y, bw, bh := v.Rect(it.box)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(bw), float32(bh), col, false)
		if ecs.Has(w, it.e, component.MotionComponent.Kind()) {
			r.drawFacing(screen, v, it.box, it.sprite.FacingLeft)
		}
	}

	if r.Debug {
		r.drawProbes(w, screen, v)
		r.drawHUD(w, screen)
	}
}

// drawFacing marks the leading side of the body.
func (r *RenderSystem) drawFacing(screen *ebiten.Image, v View, box AABB, left bool) {
	eye := AABB{X: box.MaxX() - box.W*0.3, Y: box.Y + box.H*0.65, W: box.W * 0.2, H: box.H * 0.12}
	if left {
		eye.X = box.X + box.W*0.1
	}
	x, y, w, h := v.Rect(eye)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.Black, false)
}

func (r *RenderSystem) drawProbes(w *ecs.World, screen *ebiten.Image, v View) {
	ecs.ForEach2(w, component.GroundWallProbeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.GroundWallProbe, t *component.Transform) {
		contact := component.Contact{}
		if c, ok := ecs.Get(w, e, component.ContactComponent.Kind()); ok {
			contact = *c
		}

		gx, gy := v.ToScreen(t.X+p.GroundOffsetX, t.Y+p.GroundOffsetY)
		gcol := probeGroundColor
		if contact.Grounded {
			gcol = probeHitColor
		}
		vector.StrokeCircle(screen, float32(gx), float32(gy), float32(p.GroundRadius*common.PixelsPerUnit), 1, gcol, true)

		wcol := probeWallColor
		if contact.TouchingWall {
			wcol = probeHitColor
		}
		for _, dir := range []float64{-1, 1} {
			x, y, bw, bh := v.Rect(WallCastBounds(*t, *p, dir))
			vector.StrokeRect(screen, float32(x), float32(y), float32(bw), float32(bh), 1, wcol, false)
		}
	})

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		if b, ok := HazardBounds(*h, *t); ok {
			x, y, bw, bh := v.Rect(b)
			vector.StrokeRect(screen, float32(x), float32(y), float32(bw), float32(bh), 1, probeHitColor, false)
		}
	})
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	lines := []string{fmt.Sprintf("tick %d  t=%.2fs  tps %.0f", w.Tick(), w.Time(), ebiten.ActualTPS())}
	ecs.ForEach2(w, component.MotionComponent.Kind(), component.ContactComponent.Kind(), func(e ecs.Entity, m *component.Motion, c *component.Contact) {
		label := "-"
		if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			label = a.Label.String()
		}
		lines = append(lines,
			fmt.Sprintf("player %v  state %s  anim %s", e, m.State, label),
			fmt.Sprintf("grounded %t  wall %t  dash cd %.2f", c.Grounded, c.TouchingWall, m.Dash.CooldownRemaining),
		)
	})

	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*16))
		op.ColorScale.ScaleWithColor(hudColor)
		ebtext.Draw(screen, line, r.face, op)
	}
}
