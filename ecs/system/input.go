package system

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

// InputSource produces one tick of player input.
type InputSource interface {
	Poll(tick uint64) (component.Input, error)
}

// InputSystem copies the source's sample into every Input component.
type InputSystem struct {
	source InputSource
	logger *log.Logger
	failed bool
}

func NewInputSystem(source InputSource, logger *log.Logger) *InputSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &InputSystem{source: source, logger: logger}
}

// SetSource swaps the input source, e.g. after a script reload.
func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
	i.failed = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var sample component.Input
	if i.source == nil {
		if !i.failed {
			i.logger.Printf("input: no source: %v", ErrCollaboratorMissing)
			i.failed = true
		}
	} else {
		in, err := i.source.Poll(w.Tick())
		switch {
		case err != nil && !i.failed:
			i.logger.Printf("input: poll: %v", err)
			i.failed = true
		case err == nil:
			sample = in
			i.failed = false
		}
	}
	sample.MoveX = clampAxis(sample.MoveX)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
	})
}

// KeyboardSource reads the keyboard and the first standard gamepad.
type KeyboardSource struct{}

func (KeyboardSource) Poll(uint64) (component.Input, error) {
	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	dash := inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyK)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		dash = dash || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	return component.Input{MoveX: moveX, Jump: jump, DashPressed: dash}, nil
}
