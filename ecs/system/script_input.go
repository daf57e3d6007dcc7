package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs/component"
	"github.com/milk9111/spikerun/prefabs"
)

// ScriptSource drives the player from a tengo script. The script sees the
// globals tick and elapsed (seconds) and sets move, jump and dash. It is rerun
// from the top every tick, so it keeps no state of its own. dash is treated
// like a held button: only the tick it turns true counts as a press.
type ScriptSource struct {
	path     string
	compiled *tengo.Compiled
	dashHeld bool
}

// NewScriptSource loads and compiles a script from disk or from the
// embedded scripts directory.
func NewScriptSource(path string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script input: load %s: %w", path, err)
	}
	s, err := CompileScriptSource(path, src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CompileScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("elapsed", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script input: compile %s: %w", name, err)
	}
	return &ScriptSource{path: name, compiled: compiled}, nil
}

// Path is the script the source was loaded from.
func (s *ScriptSource) Path() string {
	return s.path
}

func (s *ScriptSource) Poll(tick uint64) (component.Input, error) {
	if err := s.compiled.Set("tick", int64(tick)); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("elapsed", float64(tick)*common.Timestep); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.Input{}, fmt.Errorf("script input: run %s: %w", s.path, err)
	}

	var in component.Input
	if s.compiled.IsDefined("move") {
		in.MoveX = s.compiled.Get("move").Float()
	}
	if s.compiled.IsDefined("jump") {
		in.Jump = s.compiled.Get("jump").Bool()
	}
	dash := s.compiled.IsDefined("dash") && s.compiled.Get("dash").Bool()
	in.DashPressed = dash && !s.dashHeld
	s.dashHeld = dash
	return in, nil
}
