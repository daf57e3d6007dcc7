package system

import (
	"errors"
	"testing"

	"github.com/milk9111/spikerun/ecs"
	"github.com/milk9111/spikerun/ecs/component"
)

type fixedSource struct {
	in  component.Input
	err error
}

func (f fixedSource) Poll(uint64) (component.Input, error) {
	return f.in, f.err
}

func TestInputSystemCopiesSample(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	_ = ecs.Add(w, a, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, b, component.InputComponent.Kind(), &component.Input{})

	NewInputSystem(fixedSource{in: component.Input{MoveX: 4, Jump: true}}, quietLogger()).Update(w)

	for _, e := range []ecs.Entity{a, b} {
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in.MoveX != 1 || !in.Jump {
			t.Fatalf("entity %v input = %+v, want clamped axis and jump", e, *in)
		}
	}
}

func TestInputSystemZeroesOnError(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, Jump: true})

	NewInputSystem(fixedSource{err: errors.New("boom")}, quietLogger()).Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if *in != (component.Input{}) {
		t.Fatalf("input = %+v, want zero after a failed poll", *in)
	}
}

func TestScriptSource(t *testing.T) {
	src := []byte(`
move := tick < 3 ? -1 : 0.5
jump := elapsed > 0.04
dash := tick == 4
`)
	s, err := CompileScriptSource("inline", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		tick uint64
		want component.Input
	}{
		{0, component.Input{MoveX: -1}},
		{3, component.Input{MoveX: 0.5, Jump: true}},
		{4, component.Input{MoveX: 0.5, Jump: true, DashPressed: true}},
	}
	for _, c := range cases {
		got, err := s.Poll(c.tick)
		if err != nil {
			t.Fatalf("tick %d: %v", c.tick, err)
		}
		if got != c.want {
			t.Fatalf("tick %d: input = %+v, want %+v", c.tick, got, c.want)
		}
	}
}

func TestScriptSourceCompileError(t *testing.T) {
	if _, err := CompileScriptSource("broken", []byte("move := ")); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestEmbeddedDemoScript(t *testing.T) {
	s, err := NewScriptSource("demo.tengo")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	in, err := s.Poll(90)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if in.MoveX != 1 || !in.DashPressed {
		t.Fatalf("tick 90 input = %+v, want running dash", in)
	}
}

func TestScriptDashIsEdgeTriggered(t *testing.T) {
	s, err := CompileScriptSource("held", []byte("dash := tick >= 2 && tick != 5"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	want := map[uint64]bool{2: true, 6: true}
	for tick := uint64(0); tick < 10; tick++ {
		in, err := s.Poll(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if in.DashPressed != want[tick] {
			t.Fatalf("tick %d: dash pressed = %v, want %v", tick, in.DashPressed, want[tick])
		}
	}
}
