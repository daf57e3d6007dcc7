package levels

import (
	"errors"
	"testing"
)

func TestLoadEmbeddedLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS("level1")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	spawns := 0
	for _, e := range lvl.Entities {
		if e.Type == "spawn" {
			spawns++
		}
	}
	if spawns == 0 {
		t.Fatalf("level1 has no spawn point")
	}
	if len(List()) == 0 {
		t.Fatalf("List returned nothing")
	}
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"zero_size", `{"width": 0, "height": 3}`},
		{"short_layer", `{"width": 2, "height": 2, "layers": [[1, 1, 1]]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.data)); !errors.Is(err, ErrBadLevel) {
				t.Fatalf("err = %v, want ErrBadLevel", err)
			}
		})
	}
}

func TestEntityProps(t *testing.T) {
	e := Entity{Props: map[string]interface{}{"name": "ledge", "width": 3.0}}
	if e.StringProp("name", "start") != "ledge" || e.StringProp("missing", "start") != "start" {
		t.Fatalf("String props wrong")
	}
	if e.FloatProp("width", 1) != 3 || e.FloatProp("missing", 1) != 1 {
		t.Fatalf("Float props wrong")
	}
}
