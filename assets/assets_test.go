package assets

import (
	"testing"

	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/shared/zone"
)

var testDefaults = world.Defaults{Speed: 2, BoxWidth: 13, BoxHeight: 13}

func TestEmbeddedMapsLoad(t *testing.T) {
	atlas, err := LoadAtlas("", testDefaults, nil)
	if err != nil {
		t.Fatal(err)
	}
	names := atlas.Names()
	want := []string{"cellar", "farm", "house"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names = %v, want %v", names, want)
		}
	}

	for _, name := range names {
		idx, err := atlas.Index(name)
		if err != nil {
			t.Fatal(err)
		}
		if d := idx.Duplicates(); len(d) > 0 {
			t.Errorf("%s has duplicate regions: %v", name, d)
		}
	}
}

// Every spawn point must be a legal resting place.
func TestSpawnsAreFree(t *testing.T) {
	atlas, err := LoadAtlas("", testDefaults, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range atlas.Names() {
		m, _ := atlas.Map(name)
		idx, _ := atlas.Index(name)
		for _, sp := range m.Spawns {
			if idx.Overlaps(sp.X, sp.Y, testDefaults.BoxWidth, testDefaults.BoxHeight) {
				t.Errorf("%s spawn %s at (%v,%v) is blocked", name, sp.Name, sp.X, sp.Y)
			}
		}
		for _, z := range m.Zones {
			if z.Kind != zone.KindTeleport {
				continue
			}
			target := name
			if z.Target.Map != "" {
				target = z.Target.Map
			}
			tidx, _ := atlas.Index(target)
			if tidx.Overlaps(z.Target.X, z.Target.Y, testDefaults.BoxWidth, testDefaults.BoxHeight) {
				t.Errorf("%s teleport %s lands inside a region", name, z.Name)
			}
		}
	}
}

// Walk from the farm into the house and straight back out.
func TestHouseRoundTrip(t *testing.T) {
	atlas, err := LoadAtlas("", world.Defaults{Speed: 5, BoxWidth: 13, BoxHeight: 13}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tr := world.NewTraveler(atlas)
	if err := tr.Enter("farm", "house"); err != nil {
		t.Fatal(err)
	}

	tr.Engine().Press(movement.Up)
	for i := 0; i < 30 && tr.MapName() == "farm"; i++ {
		tr.Tick()
	}
	if tr.MapName() != "house" {
		t.Fatalf("still on %s at %v", tr.MapName(), tr.Engine().Position())
	}

	tr.Engine().ReleaseAll()
	tr.Engine().Press(movement.Down)
	for i := 0; i < 30 && tr.MapName() == "house"; i++ {
		tr.Tick()
	}
	if tr.MapName() != "farm" {
		t.Fatalf("still on %s at %v", tr.MapName(), tr.Engine().Position())
	}
}
