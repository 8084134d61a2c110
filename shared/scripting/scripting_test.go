package scripting

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/zone"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type teleportCall struct {
	mapName string
	x, y    float64
}

type fakeTeleporter struct {
	calls []teleportCall
	err   error
}

func (f *fakeTeleporter) TeleportTo(mapName string, x, y float64) error {
	f.calls = append(f.calls, teleportCall{mapName, x, y})
	return f.err
}

func TestRunSetsFlags(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	z := zone.Zone{Name: "rosa", Kind: zone.KindProximity, Script: `
if zone.event == "enter" then
  set_flag("met_" .. zone.name)
end
if get_flag("met_rosa") then
  set_flag("greeted")
end
`}
	if err := e.Run(z, EventLeave); err != nil {
		t.Fatal(err)
	}
	if e.Flag("met_rosa") {
		t.Error("flag set on leave")
	}
	if err := e.Run(z, EventEnter); err != nil {
		t.Fatal(err)
	}
	if got := e.Flags(); len(got) != 2 || got[0] != "greeted" || got[1] != "met_rosa" {
		t.Errorf("Flags = %v", got)
	}
}

func TestClearFlag(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()
	e.SetFlag("rain", true)
	if err := e.Run(zone.Zone{Name: "sky", Script: `set_flag("rain", false)`}, EventEnter); err != nil {
		t.Fatal(err)
	}
	if e.Flag("rain") {
		t.Error("flag not cleared")
	}
}

func TestTeleportBinding(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	z := zone.Zone{Name: "well", Script: `teleport("cellar", 60, 70)`}
	if err := e.Run(z, EventTeleport); err == nil {
		t.Error("teleport without a teleporter should fail")
	}

	tp := &fakeTeleporter{}
	e.SetTeleporter(tp)
	if err := e.Run(z, EventTeleport); err != nil {
		t.Fatal(err)
	}
	if len(tp.calls) != 1 || tp.calls[0] != (teleportCall{"cellar", 60, 70}) {
		t.Errorf("calls = %+v", tp.calls)
	}

	tp.err = errors.New("no such map")
	if err := e.Run(z, EventTeleport); err == nil {
		t.Error("teleporter error not surfaced")
	}
}

func TestLogBinding(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := NewEngine(zap.New(core))
	defer e.Close()

	if err := e.Run(zone.Zone{Name: "sign", Script: `log("welcome to the farm")`}, EventEnter); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("zone script").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["zone"] != "sign" || fields["msg"] != "welcome to the farm" {
		t.Errorf("fields = %v", fields)
	}
}

func TestRunErrors(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()
	e.SetTimeout(20 * time.Millisecond)

	tests := []struct {
		name   string
		script string
	}{
		{"syntax", `set_flag(`},
		{"runtime", `error("boom")`},
		{"bad argument", `set_flag()`},
		{"timeout", `while true do end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.Run(zone.Zone{Name: tt.name, Script: tt.script}, EventEnter); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if err := e.Run(zone.Zone{Name: "plain"}, EventEnter); err != nil {
		t.Errorf("zone without script: %v", err)
	}
}

func TestHooksForwardAfterFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := NewEngine(zap.New(core))
	defer e.Close()

	var saves, enters, leaves int
	h := NewHooks(e, movement.HookFuncs{
		OnSavePrompt: func(zone.Zone) { saves++ },
		OnProximity: func(_ zone.Zone, near bool) {
			if near {
				enters++
			} else {
				leaves++
			}
		},
	})

	h.SavePrompt(zone.Zone{Name: "diary", Kind: zone.KindSave, Script: `error("broken")`})
	if saves != 1 {
		t.Errorf("save prompt not forwarded after script failure")
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d", logs.Len())
	}

	bed := zone.Zone{Name: "bed", Kind: zone.KindProximity, Script: `set_flag("sleepy", zone.event == "enter")`}
	h.Proximity(bed, true)
	if !e.Flag("sleepy") {
		t.Error("enter event not seen by script")
	}
	h.Proximity(bed, false)
	if e.Flag("sleepy") {
		t.Error("leave event not seen by script")
	}
	if enters != 1 || leaves != 1 {
		t.Errorf("enters=%d leaves=%d", enters, leaves)
	}

	// Teleport and exit without scripts still pass through.
	h.Teleport(zone.Zone{Name: "door"})
	h.Exit(zone.Zone{Name: "gate"})
}
