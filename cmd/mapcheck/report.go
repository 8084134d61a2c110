package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/shared/zone"
)

// report writes one summary row per map followed by any findings, and
// returns how many findings are errors. Duplicate regions are warnings only.
func report(w io.Writer, atlas *world.Atlas) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAP\tTILES\tCELL\tREGIONS\tDUPLICATES\tTELEPORT\tEXIT\tSAVE\tPROXIMITY\tSPAWNS")

	var findings []string
	problems := 0
	for _, name := range atlas.Names() {
		m, err := atlas.Map(name)
		if err != nil {
			findings = append(findings, fmt.Sprintf("error   %s: %v", name, err))
			problems++
			continue
		}
		idx, err := atlas.Index(name)
		if err != nil {
			findings = append(findings, fmt.Sprintf("error   %s: %v", name, err))
			problems++
			continue
		}

		kinds := countKinds(m.Zones)
		fmt.Fprintf(tw, "%s\t%dx%d\t%g\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			name, int(m.Width/m.CellSize), int(m.Height/m.CellSize), m.CellSize,
			idx.Len(), len(idx.Duplicates()),
			kinds[zone.KindTeleport], kinds[zone.KindExit], kinds[zone.KindSave], kinds[zone.KindProximity],
			len(m.Spawns))

		for _, d := range idx.Duplicates() {
			findings = append(findings, fmt.Sprintf("warning %s: tile %d,%d has %s",
				name, d.Tile.X, d.Tile.Y, shapeList(d.Shapes)))
		}

		blocked := blockedArrivals(atlas, name)
		findings = append(findings, blocked...)
		problems += len(blocked)
	}
	_ = tw.Flush()

	for _, f := range findings {
		fmt.Fprintln(w, f)
	}
	return problems
}

// blockedArrivals lists spawn points and teleport targets of map name whose
// box would start inside a collision region.
func blockedArrivals(atlas *world.Atlas, name string) []string {
	m, _ := atlas.Map(name)
	var out []string

	check := func(target, what string, x, y float64) {
		idx, err := atlas.Index(target)
		if err != nil {
			out = append(out, fmt.Sprintf("error   %s: %s: %v", name, what, err))
			return
		}
		cfg, err := atlas.Config(target)
		if err != nil {
			out = append(out, fmt.Sprintf("error   %s: %s: %v", name, what, err))
			return
		}
		if idx.Overlaps(x, y, cfg.BoxWidth, cfg.BoxHeight) {
			out = append(out, fmt.Sprintf("error   %s: %s lands blocked at %s (%g,%g)", name, what, target, x, y))
		}
	}

	for _, sp := range m.Spawns {
		check(name, "spawn "+sp.Name, sp.X, sp.Y)
	}
	for _, z := range m.Zones {
		if z.Kind != zone.KindTeleport {
			continue
		}
		target := z.Target.Map
		if target == "" {
			target = name
		}
		check(target, "teleport "+z.Name, z.Target.X, z.Target.Y)
	}
	return out
}

func countKinds(zones []zone.Zone) map[zone.Kind]int {
	counts := make(map[zone.Kind]int)
	for _, z := range zones {
		counts[z.Kind]++
	}
	return counts
}

func shapeList(shapes []collision.Shape) string {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
