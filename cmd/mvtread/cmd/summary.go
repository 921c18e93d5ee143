package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/atlasdatatech/mvtread/mvt"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	warned = color.New(color.FgYellow).SprintFunc()
)

// writeSummary prints one block per layer: the feature count per geometry
// type, the attribute keys and the diagnostics raised in the layer.
func writeSummary(w io.Writer, t *mvt.Tile) error {
	diags := make(map[string][]mvt.Diagnostic)
	for _, d := range t.Diagnostics {
		diags[d.Layer] = append(diags[d.Layer], d)
	}

	for _, l := range t.Layers {
		if _, err := fmt.Fprintf(w, "%v %v\n", bold(l.Name), faint(fmt.Sprintf("(version %v, extent %v)", l.Version, l.Extent))); err != nil {
			return err
		}

		counts := make(map[mvt.GeomType]int)
		keys := make(map[string]bool)
		for _, f := range l.Features {
			counts[f.Type]++
			for k := range f.Attributes {
				keys[k] = true
			}
		}
		for _, gt := range []mvt.GeomType{mvt.GeomPoint, mvt.GeomLineString, mvt.GeomPolygon, mvt.GeomUnknown} {
			if counts[gt] > 0 {
				fmt.Fprintf(w, "  %-10v %v\n", gt, counts[gt])
			}
		}

		if len(keys) > 0 {
			sorted := make([]string, 0, len(keys))
			for k := range keys {
				sorted = append(sorted, k)
			}
			sort.Strings(sorted)
			fmt.Fprintf(w, "  keys       %v\n", sorted)
		}

		for _, d := range diags[l.Name] {
			fmt.Fprintf(w, "  %v\n", warned(d.String()))
		}
	}

	if len(t.Diagnostics) == 0 {
		_, err := fmt.Fprintln(w, color.GreenString("no diagnostics"))
		return err
	}
	_, err := fmt.Fprintln(w, color.YellowString("%v diagnostics", len(t.Diagnostics)))
	return err
}
