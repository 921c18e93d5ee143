package mvt

import (
	"strings"

	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
)

// LayerFilter is an explicit allow-list of layer names. Matching is exact.
// An empty filter allows nothing.
type LayerFilter []string

// ParseLayerFilter splits a comma separated list of layer names. Blank
// entries are dropped.
func ParseLayerFilter(s string) LayerFilter {
	var f LayerFilter
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			f = append(f, name)
		}
	}
	return f
}

// AllLayers returns a filter naming every layer of msg, in tile order.
func AllLayers(msg *vectorTile.Tile) LayerFilter {
	var f LayerFilter
	for _, l := range msg.GetLayers() {
		f = append(f, l.GetName())
	}
	return f
}

// Allows reports whether name is on the allow-list.
func (f LayerFilter) Allows(name string) bool {
	for _, n := range f {
		if n == name {
			return true
		}
	}
	return false
}

// Filter returns the layers whose name is allowed, keeping their order.
// The layers themselves are not copied or modified.
func (f LayerFilter) Filter(layers []*vectorTile.Tile_Layer) []*vectorTile.Tile_Layer {
	kept := make([]*vectorTile.Tile_Layer, 0, len(f))
	for _, l := range layers {
		if l != nil && f.Allows(l.GetName()) {
			kept = append(kept, l)
		}
	}
	return kept
}
