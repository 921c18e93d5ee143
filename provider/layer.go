package provider

import "context"

// LayerInfo describes one layer found in a provider's tiles, as advertised
// by the tile source itself (for MBTiles, the vector_layers entry of the
// metadata json).
type LayerInfo struct {
	// ID is the layer name as it appears in the tile messages
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	MinZoom     uint   `json:"minzoom"`
	MaxZoom     uint   `json:"maxzoom"`
	// Fields maps attribute names to their declared type
	Fields map[string]string `json:"fields,omitempty"`
}

// Layerer are providers that know which layers their tiles carry.
type Layerer interface {
	Layers(ctx context.Context) ([]LayerInfo, error)
}

// LayerIDs returns the ids of infos, in order.
func LayerIDs(infos []LayerInfo) []string {
	ids := make([]string, len(infos))
	for i := range infos {
		ids[i] = infos[i].ID
	}
	return ids
}
