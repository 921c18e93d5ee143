package atlas

import (
	"context"

	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/mvt"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/render"
)

// Map binds a tile provider to the layers decoded from its tiles.
type Map struct {
	Name string
	// ProviderName is the configured name of Provider
	ProviderName string
	Provider     provider.Tiler
	// Layers is the allow-list of layers to decode
	Layers            mvt.LayerFilter
	KeepInteriorRings bool
	Workers           int
	MaxTileSize       int64
	Where             *Where
	// Palette colors the layers of SVG previews
	Palette render.Palette
}

// NewMap returns a map decoding layers out of p's tiles.
func NewMap(name string, p provider.Tiler, layers ...string) Map {
	return Map{
		Name:     name,
		Provider: p,
		Layers:   mvt.LayerFilter(layers),
	}
}

func (m Map) decoder(layers mvt.LayerFilter) mvt.Decoder {
	return mvt.Decoder{
		Layers:            layers,
		KeepInteriorRings: m.KeepInteriorRings,
		Workers:           m.Workers,
		MaxTileSize:       m.MaxTileSize,
	}
}

// Tile fetches and decodes tile with the map's allow-list.
func (m Map) Tile(ctx context.Context, tile maptile.Tile) (*mvt.Tile, error) {
	return m.TileLayers(ctx, tile, m.Layers)
}

// TileLayers fetches and decodes tile keeping only layers.
func (m Map) TileLayers(ctx context.Context, tile maptile.Tile, layers mvt.LayerFilter) (*mvt.Tile, error) {
	data, err := m.Provider.TileData(ctx, tile)
	if err != nil {
		return nil, err
	}

	t, err := m.decoder(layers).Unmarshal(data)
	if err != nil {
		return nil, err
	}
	m.Where.Apply(t)

	log.Debugf("map %v: decoded tile %v/%v/%v with %v layers and %v diagnostics",
		m.Name, tile.Z, tile.X, tile.Y, len(t.Layers), len(t.Diagnostics))
	return t, nil
}

// ProviderLayers lists the layers the provider advertises, or nil if it
// does not know them.
func (m Map) ProviderLayers(ctx context.Context) ([]provider.LayerInfo, error) {
	l, ok := m.Provider.(provider.Layerer)
	if !ok {
		return nil, nil
	}
	return l.Layers(ctx)
}
