// The debug provider returns tiles that are helpful for debugging a map
// including a box for the tile edges and a point in the middle of the tile
// with z,x,y values encoded
package debug

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/mvt"
	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "debug"

const (
	LayerDebugTileOutline = "debug-tile-outline"
	LayerDebugTileCenter  = "debug-tile-center"
)

const DefaultExtent = 4096

// config keys
const (
	ConfigKeyExtent = "extent"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

// NewTileProvider Setups a debug provider. extent is the only config param
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	extent := uint(DefaultExtent)
	extent, err := config.Uint(ConfigKeyExtent, &extent)
	if err != nil {
		return nil, err
	}
	return &Provider{Extent: uint32(extent)}, nil
}

// Provider provides the debug provider
type Provider struct {
	Extent uint32
}

func (p *Provider) outline() *vectorTile.Tile_Layer {
	e := int64(p.Extent)
	cmds, _ := mvt.RingCommands(mvt.Point{}, []mvt.Point{{0, 0}, {e, 0}, {e, e}, {0, e}})

	return &vectorTile.Tile_Layer{
		Version: proto.Uint32(2),
		Name:    proto.String(LayerDebugTileOutline),
		Extent:  proto.Uint32(p.Extent),
		Keys:    []string{"type"},
		Values:  []*vectorTile.Tile_Value{{StringValue: proto.String("debug_buffer_outline")}},
		Features: []*vectorTile.Tile_Feature{{
			Id:       proto.Uint64(0),
			Tags:     []uint32{0, 0},
			Type:     vectorTile.Tile_POLYGON.Enum(),
			Geometry: mvt.EncodeCommands(cmds),
		}},
	}
}

func (p *Provider) center(tile maptile.Tile) *vectorTile.Tile_Layer {
	half := int64(p.Extent / 2)

	return &vectorTile.Tile_Layer{
		Version: proto.Uint32(2),
		Name:    proto.String(LayerDebugTileCenter),
		Extent:  proto.Uint32(p.Extent),
		Keys:    []string{"type", "zxy"},
		Values: []*vectorTile.Tile_Value{
			{StringValue: proto.String("debug_text")},
			{StringValue: proto.String(fmt.Sprintf("Z:%v, X:%v, Y:%v", tile.Z, tile.X, tile.Y))},
		},
		Features: []*vectorTile.Tile_Feature{{
			Id:       proto.Uint64(1),
			Tags:     []uint32{0, 0, 1, 1},
			Type:     vectorTile.Tile_POINT.Enum(),
			Geometry: mvt.EncodeCommands([]mvt.Command{{ID: mvt.MoveTo, X: half, Y: half}}),
		}},
	}
}

// TileData synthesizes the debug tile for tile.
func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	msg := vectorTile.Tile{
		Layers: []*vectorTile.Tile_Layer{p.outline(), p.center(tile)},
	}
	return proto.Marshal(&msg)
}

// Layers returns information about the various layers the provider supports
func (p *Provider) Layers(ctx context.Context) ([]provider.LayerInfo, error) {
	return []provider.LayerInfo{
		{
			ID:      LayerDebugTileOutline,
			MaxZoom: 31,
			Fields:  map[string]string{"type": "String"},
		},
		{
			ID:      LayerDebugTileCenter,
			MaxZoom: 31,
			Fields:  map[string]string{"type": "String", "zxy": "String"},
		},
	}, nil
}
