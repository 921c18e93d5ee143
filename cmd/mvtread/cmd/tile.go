package cmd

import (
	"context"
	"fmt"

	"github.com/go-spatial/cobra"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/mvt"
	"github.com/atlasdatatech/mvtread/provider"
)

var (
	tileMap     string
	tileZ       uint
	tileX       uint
	tileY       uint
	tileLayers  string
	tileSummary bool
	tileSVG     bool
)

var tileCmd = &cobra.Command{
	Use:   "tile",
	Short: "Fetch and decode one tile of a configured map",
	Args:  cobra.NoArgs,
	RunE:  tileCommand,
}

func init() {
	tileCmd.Flags().StringVarP(&tileMap, "map", "m", "", "name of the map to read (required)")
	tileCmd.Flags().UintVarP(&tileZ, "z", "z", 0, "zoom")
	tileCmd.Flags().UintVarP(&tileX, "x", "x", 0, "column")
	tileCmd.Flags().UintVarP(&tileY, "y", "y", 0, "row")
	tileCmd.Flags().StringVarP(&tileLayers, "layers", "l", "", "comma separated list of layers, overriding the map's list")
	tileCmd.Flags().BoolVarP(&tileSummary, "summary", "s", false, "print a summary instead of JSON")
	tileCmd.Flags().BoolVar(&tileSVG, "svg", false, "draw the tile as SVG, colored by the map's colors")
}

// fetchTile decodes z/x/y of the map named mapName in a. A non empty layers
// replaces the map's allow-list.
func fetchTile(ctx context.Context, a *atlas.Atlas, mapName string, z, x, y uint, layers string) (*mvt.Tile, error) {
	m, err := a.Map(mapName)
	if err != nil {
		return nil, err
	}

	tile := maptile.New(uint32(x), uint32(y), maptile.Zoom(z))
	if z >= 32 || !provider.ValidTile(tile) {
		return nil, fmt.Errorf("tile %v/%v/%v is outside the grid", z, x, y)
	}

	if layers != "" {
		return m.TileLayers(ctx, tile, mvt.ParseLayerFilter(layers))
	}
	return m.Tile(ctx, tile)
}

func tileCommand(cmd *cobra.Command, args []string) error {
	if tileMap == "" {
		return fmt.Errorf("--map is required")
	}

	ctx := context.Background()
	a := &atlas.Atlas{}
	if err := initConfig(ctx, a, configFile); err != nil {
		return err
	}
	defer provider.Cleanup()

	t, err := fetchTile(ctx, a, tileMap, tileZ, tileX, tileY, tileLayers)
	if err != nil {
		return err
	}
	m, _ := a.Map(tileMap)
	return writeTile(cmd.OutOrStdout(), t, outputFormat(tileSummary, tileSVG), m.Palette)
}
