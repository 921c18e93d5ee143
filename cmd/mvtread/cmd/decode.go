package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/go-spatial/cobra"

	"github.com/atlasdatatech/mvtread/mvt"
	"github.com/atlasdatatech/mvtread/render"
)

var (
	decodeLayers    string
	decodeAll       bool
	decodeSummary   bool
	decodeKeepHoles bool
	decodeWorkers   int
	decodeSVG       bool
	decodeColors    []string
)

// stdin is read when the file argument is "-".
var stdin io.Reader = os.Stdin

var errNoLayers = errors.New("no layers selected: use --layers or --all")

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Decode a tile file (- reads stdin)",
	Long: `Decode a tile file and write the decoded layers as JSON.
The file may be gzip compressed. Only the layers named by --layers
are decoded unless --all is given.`,
	Args: cobra.ExactArgs(1),
	RunE: decodeCommand,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeLayers, "layers", "l", "", "comma separated list of layers to decode")
	decodeCmd.Flags().BoolVarP(&decodeAll, "all", "a", false, "decode every layer of the tile")
	decodeCmd.Flags().BoolVarP(&decodeSummary, "summary", "s", false, "print a summary instead of JSON")
	decodeCmd.Flags().BoolVar(&decodeKeepHoles, "keep-holes", false, "keep the interior rings of polygons")
	decodeCmd.Flags().IntVar(&decodeWorkers, "workers", 0, "number of layers decoded concurrently")
	decodeCmd.Flags().BoolVar(&decodeSVG, "svg", false, "draw the tile as SVG instead of writing JSON")
	decodeCmd.Flags().StringSliceVar(&decodeColors, "color", nil, "layer=color pairs used by --svg")
}

var errColorFlag = errors.New("colors must be given as layer=color")

// parseColors reads layer=color pairs into a palette.
func parseColors(pairs []string) (render.Palette, error) {
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		i := strings.Index(pair, "=")
		if i <= 0 {
			return nil, errColorFlag
		}
		m[pair[:i]] = pair[i+1:]
	}
	return render.ParsePalette(m)
}

func readTile(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// decodeTile decodes data with the layers picked by layers, or every layer
// when all is set.
func decodeTile(data []byte, layers string, all bool, d mvt.Decoder) (*mvt.Tile, error) {
	msg, err := mvt.UnmarshalMessage(data)
	if err != nil {
		return nil, err
	}

	if all {
		d.Layers = mvt.AllLayers(msg)
	} else {
		d.Layers = mvt.ParseLayerFilter(layers)
		if len(d.Layers) == 0 {
			return nil, errNoLayers
		}
	}
	return d.Decode(msg)
}

// output formats of writeTile
const (
	outputJSON = iota
	outputSummary
	outputSVG
)

func outputFormat(summary, svg bool) int {
	switch {
	case svg:
		return outputSVG
	case summary:
		return outputSummary
	default:
		return outputJSON
	}
}

func writeTile(w io.Writer, t *mvt.Tile, format int, p render.Palette) error {
	switch format {
	case outputSummary:
		return writeSummary(w, t)
	case outputSVG:
		return render.SVG(w, t, render.DefaultSize, p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func decodeCommand(cmd *cobra.Command, args []string) error {
	data, err := readTile(args[0])
	if err != nil {
		return err
	}

	t, err := decodeTile(data, decodeLayers, decodeAll, mvt.Decoder{
		KeepInteriorRings: decodeKeepHoles,
		Workers:           decodeWorkers,
	})
	if err != nil {
		return err
	}
	palette, err := parseColors(decodeColors)
	if err != nil {
		return err
	}
	return writeTile(cmd.OutOrStdout(), t, outputFormat(decodeSummary, decodeSVG), palette)
}
