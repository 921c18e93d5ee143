package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/mvt"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/render"
)

// LayersQueryParam overrides the map's allow-list with a comma separated
// list of layer names.
const LayersQueryParam = "layers"

// SizeQueryParam sets the pixel size of SVG previews.
const SizeQueryParam = "size"

// HandleMapTile decodes one tile of a map.
type HandleMapTile struct {
	Atlas *atlas.Atlas
}

// tile response formats, picked by the extension of y
const (
	formatJSON = "json"
	formatSVG  = "svg"
)

func splitFormat(y string) (string, string) {
	for _, ext := range []string{formatJSON, formatSVG} {
		if strings.HasSuffix(y, "."+ext) {
			return strings.TrimSuffix(y, "."+ext), ext
		}
	}
	return y, formatJSON
}

// parseTile reads z, x and y out of the route params. y may carry a .json
// or .svg extension.
func parseTile(params map[string]string) (maptile.Tile, string, error) {
	var (
		tile maptile.Tile
		vals [3]uint64
	)

	y, format := splitFormat(params[YParam])
	raw := [3]string{params[ZParam], params[XParam], y}
	for i, s := range raw {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return tile, format, fmt.Errorf("invalid %v value (%v)", [3]string{ZParam, XParam, YParam}[i], s)
		}
		vals[i] = v
	}

	tile = maptile.New(uint32(vals[1]), uint32(vals[2]), maptile.Zoom(vals[0]))
	if !provider.ValidTile(tile) {
		return tile, format, fmt.Errorf("tile %v/%v/%v is outside the grid", vals[0], vals[1], vals[2])
	}
	return tile, format, nil
}

func (req HandleMapTile) ServeHTTP(w http.ResponseWriter, r *http.Request, params map[string]string) {
	tile, format, err := parseTile(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := req.Atlas.Map(params[MapNameParam])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	layers := m.Layers
	if q := r.URL.Query().Get(LayersQueryParam); q != "" {
		layers = mvt.ParseLayerFilter(q)
	}

	t, err := m.TileLayers(r.Context(), tile, layers)
	if err != nil {
		var uerr mvt.ErrUnmarshal
		switch {
		case err == provider.ErrTileNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &uerr):
			log.Errorf("map %v tile %v/%v/%v: %v", m.Name, tile.Z, tile.X, tile.Y, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			log.Errorf("map %v tile %v/%v/%v: %v", m.Name, tile.Z, tile.X, tile.Y, err)
			http.Error(w, "error fetching tile", http.StatusInternalServerError)
		}
		return
	}

	if format == formatSVG {
		size := render.DefaultSize
		if q := r.URL.Query().Get(SizeQueryParam); q != "" {
			if size, err = strconv.Atoi(q); err != nil || size <= 0 || size > maxSVGSize {
				http.Error(w, fmt.Sprintf("invalid %v value (%v)", SizeQueryParam, q), http.StatusBadRequest)
				return
			}
		}

		setHeaders(w)
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := render.SVG(w, t, size, m.Palette); err != nil {
			log.Errorf("error rendering tile: %v", err)
		}
		return
	}

	setHeaders(w)
	if err := json.NewEncoder(w).Encode(t); err != nil {
		log.Errorf("error encoding tile: %v", err)
	}
}

const maxSVGSize = 8192
