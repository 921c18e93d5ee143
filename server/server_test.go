package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/provider/debug"
	"github.com/atlasdatatech/mvtread/server"
)

type garbageProvider struct{}

func (garbageProvider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if tile.Z > 0 {
		return nil, provider.ErrTileNotFound
	}
	return []byte{0x1a, 0x05, 0x01}, nil
}

func testAtlas() *atlas.Atlas {
	a := &atlas.Atlas{}

	m := atlas.NewMap("debug", &debug.Provider{Extent: debug.DefaultExtent}, debug.LayerDebugTileCenter)
	m.ProviderName = "debug"
	a.AddMap(m)

	broken := atlas.NewMap("broken", garbageProvider{}, "water")
	broken.ProviderName = "garbage"
	a.AddMap(broken)

	return a
}

type decodedTile struct {
	Layers []struct {
		Name     string `json:"name"`
		Extent   uint32 `json:"extent"`
		Features []struct {
			ID         uint64                 `json:"id"`
			Type       string                 `json:"type"`
			Attributes map[string]interface{} `json:"attributes"`
			Points     [][2]int64             `json:"points"`
		} `json:"features"`
	} `json:"layers"`
	Diagnostics []interface{} `json:"diagnostics"`
}

func TestHandleMapTile(t *testing.T) {
	handler := server.NewHandler(testAtlas())

	tests := map[string]struct {
		uri    string
		status int
		layers []string
	}{
		"default layers":   {uri: "/maps/debug/2/1/3", status: http.StatusOK, layers: []string{debug.LayerDebugTileCenter}},
		"json extension":   {uri: "/maps/debug/2/1/3.json", status: http.StatusOK, layers: []string{debug.LayerDebugTileCenter}},
		"layers override":  {uri: "/maps/debug/0/0/0?layers=debug-tile-outline,debug-tile-center", status: http.StatusOK, layers: []string{debug.LayerDebugTileOutline, debug.LayerDebugTileCenter}},
		"unknown map":      {uri: "/maps/nope/0/0/0", status: http.StatusNotFound},
		"bad z":            {uri: "/maps/debug/a/0/0", status: http.StatusBadRequest},
		"outside the grid": {uri: "/maps/debug/1/2/0", status: http.StatusBadRequest},
		"tile not found":   {uri: "/maps/broken/3/0/0", status: http.StatusNotFound},
		"undecodable tile": {uri: "/maps/broken/0/0/0", status: http.StatusInternalServerError},
		"unknown route":    {uri: "/tiles/debug/0/0/0", status: http.StatusNotFound},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.uri, nil))

			if w.Code != tc.status {
				t.Fatalf("expected status %v got %v: %v", tc.status, w.Code, w.Body.String())
			}
			if w.Header().Get(server.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
			if tc.status != http.StatusOK {
				return
			}

			var tile decodedTile
			if err := json.Unmarshal(w.Body.Bytes(), &tile); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			var names []string
			for _, l := range tile.Layers {
				names = append(names, l.Name)
			}
			if diff := deep.Equal(names, tc.layers); diff != nil {
				t.Error(diff)
			}
			if tile.Diagnostics == nil {
				t.Error("diagnostics should be an empty list, not null")
			}
		})
	}
}

func TestHandleMapTileBody(t *testing.T) {
	w := httptest.NewRecorder()
	server.NewHandler(testAtlas()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/maps/debug/2/1/3", nil))

	var tile decodedTile
	if err := json.Unmarshal(w.Body.Bytes(), &tile); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(tile.Layers) != 1 || len(tile.Layers[0].Features) != 1 {
		t.Fatalf("unexpected tile %+v", tile)
	}

	f := tile.Layers[0].Features[0]
	if f.Type != "Point" || f.ID != 1 {
		t.Errorf("unexpected feature header %v %v", f.Type, f.ID)
	}
	if diff := deep.Equal(f.Points, [][2]int64{{2048, 2048}}); diff != nil {
		t.Errorf("points: %v", diff)
	}
	if f.Attributes["zxy"] != "Z:2, X:1, Y:3" {
		t.Errorf("unexpected zxy attribute %v", f.Attributes["zxy"])
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type %v", w.Header().Get("Content-Type"))
	}
}

func TestHandleCapabilities(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://tiles.local/capabilities", nil)
	server.NewHandler(testAtlas()).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %v", w.Code)
	}

	var caps server.Capabilities
	if err := json.Unmarshal(w.Body.Bytes(), &caps); err != nil {
		t.Fatalf("decoding body: %v", err)
	}

	expected := []server.CapabilityMap{
		{
			Name:     "broken",
			Provider: "garbage",
			Layers:   []string{"water"},
			Tiles:    "http://tiles.local/maps/broken/{z}/{x}/{y}",
		},
		{
			Name:           "debug",
			Provider:       "debug",
			Layers:         []string{debug.LayerDebugTileCenter},
			ProviderLayers: []string{debug.LayerDebugTileOutline, debug.LayerDebugTileCenter},
			Tiles:          "http://tiles.local/maps/debug/{z}/{x}/{y}",
		},
	}
	if diff := deep.Equal(caps.Maps, expected); diff != nil {
		t.Error(diff)
	}
}

func TestHandleMapTileSVG(t *testing.T) {
	handler := server.NewHandler(testAtlas())

	tests := map[string]struct {
		uri    string
		status int
	}{
		"svg":          {uri: "/maps/debug/2/1/3.svg", status: http.StatusOK},
		"svg size":     {uri: "/maps/debug/2/1/3.svg?size=64", status: http.StatusOK},
		"bad size":     {uri: "/maps/debug/2/1/3.svg?size=big", status: http.StatusBadRequest},
		"huge size":    {uri: "/maps/debug/2/1/3.svg?size=100000", status: http.StatusBadRequest},
		"unknown type": {uri: "/maps/debug/2/1/3.png", status: http.StatusBadRequest},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.uri, nil))

			if w.Code != tc.status {
				t.Fatalf("expected status %v got %v: %v", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("unexpected content type %v", ct)
			}
			if !strings.Contains(w.Body.String(), `id="debug-tile-center"`) {
				t.Errorf("expected the center layer to be drawn:\n%v", w.Body.String())
			}
		})
	}
}
