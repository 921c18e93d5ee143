package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/provider/file"
)

func TestTileData(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "2", "1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2", "1", "0.pbf"), []byte("tile-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := provider.For(file.Name, dict.Dict{"basepath": dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	data, err := p.TileData(ctx, maptile.New(1, 0, 2))
	if err != nil || string(data) != "tile-bytes" {
		t.Errorf("TileData: got %q %v", data, err)
	}
	if _, err := p.TileData(ctx, maptile.New(1, 1, 2)); err != provider.ErrTileNotFound {
		t.Errorf("expected ErrTileNotFound, got %v", err)
	}
	if _, err := p.TileData(ctx, maptile.New(5, 1, 2)); err != provider.ErrTileNotFound {
		t.Errorf("expected ErrTileNotFound for an invalid tile, got %v", err)
	}
}

func TestNewTileProvider(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		config dict.Dict
		err    bool
	}{
		"ok":               {config: dict.Dict{"basepath": dir}},
		"no basepath":      {config: dict.Dict{}, err: true},
		"missing dir":      {config: dict.Dict{"basepath": filepath.Join(dir, "nope")}, err: true},
		"bad extension":    {config: dict.Dict{"basepath": dir, "extension": 12}, err: true},
		"custom extension": {config: dict.Dict{"basepath": dir, "extension": "mvt"}},
	}

	for name, tc := range tests {
		_, err := file.NewTileProvider(tc.config)
		if (err != nil) != tc.err {
			t.Errorf("%v: unexpected error state: %v", name, err)
		}
	}
}
