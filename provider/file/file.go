// Package file serves tiles out of a z/x/y directory tree, as written by most
// tile export tools.
package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "file"

// config keys
const (
	ConfigKeyBasepath  = "basepath"
	ConfigKeyExtension = "extension"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

type Provider struct {
	Basepath  string
	Extension string
}

func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	var (
		p   Provider
		err error
	)

	if p.Basepath, err = config.String(ConfigKeyBasepath, nil); err != nil {
		return nil, err
	}
	ext := provider.DefaultExtension
	if p.Extension, err = config.String(ConfigKeyExtension, &ext); err != nil {
		return nil, err
	}

	info, err := os.Stat(p.Basepath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: p.Basepath, Err: os.ErrInvalid}
	}
	return &p, nil
}

// Path is the file path of tile.
func (p *Provider) Path(tile maptile.Tile) string {
	return filepath.FromSlash(provider.TileKey(p.Basepath, tile, p.Extension))
}

func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	data, err := os.ReadFile(p.Path(tile))
	switch {
	case os.IsNotExist(err):
		return nil, provider.ErrTileNotFound
	case err != nil:
		log.Errorf("file: reading %v: %v", p.Path(tile), err)
		return nil, err
	}
	return data, nil
}
