//go:build cgo
// +build cgo

// Package mbtiles serves tiles out of an MBTiles (sqlite) archive.
package mbtiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "mbtiles"

// config keys
const (
	ConfigKeyFilePath = "filepath"
)

var ErrMissingFilePath = errors.New("mbtiles: filepath is required")

const tileQuery = `SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ? LIMIT 1`

// open providers, closed by Cleanup
var (
	providersLock sync.Mutex
	providers     []*Provider
)

func init() {
	provider.Register(Name, NewTileProvider, Cleanup)
}

// Provider reads tiles out of one archive. The archive is opened read-only.
type Provider struct {
	// path to the mbtiles file
	Filepath string
	// reference to the database connection
	db *sql.DB
}

// NewTileProvider opens the archive named by the filepath config key.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	path, err := config.String(ConfigKeyFilePath, nil)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrMissingFilePath
	}
	return Open(path)
}

// Open opens the archive at path and checks it has a tiles table.
func Open(path string) (*Provider, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%v?mode=ro", path))
	if err != nil {
		return nil, err
	}

	var n int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE name = 'tiles'`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("mbtiles: opening %v: %w", path, err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("mbtiles: %v has no tiles table", path)
	}

	p := &Provider{Filepath: path, db: db}

	providersLock.Lock()
	providers = append(providers, p)
	providersLock.Unlock()

	return p, nil
}

// TileData returns the first tile_data blob stored for tile.
func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	var data []byte
	err := p.db.QueryRowContext(ctx, tileQuery, tile.Z, tile.X, provider.TMSRow(tile)).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		return nil, provider.ErrTileNotFound
	case err != nil:
		log.Errorf("mbtiles: reading tile %v/%v/%v from %v: %v", tile.Z, tile.X, tile.Y, p.Filepath, err)
		return nil, err
	}

	log.Debugf("mbtiles: read %v bytes for tile %v/%v/%v", len(data), tile.Z, tile.X, tile.Y)
	return data, nil
}

// Close will close the Provider's database connection
func (p *Provider) Close() error {
	return p.db.Close()
}

// Cleanup closes every archive opened by this package.
func Cleanup() {
	providersLock.Lock()
	defer providersLock.Unlock()

	for _, p := range providers {
		if err := p.Close(); err != nil {
			log.Errorf("mbtiles: closing %v: %v", p.Filepath, err)
		}
	}
	providers = nil
}
