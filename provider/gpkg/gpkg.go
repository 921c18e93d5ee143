//go:build cgo
// +build cgo

// Package gpkg serves tiles out of a GeoPackage tile pyramid table, as
// written by the GeoPackage vector tiles extension.
package gpkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "gpkg"

// config keys
const (
	ConfigKeyFilePath  = "filepath"
	ConfigKeyTableName = "tablename"
)

var ErrMissingFilePath = errors.New("gpkg: filepath is required")

// data types of gpkg_contents rows holding tiles
var tileDataTypes = []string{"vector-tiles", "vector_tiles", "tiles"}

type ErrTileTableNotFound struct {
	Filepath  string
	TableName string
}

func (e ErrTileTableNotFound) Error() string {
	if e.TableName == "" {
		return fmt.Sprintf("gpkg: %v has no tile tables", e.Filepath)
	}
	return fmt.Sprintf("gpkg: %v has no tile table (%v)", e.Filepath, e.TableName)
}

func init() {
	provider.Register(Name, NewTileProvider, Cleanup)
}

// Provider reads the tiles of one tile table. The geopackage is opened
// read-only.
type Provider struct {
	// path to the geopackage file
	Filepath string
	// TableName is the tile pyramid table read
	TableName string

	qtext string
	// reference to the database connection
	db *sql.DB
}

// NewTileProvider opens the geopackage named by the filepath config key.
// Without a tablename the first tile table listed in gpkg_contents is used.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	path, err := config.String(ConfigKeyFilePath, nil)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrMissingFilePath
	}

	var tablename string
	if tablename, err = config.String(ConfigKeyTableName, &tablename); err != nil {
		return nil, err
	}
	return Open(path, tablename)
}

func quoteIdent(s string) string {
	return "`" + strings.Replace(s, "`", "``", -1) + "`"
}

func tileTable(ctx context.Context, db *sql.DB, tablename string) (string, error) {
	qtext := fmt.Sprintf(`
		SELECT
			table_name
		FROM
			gpkg_contents
		WHERE
			data_type IN ('%v') AND (? = '' OR table_name = ?)
		ORDER BY
			table_name
		LIMIT 1`, strings.Join(tileDataTypes, "','"))

	var name string
	err := db.QueryRowContext(ctx, qtext, tablename, tablename).Scan(&name)
	return name, err
}

// Open opens the geopackage at path and finds its tile table.
func Open(path, tablename string) (*Provider, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%v?mode=ro", path))
	if err != nil {
		return nil, err
	}

	name, err := tileTable(context.Background(), db, tablename)
	switch {
	case err == sql.ErrNoRows:
		db.Close()
		return nil, ErrTileTableNotFound{Filepath: path, TableName: tablename}
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("gpkg: opening %v: %w", path, err)
	}

	p := &Provider{
		Filepath:  path,
		TableName: name,
		qtext:     fmt.Sprintf("SELECT tile_data FROM %v WHERE zoom_level = ? AND tile_column = ? AND tile_row = ? LIMIT 1", quoteIdent(name)),
		db:        db,
	}
	log.Debugf("gpkg: reading tile table %v of %v", name, path)

	providersLock.Lock()
	providers = append(providers, p)
	providersLock.Unlock()

	return p, nil
}

// TileData returns the tile_data blob stored for tile. Tile rows count from
// the top, as in the XYZ scheme.
func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	var data []byte
	err := p.db.QueryRowContext(ctx, p.qtext, tile.Z, tile.X, tile.Y).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		return nil, provider.ErrTileNotFound
	case err != nil:
		log.Errorf("gpkg: reading tile %v/%v/%v from %v: %v", tile.Z, tile.X, tile.Y, p.Filepath, err)
		return nil, err
	}
	return data, nil
}

// Close will close the Provider's database connection
func (p *Provider) Close() error {
	return p.db.Close()
}
