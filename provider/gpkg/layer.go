//go:build cgo
// +build cgo

package gpkg

import (
	"context"
	"database/sql"
	"sync"

	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

// open providers, closed by Cleanup
var (
	providersLock sync.Mutex
	providers     []*Provider
)

// Cleanup closes every geopackage opened by this package.
func Cleanup() {
	providersLock.Lock()
	defer providersLock.Unlock()

	for _, p := range providers {
		if err := p.Close(); err != nil {
			log.Errorf("gpkg: closing %v: %v", p.Filepath, err)
		}
	}
	providers = nil
}

func (p *Provider) hasTable(ctx context.Context, name string) (bool, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	return n > 0, err
}

// Layers reads the layers of the tile table out of gpkgext_vt_layers and
// their attributes out of gpkgext_vt_fields. A geopackage without the
// extension tables has no layer listing.
func (p *Provider) Layers(ctx context.Context) ([]provider.LayerInfo, error) {
	log.Debug("attempting gpkg.Layers()")

	ok, err := p.hasTable(ctx, "gpkgext_vt_layers")
	if err != nil || !ok {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT
			id, name, description, minzoom, maxzoom
		FROM
			gpkgext_vt_layers
		WHERE
			table_name = ?
		ORDER BY
			id`, p.TableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		ids    []int64
		layers []provider.LayerInfo
	)
	for rows.Next() {
		var (
			id               int64
			name             string
			description      sql.NullString
			minzoom, maxzoom sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &description, &minzoom, &maxzoom); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		layers = append(layers, provider.LayerInfo{
			ID:          name,
			Description: description.String,
			MinZoom:     uint(minzoom.Int64),
			MaxZoom:     uint(maxzoom.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ok, err = p.hasTable(ctx, "gpkgext_vt_fields"); err != nil || !ok {
		return layers, err
	}
	for i, id := range ids {
		if layers[i].Fields, err = p.fields(ctx, id); err != nil {
			return nil, err
		}
	}
	return layers, nil
}

func (p *Provider) fields(ctx context.Context, layerID int64) (map[string]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT name, type FROM gpkgext_vt_fields WHERE layer_id = ?`, layerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		fields[name] = typ
	}
	return fields, rows.Err()
}
