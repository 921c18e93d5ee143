//go:build cgo
// +build cgo

package mbtiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atlasdatatech/mvtread/provider"
)

// Metadata reads the name/value pairs of the metadata table.
func (p *Provider) Metadata(ctx context.Context) (map[string]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT name, value FROM metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	md := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		md[name] = value
	}
	return md, rows.Err()
}

type metadataJSON struct {
	VectorLayers []provider.LayerInfo `json:"vector_layers"`
}

// Layers reads the vector_layers of the metadata json entry.
func (p *Provider) Layers(ctx context.Context) ([]provider.LayerInfo, error) {
	md, err := p.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := md["json"]
	if !ok {
		return nil, nil
	}

	var mj metadataJSON
	if err := json.Unmarshal([]byte(raw), &mj); err != nil {
		return nil, fmt.Errorf("mbtiles: metadata json of %v: %w", p.Filepath, err)
	}
	return mj.VectorLayers, nil
}
