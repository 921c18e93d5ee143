package register

import (
	"context"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/config"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/render"
)

func layerInfosFindByID(infos []provider.LayerInfo, lyrID string) bool {
	for i := range infos {
		if infos[i].ID == lyrID {
			return true
		}
	}
	return false
}

// checkLayers makes sure every layer of the map is served by the provider.
// Providers that cannot list their layers are trusted.
func checkLayers(ctx context.Context, cfg config.Map, p provider.Tiler) error {
	layerer, ok := p.(provider.Layerer)
	if !ok || len(cfg.Layers) == 0 {
		return nil
	}

	infos, err := layerer.Layers(ctx)
	if err != nil {
		return ErrFetchingLayerInfo{
			Provider: cfg.Provider,
			Err:      err,
		}
	}
	// an archive without a vector_layers listing
	if len(infos) == 0 {
		return nil
	}

	for _, l := range cfg.Layers {
		if !layerInfosFindByID(infos, l) {
			return ErrProviderLayerNotRegistered{
				MapName:  cfg.Name,
				Layer:    l,
				Provider: cfg.Provider,
			}
		}
	}
	return nil
}

func atlasMapFromConfigMap(ctx context.Context, cfg config.Map, providers map[string]provider.Tiler) (newMap atlas.Map, err error) {
	p, ok := providers[cfg.Provider]
	if !ok {
		return newMap, ErrProviderNotFound{Provider: cfg.Provider}
	}
	if err = checkLayers(ctx, cfg, p); err != nil {
		return newMap, err
	}

	newMap = atlas.NewMap(cfg.Name, p, cfg.Layers...)
	newMap.ProviderName = cfg.Provider
	newMap.KeepInteriorRings = cfg.KeepInteriorRings
	newMap.Workers = cfg.Workers
	newMap.MaxTileSize = cfg.MaxTileSize

	if newMap.Where, err = atlas.CompileWhere(cfg.Where); err != nil {
		return newMap, err
	}
	if newMap.Palette, err = render.ParsePalette(cfg.Colors); err != nil {
		return newMap, err
	}
	return newMap, nil
}

// Maps registers maps with atlas
func Maps(ctx context.Context, a *atlas.Atlas, maps []config.Map, providers map[string]provider.Tiler) error {
	for _, m := range maps {
		newMap, err := atlasMapFromConfigMap(ctx, m, providers)
		if err != nil {
			return err
		}
		a.AddMap(newMap)
	}
	return nil
}
