// Package provider holds the registry of tile sources. A provider returns the
// raw (possibly gzip framed) tile message stored for a z/x/y address.
package provider

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
)

// config keys shared by every provider
const (
	ConfigKeyName = "name"
	ConfigKeyType = "type"
)

// DefaultExtension is the file extension of tiles stored as objects or files.
const DefaultExtension = "pbf"

// ErrTileNotFound is returned by a Tiler that has no tile at an address.
var ErrTileNotFound = errors.New("provider: tile not found")

// Tiler is a key-value lookup of tile messages.
type Tiler interface {
	TileData(ctx context.Context, tile maptile.Tile) ([]byte, error)
}

// InitFunc builds a Tiler from its configuration.
type InitFunc func(config dict.Dicter) (Tiler, error)

// CleanupFunc is called once when the process shuts down.
type CleanupFunc func()

type pfns struct {
	init    InitFunc
	cleanup CleanupFunc
}

var (
	providersLock sync.RWMutex
	providers     map[string]pfns
)

type ErrProviderAlreadyExists struct {
	Name string
}

func (e ErrProviderAlreadyExists) Error() string {
	return fmt.Sprintf("provider %v already exists", e.Name)
}

type ErrUnknownProvider struct {
	Name           string
	KnownProviders []string
}

func (e ErrUnknownProvider) Error() string {
	return fmt.Sprintf("no providers registered by the name: %v, known providers (%v)", e.Name, strings.Join(e.KnownProviders, ","))
}

// Register adds a provider type. It is meant to be called from an init func.
func Register(name string, init InitFunc, cleanup CleanupFunc) error {
	providersLock.Lock()
	defer providersLock.Unlock()

	if providers == nil {
		providers = make(map[string]pfns)
	}
	if _, ok := providers[name]; ok {
		return ErrProviderAlreadyExists{Name: name}
	}
	providers[name] = pfns{init: init, cleanup: cleanup}
	return nil
}

// Drivers returns the sorted names of the registered provider types.
func Drivers() (l []string) {
	providersLock.RLock()
	defer providersLock.RUnlock()

	for k := range providers {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

// For builds a provider of type name.
func For(name string, config dict.Dicter) (Tiler, error) {
	providersLock.RLock()
	p, ok := providers[name]
	providersLock.RUnlock()

	if !ok {
		return nil, ErrUnknownProvider{Name: name, KnownProviders: Drivers()}
	}
	return p.init(config)
}

// Cleanup runs the cleanup func of every registered provider type.
func Cleanup() {
	providersLock.RLock()
	defer providersLock.RUnlock()

	for _, p := range providers {
		if p.cleanup != nil {
			p.cleanup()
		}
	}
}

// TileKey is the z/x/y key of a tile under basepath, with ext appended when
// it is not empty.
func TileKey(basepath string, tile maptile.Tile, ext string) string {
	key := path.Join(
		basepath,
		strconv.FormatUint(uint64(tile.Z), 10),
		strconv.FormatUint(uint64(tile.X), 10),
		strconv.FormatUint(uint64(tile.Y), 10),
	)
	if ext != "" {
		key += "." + ext
	}
	return key
}

// ValidTile reports whether x and y are inside the grid of zoom z.
func ValidTile(tile maptile.Tile) bool {
	return tile.Z < 32 && tile.Valid()
}

// TMSRow flips an XYZ row into the TMS numbering (origin at the bottom)
// MBTiles archives store.
func TMSRow(tile maptile.Tile) uint32 {
	return uint32(1)<<uint32(tile.Z) - 1 - tile.Y
}
