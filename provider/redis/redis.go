// Package redis serves tiles stored as redis string values under
// prefix/z/x/y.
package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "redis"

const DefaultAddress = "127.0.0.1:6379"

// config keys
const (
	ConfigKeyAddress  = "address"
	ConfigKeyPassword = "password"
	ConfigKeyDB       = "db"
	ConfigKeyPrefix   = "prefix"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

type Provider struct {
	Prefix string
	Client *redis.Client
}

// NewTileProvider connects to the configured redis server and checks it
// answers a PING.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	var err error

	addr := DefaultAddress
	if addr, err = config.String(ConfigKeyAddress, &addr); err != nil {
		return nil, err
	}
	password, err := config.String(ConfigKeyPassword, new(string))
	if err != nil {
		return nil, err
	}
	db, err := config.Int(ConfigKeyDB, new(int))
	if err != nil {
		return nil, err
	}
	prefix, err := config.String(ConfigKeyPrefix, new(string))
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: connecting to %v: %w", addr, err)
	}

	return &Provider{Prefix: prefix, Client: client}, nil
}

// Key is the redis key of tile.
func (p *Provider) Key(tile maptile.Tile) string {
	return provider.TileKey(p.Prefix, tile, "")
}

func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	key := p.Key(tile)
	data, err := p.Client.Get(key).Bytes()
	switch {
	case err == redis.Nil:
		return nil, provider.ErrTileNotFound
	case err != nil:
		log.Errorf("redis: reading %v: %v", key, err)
		return nil, err
	}
	return data, nil
}

// Close closes the client.
func (p *Provider) Close() error {
	return p.Client.Close()
}
