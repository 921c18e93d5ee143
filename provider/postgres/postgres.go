// Package postgres serves tiles stored in a PostgreSQL table laid out like
// the MBTiles tiles table.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "postgres"

const (
	DefaultPort           = 5432
	DefaultTable          = "tiles"
	DefaultMaxConnections = 10
	DefaultSSLMode        = "prefer"
)

// config keys
const (
	ConfigKeyURI            = "uri"
	ConfigKeyHost           = "host"
	ConfigKeyPort           = "port"
	ConfigKeyDB             = "database"
	ConfigKeyUser           = "user"
	ConfigKeyPassword       = "password"
	ConfigKeySSLMode        = "ssl_mode"
	ConfigKeyTable          = "table"
	ConfigKeyMaxConnections = "max_connections"
	// ConfigKeyTMS selects TMS row numbering, as used by tables copied
	// straight out of an MBTiles archive.
	ConfigKeyTMS = "tms"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

type ErrMissingConfigKey struct {
	Key string
}

func (e ErrMissingConfigKey) Error() string {
	return fmt.Sprintf("postgres: config key %q is required", e.Key)
}

// Provider reads tiles through a pgx connection pool.
type Provider struct {
	pool  *pgx.ConnPool
	query string
	tms   bool
}

// Config is the decoded provider configuration.
type Config struct {
	Conn           pgx.ConnConfig
	Table          string
	MaxConnections int
	TMS            bool
}

// ParseConfig reads either a connection uri or the individual connection
// keys out of config.
func ParseConfig(config dict.Dicter) (Config, error) {
	var (
		c   Config
		err error
	)

	uri, err := config.String(ConfigKeyURI, new(string))
	if err != nil {
		return c, err
	}

	if uri != "" {
		if c.Conn, err = pgx.ParseConnectionString(uri); err != nil {
			return c, fmt.Errorf("postgres: parsing %v: %w", ConfigKeyURI, err)
		}
	} else {
		host, err := config.String(ConfigKeyHost, nil)
		if err != nil {
			return c, ErrMissingConfigKey{Key: ConfigKeyHost}
		}
		db, err := config.String(ConfigKeyDB, nil)
		if err != nil {
			return c, ErrMissingConfigKey{Key: ConfigKeyDB}
		}
		user, err := config.String(ConfigKeyUser, nil)
		if err != nil {
			return c, ErrMissingConfigKey{Key: ConfigKeyUser}
		}
		password, err := config.String(ConfigKeyPassword, new(string))
		if err != nil {
			return c, err
		}

		port := DefaultPort
		if port, err = config.Int(ConfigKeyPort, &port); err != nil {
			return c, err
		}

		sslMode := DefaultSSLMode
		if sslMode, err = config.String(ConfigKeySSLMode, &sslMode); err != nil {
			return c, err
		}

		dsn := fmt.Sprintf("host=%v port=%v dbname=%v user=%v sslmode=%v", host, port, db, user, sslMode)
		if password != "" {
			dsn += " password=" + password
		}
		if c.Conn, err = pgx.ParseDSN(dsn); err != nil {
			return c, fmt.Errorf("postgres: %w", err)
		}
	}

	table := DefaultTable
	if c.Table, err = config.String(ConfigKeyTable, &table); err != nil {
		return c, err
	}

	maxConn := DefaultMaxConnections
	if c.MaxConnections, err = config.Int(ConfigKeyMaxConnections, &maxConn); err != nil {
		return c, err
	}

	tmsRows := false
	if c.TMS, err = config.Bool(ConfigKeyTMS, &tmsRows); err != nil {
		return c, err
	}

	return c, nil
}

// TileQuery is the parameterized select for one tile of table.
func TileQuery(table string) string {
	return fmt.Sprintf(
		`SELECT tile_data FROM %v WHERE zoom_level = $1 AND tile_column = $2 AND tile_row = $3 LIMIT 1`,
		pgx.Identifier{table}.Sanitize(),
	)
}

// NewTileProvider opens a connection pool for config.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	c, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig:     c.Conn,
		MaxConnections: c.MaxConnections,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting to %v: %w", c.Conn.Host, err)
	}

	return &Provider{
		pool:  pool,
		query: TileQuery(c.Table),
		tms:   c.TMS,
	}, nil
}

func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	row := tile.Y
	if p.tms {
		row = provider.TMSRow(tile)
	}

	var data []byte
	err := p.pool.QueryRowEx(ctx, p.query, nil, int32(tile.Z), int64(tile.X), int64(row)).Scan(&data)
	switch {
	case err == pgx.ErrNoRows:
		return nil, provider.ErrTileNotFound
	case err != nil:
		log.Errorf("postgres: reading tile %v/%v/%v: %v", tile.Z, tile.X, tile.Y, err)
		return nil, err
	}
	return data, nil
}

// Close closes the connection pool.
func (p *Provider) Close() {
	p.pool.Close()
}
