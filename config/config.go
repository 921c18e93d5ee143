// Package config loads the TOML (or YAML) file that names the tile providers
// and the maps built on top of them.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
)

const DefaultPort = ":8080"

// Config is the decoded configuration file.
type Config struct {
	// LocationName is where the config was read from.
	LocationName string      `toml:"-" yaml:"-" json:"-"`
	Webserver    Webserver   `toml:"webserver" yaml:"webserver" json:"webserver"`
	Providers    []dict.Dict `toml:"providers" yaml:"providers" json:"providers"`
	Maps         []Map       `toml:"maps" yaml:"maps" json:"maps"`
}

type Webserver struct {
	HostName string `toml:"hostname" yaml:"hostname" json:"hostname"`
	Port     string `toml:"port" yaml:"port" json:"port"`
}

// A Map binds a provider to the layers decoded from its tiles.
type Map struct {
	Name     string `toml:"name" yaml:"name" json:"name"`
	Provider string `toml:"provider" yaml:"provider" json:"provider"`
	// Layers is the allow-list handed to the decoder.
	Layers            []string `toml:"layers" yaml:"layers" json:"layers"`
	KeepInteriorRings bool     `toml:"keep_interior_rings" yaml:"keep_interior_rings" json:"keep_interior_rings"`
	// Where is an optional boolean expression over id, type and tags.
	Where   string `toml:"where" yaml:"where" json:"where"`
	Workers int    `toml:"workers" yaml:"workers" json:"workers"`
	// MaxTileSize caps the inflated size of gzip framed tiles, in bytes.
	MaxTileSize int64 `toml:"max_tile_size" yaml:"max_tile_size" json:"max_tile_size"`
	// Colors maps layer names to the colors used by SVG previews.
	Colors map[string]string `toml:"colors" yaml:"colors" json:"colors"`
}

// Validate checks names are unique and every map points at a configured
// provider.
func (c *Config) Validate() error {
	providers := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		name, err := p.String("name", nil)
		if err != nil || name == "" {
			return ErrMissingProviderField{Index: i, Field: "name"}
		}
		if typ, err := p.String("type", nil); err != nil || typ == "" {
			return ErrMissingProviderField{Index: i, Field: "type"}
		}
		if providers[name] {
			return ErrProvidersDuplicate{Name: name}
		}
		providers[name] = true
	}

	maps := make(map[string]bool, len(c.Maps))
	for i, m := range c.Maps {
		if m.Name == "" {
			return ErrMissingMapName{Index: i}
		}
		if maps[m.Name] {
			return ErrMapsDuplicate{Name: m.Name}
		}
		maps[m.Name] = true

		if !providers[m.Provider] {
			return ErrMissingProvider{Map: m.Name, Provider: m.Provider}
		}
	}

	return nil
}

// Map returns the map with the given name.
func (c *Config) Map(name string) (Map, bool) {
	for _, m := range c.Maps {
		if m.Name == name {
			return m, true
		}
	}
	return Map{}, false
}

// Parse decodes a TOML config from reader and validates it.
func Parse(reader io.Reader, location string) (conf Config, err error) {
	if _, err = toml.DecodeReader(reader, &conf); err != nil {
		return conf, err
	}
	return finish(conf, location)
}

// ParseYAML decodes a YAML config from reader and validates it.
func ParseYAML(reader io.Reader, location string) (conf Config, err error) {
	dec := yaml.NewDecoder(reader)
	if err = dec.Decode(&conf); err != nil && err != io.EOF {
		return conf, err
	}
	return finish(conf, location)
}

func finish(conf Config, location string) (Config, error) {
	conf.LocationName = location
	if conf.Webserver.Port == "" {
		conf.Webserver.Port = DefaultPort
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

// Load reads the config file at location. The format is chosen by the file
// extension.
func Load(location string) (Config, error) {
	log.Infof("loading config file: %v", location)

	data, err := os.ReadFile(location)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".toml":
		return Parse(bytes.NewReader(data), location)
	case ".yml", ".yaml":
		return ParseYAML(bytes.NewReader(data), location)
	default:
		return Config{}, ErrUnknownFormat{Location: location}
	}
}
