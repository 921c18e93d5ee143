// Package atlas provides an abstraction for a collection of Maps.
package atlas

import (
	"fmt"
	"sort"
	"sync"
)

type ErrMapNotFound struct {
	Name string
}

func (e ErrMapNotFound) Error() string {
	return fmt.Sprintf("atlas: map (%v) not found", e.Name)
}

// Atlas holds a collection of maps.
type Atlas struct {
	sync.RWMutex
	maps map[string]Map
}

// AddMap registers m under its name, replacing any map with the same name.
func (a *Atlas) AddMap(m Map) {
	if a == nil {
		a = defaultAtlas
	}

	a.Lock()
	defer a.Unlock()

	if a.maps == nil {
		a.maps = make(map[string]Map)
	}
	a.maps[m.Name] = m
}

// Map returns the map with the given name.
func (a *Atlas) Map(name string) (Map, error) {
	if a == nil {
		a = defaultAtlas
	}

	a.RLock()
	defer a.RUnlock()

	m, ok := a.maps[name]
	if !ok {
		return Map{}, ErrMapNotFound{Name: name}
	}
	return m, nil
}

// AllMaps returns every registered map sorted by name.
func (a *Atlas) AllMaps() []Map {
	if a == nil {
		a = defaultAtlas
	}

	a.RLock()
	defer a.RUnlock()

	maps := make([]Map, 0, len(a.maps))
	for _, m := range a.maps {
		maps = append(maps, m)
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps
}

var defaultAtlas = &Atlas{}

// AddMap registers m with the default atlas.
func AddMap(m Map) { defaultAtlas.AddMap(m) }

// GetMap returns a map from the default atlas.
func GetMap(name string) (Map, error) { return defaultAtlas.Map(name) }

// AllMaps returns the maps of the default atlas.
func AllMaps() []Map { return defaultAtlas.AllMaps() }
