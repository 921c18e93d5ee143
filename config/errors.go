package config

import "fmt"

type ErrMapsDuplicate struct {
	Name string
}

func (e ErrMapsDuplicate) Error() string {
	return fmt.Sprintf("config: map name (%v) is declared more than once", e.Name)
}

type ErrProvidersDuplicate struct {
	Name string
}

func (e ErrProvidersDuplicate) Error() string {
	return fmt.Sprintf("config: provider name (%v) is declared more than once", e.Name)
}

// ErrMissingProviderField is returned when a provider entry lacks its name
// or type.
type ErrMissingProviderField struct {
	Index int
	Field string
}

func (e ErrMissingProviderField) Error() string {
	return fmt.Sprintf("config: provider #%v is missing the %q field", e.Index, e.Field)
}

type ErrMissingMapName struct {
	Index int
}

func (e ErrMissingMapName) Error() string {
	return fmt.Sprintf("config: map #%v is missing a name", e.Index)
}

// ErrMissingProvider is returned when a map names a provider that is not
// configured.
type ErrMissingProvider struct {
	Map      string
	Provider string
}

func (e ErrMissingProvider) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("config: map (%v) does not name a provider", e.Map)
	}
	return fmt.Sprintf("config: map (%v) references unknown provider (%v)", e.Map, e.Provider)
}

type ErrUnknownFormat struct {
	Location string
}

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("config: can not tell the format of %v, expected .toml, .yml or .yaml", e.Location)
}
