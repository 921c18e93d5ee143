package register

import "fmt"

type ErrProviderNotFound struct {
	Provider string
}

func (e ErrProviderNotFound) Error() string {
	return fmt.Sprintf("register: provider (%v) not defined", e.Provider)
}

type ErrProviderNameMissing struct {
	Index int
}

func (e ErrProviderNameMissing) Error() string {
	return fmt.Sprintf("register: provider at index %v is missing a name", e.Index)
}

type ErrProviderNameDuplicate struct {
	Name string
}

func (e ErrProviderNameDuplicate) Error() string {
	return fmt.Sprintf("register: provider (%v) defined more than once", e.Name)
}

type ErrProviderTypeMissing struct {
	Name string
}

func (e ErrProviderTypeMissing) Error() string {
	return fmt.Sprintf("register: provider (%v) is missing a type", e.Name)
}

type ErrProviderInit struct {
	Name string
	Err  error
}

func (e ErrProviderInit) Error() string {
	return fmt.Sprintf("register: initializing provider (%v): %v", e.Name, e.Err)
}

func (e ErrProviderInit) Unwrap() error { return e.Err }

type ErrFetchingLayerInfo struct {
	Provider string
	Err      error
}

func (e ErrFetchingLayerInfo) Error() string {
	return fmt.Sprintf("register: error fetching layer info from provider (%v): %v", e.Provider, e.Err)
}

func (e ErrFetchingLayerInfo) Unwrap() error { return e.Err }

type ErrProviderLayerNotRegistered struct {
	MapName  string
	Layer    string
	Provider string
}

func (e ErrProviderLayerNotRegistered) Error() string {
	return fmt.Sprintf("register: map (%v) layer (%v) is not served by provider (%v)", e.MapName, e.Layer, e.Provider)
}
