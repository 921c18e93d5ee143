package register

import (
	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

// Providers builds the configured providers, keyed by name.
func Providers(providers []dict.Dict) (map[string]provider.Tiler, error) {
	registered := make(map[string]provider.Tiler, len(providers))

	for i, p := range providers {
		name, err := p.String(provider.ConfigKeyName, nil)
		if err != nil || name == "" {
			return registered, ErrProviderNameMissing{Index: i}
		}
		if _, ok := registered[name]; ok {
			return registered, ErrProviderNameDuplicate{Name: name}
		}

		typ, err := p.String(provider.ConfigKeyType, nil)
		if err != nil || typ == "" {
			return registered, ErrProviderTypeMissing{Name: name}
		}

		t, err := provider.For(typ, p)
		if err != nil {
			return registered, ErrProviderInit{Name: name, Err: err}
		}

		log.Infof("registered %v provider (%v)", typ, name)
		registered[name] = t
	}

	return registered, nil
}
