package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/internal/log"
)

// HandleCapabilities lists the configured maps.
type HandleCapabilities struct {
	Atlas *atlas.Atlas
}

type Capabilities struct {
	Version string          `json:"version"`
	Maps    []CapabilityMap `json:"maps"`
}

type CapabilityMap struct {
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	Layers   []string `json:"layers"`
	// ProviderLayers are the layers the provider advertises, when it knows them
	ProviderLayers []string `json:"provider_layers,omitempty"`
	Where          string   `json:"where,omitempty"`
	Tiles          string   `json:"tiles"`
}

func scheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

func host(r *http.Request) string {
	if HostName != "" {
		return HostName
	}
	return r.Host
}

func (req HandleCapabilities) ServeHTTP(w http.ResponseWriter, r *http.Request, params map[string]string) {
	caps := Capabilities{
		Version: Version,
		Maps:    []CapabilityMap{},
	}

	for _, m := range req.Atlas.AllMaps() {
		cm := CapabilityMap{
			Name:     m.Name,
			Provider: m.ProviderName,
			Layers:   append([]string{}, m.Layers...),
			Tiles:    fmt.Sprintf("%v://%v/maps/%v/{z}/{x}/{y}", scheme(r), host(r), m.Name),
		}
		if m.Where != nil {
			cm.Where = m.Where.Source
		}

		infos, err := m.ProviderLayers(r.Context())
		if err != nil {
			log.Warnf("listing provider layers of map %v: %v", m.Name, err)
		}
		for _, info := range infos {
			cm.ProviderLayers = append(cm.ProviderLayers, info.ID)
		}

		caps.Maps = append(caps.Maps, cm)
	}

	setHeaders(w)
	if err := json.NewEncoder(w).Encode(caps); err != nil {
		log.Errorf("error encoding capabilities: %v", err)
	}
}
