// Package server serves decoded tiles as JSON over HTTP.
package server

import (
	"net/http"

	"github.com/dimfeld/httptreemux"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/internal/log"
)

const (
	// MapNameParam is the route param holding the map name.
	MapNameParam = "map_name"
	ZParam       = "z"
	XParam       = "x"
	YParam       = "y"
)

var (
	// Version is the version of the software, reported by /capabilities.
	Version = "version not set"
	// HostName is the name of the host reported in capabilities urls. When
	// empty the request host is used.
	HostName string
	// CORSAllowedOrigin is sent as Access-Control-Allow-Origin.
	CORSAllowedOrigin = "*"
)

// NewRouter wires the routes for the maps of a. A nil a serves the default
// atlas.
func NewRouter(a *atlas.Atlas) *httptreemux.TreeMux {
	r := httptreemux.New()
	r.PanicHandler = func(w http.ResponseWriter, req *http.Request, err interface{}) {
		log.Errorf("panic serving %v: %v", req.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	r.GET("/capabilities", HandleCapabilities{Atlas: a}.ServeHTTP)
	r.GET("/maps/:map_name/:z/:x/:y", HandleMapTile{Atlas: a}.ServeHTTP)

	return r
}

// NewHandler is the router behind the request logger.
func NewHandler(a *atlas.Atlas) http.Handler {
	return RequestLogger(NewRouter(a))
}

// Start starts the HTTP server on port in the background.
func Start(a *atlas.Atlas, port string) *http.Server {
	log.Infof("starting mvtread server on port %v", port)

	srv := &http.Server{Addr: port, Handler: NewHandler(a)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("mvtread server: %v", err)
		}
	}()
	return srv
}

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if CORSAllowedOrigin != "" {
		w.Header().Set("Access-Control-Allow-Origin", CORSAllowedOrigin)
	}
}
