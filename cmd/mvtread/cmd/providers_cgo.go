//go:build cgo
// +build cgo

package cmd

import (
	_ "github.com/atlasdatatech/mvtread/provider/gpkg"
	_ "github.com/atlasdatatech/mvtread/provider/mbtiles"
)
