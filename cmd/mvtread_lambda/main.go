// The mvtread_lambda command serves the maps of the config file from AWS
// Lambda behind API Gateway or an Application Load Balancer.
package main

import (
	"context"
	"os"

	"github.com/akrylysov/algnhsa"

	"github.com/atlasdatatech/mvtread/cmd/internal/register"
	"github.com/atlasdatatech/mvtread/config"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/server"

	_ "github.com/atlasdatatech/mvtread/provider/azblob"
	_ "github.com/atlasdatatech/mvtread/provider/debug"
	_ "github.com/atlasdatatech/mvtread/provider/file"
	_ "github.com/atlasdatatech/mvtread/provider/postgres"
	_ "github.com/atlasdatatech/mvtread/provider/redis"
	_ "github.com/atlasdatatech/mvtread/provider/s3"
)

// ConfigEnv names the config file location. Defaults to config.toml.
const ConfigEnv = "MVTREAD_CONFIG"

// Version is set at build time.
var Version = "version not set"

func main() {
	location := os.Getenv(ConfigEnv)
	if location == "" {
		location = "config.toml"
	}

	conf, err := config.Load(location)
	if err != nil {
		log.Fatal(err)
	}

	providers, err := register.Providers(conf.Providers)
	if err != nil {
		log.Fatal(err)
	}
	if err := register.Maps(context.Background(), nil, conf.Maps, providers); err != nil {
		log.Fatal(err)
	}

	server.Version = Version
	server.HostName = conf.Webserver.HostName

	algnhsa.ListenAndServe(server.NewHandler(nil), nil)
}
