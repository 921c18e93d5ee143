// Package cmd holds the mvtread commands.
package cmd

import (
	"context"

	"github.com/go-spatial/cobra"

	"github.com/atlasdatatech/mvtread/atlas"
	"github.com/atlasdatatech/mvtread/cmd/internal/register"
	"github.com/atlasdatatech/mvtread/config"
	"github.com/atlasdatatech/mvtread/internal/log"
)

var (
	// set by command line flags
	configFile string
	logLevel   string

	// the loaded config, set by initConfig
	conf config.Config
)

// Version is set at build time.
var Version = "version not set"

var RootCmd = &cobra.Command{
	Use:   "mvtread",
	Short: "mvtread decodes Mapbox Vector Tiles",
	Long: `mvtread decodes Mapbox Vector Tiles (v2.1) into layers of features
with resolved attributes and geometry, reporting every problem found
in the tile as a diagnostic. Tiles are read from files or from the
providers named in the config file.`,
	PersistentPreRunE: rootCmdValidatePersistent,
	SilenceUsage:      true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.toml", "path to the config file")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	RootCmd.AddCommand(decodeCmd)
	RootCmd.AddCommand(tileCmd)
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(versionCmd)
}

func rootCmdValidatePersistent(cmd *cobra.Command, args []string) error {
	return log.SetLevel(logLevel)
}

// initConfig loads the config file and registers its providers and maps
// with a.
func initConfig(ctx context.Context, a *atlas.Atlas, location string) (err error) {
	if conf, err = config.Load(location); err != nil {
		return err
	}

	providers, err := register.Providers(conf.Providers)
	if err != nil {
		return err
	}
	return register.Maps(ctx, a, conf.Maps, providers)
}
