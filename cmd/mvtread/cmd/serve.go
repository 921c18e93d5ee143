package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-spatial/cobra"

	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
	"github.com/atlasdatatech/mvtread/server"
)

var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the decoded tiles of the configured maps",
	Long: `Serve the maps of the config file. Each tile is fetched from its
provider, decoded and returned as JSON at /maps/:map_name/:z/:x/:y.`,
	Args: cobra.NoArgs,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().StringVarP(&serverPort, "port", "p", "", "port to bind to, overriding the config file")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	// maps are registered with the default atlas
	if err := initConfig(context.Background(), nil, configFile); err != nil {
		return err
	}
	defer provider.Cleanup()

	server.Version = Version
	server.HostName = conf.Webserver.HostName

	port := conf.Webserver.Port
	if serverPort != "" {
		port = serverPort
	}
	srv := server.Start(nil, port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
