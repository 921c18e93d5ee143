package main

import (
	"os"

	// require go1.8+
	_ "github.com/theckman/goconstraint/go1.8/gte"

	"github.com/atlasdatatech/mvtread/cmd/mvtread/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
