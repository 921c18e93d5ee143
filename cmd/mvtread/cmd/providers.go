package cmd

import (
	// providers available to the config file
	_ "github.com/atlasdatatech/mvtread/provider/azblob"
	_ "github.com/atlasdatatech/mvtread/provider/debug"
	_ "github.com/atlasdatatech/mvtread/provider/file"
	_ "github.com/atlasdatatech/mvtread/provider/postgres"
	_ "github.com/atlasdatatech/mvtread/provider/redis"
	_ "github.com/atlasdatatech/mvtread/provider/s3"
)
