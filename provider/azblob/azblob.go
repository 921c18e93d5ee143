// Package azblob serves tiles stored as block blobs in an Azure storage
// container under basepath/z/x/y.ext.
package azblob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Azure/azure-storage-blob-go/2018-03-28/azblob"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "azblob"

// config keys
const (
	ConfigKeyContainerURL = "container_url"
	ConfigKeyBasepath     = "basepath"
	ConfigKeyAzureAccount = "az_account_name"
	ConfigKeyAzureKey     = "az_account_key"
	ConfigKeyExtension    = "extension"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

type Provider struct {
	Basepath  string
	Extension string

	Container azblob.ContainerURL
}

// NewTileProvider builds a container client from config. Without an account
// name the container is read anonymously.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	var err error
	p := Provider{}

	rawURL, err := config.String(ConfigKeyContainerURL, nil)
	if err != nil {
		return nil, err
	}
	containerURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("azblob: parsing %v: %w", ConfigKeyContainerURL, err)
	}

	if p.Basepath, err = config.String(ConfigKeyBasepath, new(string)); err != nil {
		return nil, err
	}
	ext := provider.DefaultExtension
	if p.Extension, err = config.String(ConfigKeyExtension, &ext); err != nil {
		return nil, err
	}

	acctName, err := config.String(ConfigKeyAzureAccount, new(string))
	if err != nil {
		return nil, err
	}
	acctKey, err := config.String(ConfigKeyAzureKey, new(string))
	if err != nil {
		return nil, err
	}

	var cred azblob.Credential
	if acctName == "" {
		cred = azblob.NewAnonymousCredential()
	} else {
		cred = azblob.NewSharedKeyCredential(acctName, acctKey)
	}

	pipeline := azblob.NewPipeline(cred, azblob.PipelineOptions{
		Telemetry: azblob.TelemetryOptions{Value: "mvtread"},
	})
	p.Container = azblob.NewContainerURL(*containerURL, pipeline)

	return &p, nil
}

// Key is the blob name of tile.
func (p *Provider) Key(tile maptile.Tile) string {
	return provider.TileKey(p.Basepath, tile, p.Extension)
}

func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	key := p.Key(tile)
	res, err := p.Container.NewBlockBlobURL(key).Download(ctx, 0, 0, azblob.BlobAccessConditions{}, false)
	if err != nil {
		if e, ok := err.(azblob.StorageError); ok && e.Response().StatusCode == http.StatusNotFound {
			return nil, provider.ErrTileNotFound
		}
		log.Errorf("azblob: reading %v: %v", key, err)
		return nil, err
	}
	body := res.Body(azblob.RetryReaderOptions{})
	defer body.Close()

	return io.ReadAll(body)
}
