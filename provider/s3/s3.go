// Package s3 serves tiles stored as objects in an S3 (or S3 compatible)
// bucket under basepath/z/x/y.ext.
package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/mvtread/dict"
	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/provider"
)

const Name = "s3"

const DefaultRegion = "us-east-1"

// config keys
const (
	ConfigKeyBucket         = "bucket"
	ConfigKeyBasepath       = "basepath"
	ConfigKeyRegion         = "region"
	ConfigKeyAWSAccessKeyID = "aws_access_key_id"
	ConfigKeyAWSSecretKey   = "aws_secret_access_key"
	ConfigKeyEndpoint       = "endpoint"
	ConfigKeyForcePathStyle = "force_path_style"
	ConfigKeyExtension      = "extension"
)

func init() {
	provider.Register(Name, NewTileProvider, nil)
}

type Provider struct {
	Bucket    string
	Basepath  string
	Extension string

	Client *s3.S3
}

// NewTileProvider builds an S3 client from config. Without explicit keys the
// default AWS credential chain is used.
func NewTileProvider(config dict.Dicter) (provider.Tiler, error) {
	var err error
	p := Provider{}

	if p.Bucket, err = config.String(ConfigKeyBucket, nil); err != nil {
		return nil, err
	}
	if p.Basepath, err = config.String(ConfigKeyBasepath, new(string)); err != nil {
		return nil, err
	}
	ext := provider.DefaultExtension
	if p.Extension, err = config.String(ConfigKeyExtension, &ext); err != nil {
		return nil, err
	}

	region := DefaultRegion
	if region, err = config.String(ConfigKeyRegion, &region); err != nil {
		return nil, err
	}
	awsConfig := aws.Config{
		Region: aws.String(region),
	}

	endpoint, err := config.String(ConfigKeyEndpoint, new(string))
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		awsConfig.Endpoint = aws.String(endpoint)
	}

	forcePathStyle, err := config.Bool(ConfigKeyForcePathStyle, new(bool))
	if err != nil {
		return nil, err
	}
	awsConfig.S3ForcePathStyle = aws.Bool(forcePathStyle)

	accessKey, err := config.String(ConfigKeyAWSAccessKeyID, new(string))
	if err != nil {
		return nil, err
	}
	secretKey, err := config.String(ConfigKeyAWSSecretKey, new(string))
	if err != nil {
		return nil, err
	}
	if accessKey != "" && secretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		return nil, err
	}
	p.Client = s3.New(sess)

	return &p, nil
}

// Key is the object key of tile.
func (p *Provider) Key(tile maptile.Tile) string {
	return provider.TileKey(p.Basepath, tile, p.Extension)
}

func (p *Provider) TileData(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !provider.ValidTile(tile) {
		return nil, provider.ErrTileNotFound
	}

	input := s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(p.Key(tile)),
	}

	result, err := p.Client.GetObjectWithContext(ctx, &input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey, "NotFound":
				return nil, provider.ErrTileNotFound
			}
		}
		log.Errorf("s3: reading %v from bucket %v: %v", *input.Key, p.Bucket, err)
		return nil, err
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}
