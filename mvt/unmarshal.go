package mvt

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/golang/protobuf/proto"

	"github.com/atlasdatatech/mvtread/internal/log"
	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
)

// IsGzipped reports whether data starts with the gzip magic bytes.
func IsGzipped(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// DefaultMaxTileSize caps the inflated size of gzip framed payloads.
const DefaultMaxTileSize = 64 << 20

// UnmarshalMessage decodes a tile payload into a tile message, inflating it
// first if it is gzip framed. Missing required fields are tolerated; the
// getters fall back to the schema defaults.
func UnmarshalMessage(data []byte) (*vectorTile.Tile, error) {
	return UnmarshalMessageLimit(data, DefaultMaxTileSize)
}

// UnmarshalMessageLimit is UnmarshalMessage with a cap of limit bytes on the
// inflated payload. A limit <= 0 uses DefaultMaxTileSize.
func UnmarshalMessageLimit(data []byte, limit int64) (*vectorTile.Tile, error) {
	if limit <= 0 {
		limit = DefaultMaxTileSize
	}

	if IsGzipped(data) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, ErrUnmarshal{Stage: "gzip", Err: err}
		}
		defer zr.Close()

		if data, err = io.ReadAll(io.LimitReader(zr, limit+1)); err != nil {
			return nil, ErrUnmarshal{Stage: "gzip", Err: err}
		}
		if int64(len(data)) > limit {
			return nil, ErrUnmarshal{Stage: "gzip", Err: ErrTileTooLarge{Limit: limit}}
		}
	}

	var msg vectorTile.Tile
	if err := proto.Unmarshal(data, &msg); err != nil {
		if _, ok := err.(*proto.RequiredNotSetError); !ok {
			return nil, ErrUnmarshal{Stage: "protobuf", Err: err}
		}
		log.Debugf("tile message is missing a required field: %v", err)
	}
	return &msg, nil
}

// Unmarshal decodes a tile payload and assembles the layers named in allow.
func Unmarshal(data []byte, allow LayerFilter) (*Tile, error) {
	return Decoder{Layers: allow}.Unmarshal(data)
}

// Unmarshal decodes a tile payload and assembles it with d.
func (d Decoder) Unmarshal(data []byte) (*Tile, error) {
	msg, err := UnmarshalMessageLimit(data, d.MaxTileSize)
	if err != nil {
		return nil, err
	}
	return d.Decode(msg)
}
