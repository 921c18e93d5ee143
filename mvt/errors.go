package mvt

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTile is returned when there is no decoded tile message to assemble.
	ErrNilTile = errors.New("mvt: nil tile message")
	// ErrUnknownGeometry is returned when converting a feature of unknown type.
	ErrUnknownGeometry = errors.New("mvt: unknown geometry type")
)

// ErrTileTooLarge is wrapped in an ErrUnmarshal when a gzip framed payload
// inflates past the size limit.
type ErrTileTooLarge struct {
	Limit int64
}

func (e ErrTileTooLarge) Error() string {
	return fmt.Sprintf("mvt: inflated tile exceeds %v bytes", e.Limit)
}

// ErrUnmarshal reports that the tile payload could not be turned into a tile
// message. Stage is "gzip" or "protobuf".
type ErrUnmarshal struct {
	Stage string
	Err   error
}

func (e ErrUnmarshal) Error() string {
	return fmt.Sprintf("mvt: %v decode failed: %v", e.Stage, e.Err)
}

func (e ErrUnmarshal) Unwrap() error { return e.Err }
