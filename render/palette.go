package render

import (
	"fmt"

	"gopkg.in/go-playground/colors.v1"
)

// DefaultColor is used for layers without a palette entry.
const DefaultColor = "#3388ff"

// Palette maps layer names to hex colors.
type Palette map[string]string

type ErrInvalidColor struct {
	Layer string
	Color string
	Err   error
}

func (e ErrInvalidColor) Error() string {
	return fmt.Sprintf("render: invalid color %q for layer %v: %v", e.Color, e.Layer, e.Err)
}

func (e ErrInvalidColor) Unwrap() error { return e.Err }

// ParsePalette validates the colors of m. Any notation colors.Parse accepts
// (#rgb, #rrggbb, rgb(), rgba()) is normalized to hex.
func ParsePalette(m map[string]string) (Palette, error) {
	if len(m) == 0 {
		return nil, nil
	}

	p := make(Palette, len(m))
	for layer, c := range m {
		parsed, err := colors.Parse(c)
		if err != nil {
			return nil, ErrInvalidColor{Layer: layer, Color: c, Err: err}
		}
		p[layer] = parsed.ToHEX().String()
	}
	return p, nil
}

// Color is the color of layer.
func (p Palette) Color(layer string) string {
	if c, ok := p[layer]; ok {
		return c
	}
	return DefaultColor
}
