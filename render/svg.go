// Package render draws decoded tiles as SVG, for eyeballing what a tile
// holds.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/atlasdatatech/mvtread/mvt"
)

// DefaultSize is the width and height of the drawing in pixels.
const DefaultSize = 512

type scaler struct {
	size   int
	extent uint32
}

func (s scaler) px(v int64) int {
	if s.extent == 0 {
		return int(v)
	}
	return int(v * int64(s.size) / int64(s.extent))
}

func (s scaler) xys(pts []mvt.Point) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = s.px(p[0]), s.px(p[1])
	}
	return xs, ys
}

// ringPath is the path data of rings, every ring a closed subpath. Holes
// are cut out by the evenodd fill rule.
func (s scaler) ringPath(rings []mvt.Ring) string {
	var b strings.Builder
	for _, r := range rings {
		for i, p := range r.Points {
			op := "L"
			if i == 0 {
				op = "M"
			}
			fmt.Fprintf(&b, "%v%v %v ", op, s.px(p[0]), s.px(p[1]))
		}
		b.WriteString("Z ")
	}
	return strings.TrimSpace(b.String())
}

// SVG draws every layer of t, scaling each layer's extent to size pixels.
// Layers are drawn in tile order, each as a group named after the layer.
func SVG(w io.Writer, t *mvt.Tile, size int, p Palette) error {
	if size <= 0 {
		size = DefaultSize
	}

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:none;stroke:#999999;stroke-dasharray:4")

	for _, l := range t.Layers {
		s := scaler{size: size, extent: l.Extent}
		color := p.Color(l.Name)

		canvas.Group(fmt.Sprintf(`id="%v"`, escapeAttr(l.Name)))
		for _, f := range l.Features {
			switch f.Type {
			case mvt.GeomPoint:
				for _, pt := range f.Points {
					canvas.Circle(s.px(pt[0]), s.px(pt[1]), 3, "fill:"+color)
				}
			case mvt.GeomLineString:
				for _, line := range f.Lines {
					xs, ys := s.xys(line)
					canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+color)
				}
			case mvt.GeomPolygon:
				if len(f.Rings) == 0 {
					continue
				}
				canvas.Path(s.ringPath(f.Rings), "fill-rule:evenodd;fill-opacity:0.4;fill:"+color+";stroke:"+color)
			}
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
