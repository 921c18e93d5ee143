package mvt

import "github.com/go-spatial/geom"

func (p Point) coords() [2]float64 { return [2]float64{float64(p[0]), float64(p[1])} }

func lineCoords(pts []Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = p.coords()
	}
	return out
}

// Geometry converts the feature's absolute geometry into go-spatial/geom
// types, in tile coordinates. Single part geometries are returned as
// geom.Point, geom.LineString or geom.Polygon; otherwise the Multi variant.
// Each exterior ring starts a polygon and interior rings attach to the
// polygon before them.
func (f *Feature) Geometry() (geom.Geometry, error) {
	switch f.Type {
	case GeomPoint:
		if len(f.Points) == 1 {
			return geom.Point(f.Points[0].coords()), nil
		}
		return geom.MultiPoint(lineCoords(f.Points)), nil

	case GeomLineString:
		if len(f.Lines) == 1 {
			return geom.LineString(lineCoords(f.Lines[0])), nil
		}
		mls := make(geom.MultiLineString, len(f.Lines))
		for i, l := range f.Lines {
			mls[i] = lineCoords(l)
		}
		return mls, nil

	case GeomPolygon:
		var mp geom.MultiPolygon
		for _, r := range f.Rings {
			switch {
			case r.Kind == Exterior:
				mp = append(mp, [][][2]float64{lineCoords(r.Points)})
			case len(mp) > 0:
				mp[len(mp)-1] = append(mp[len(mp)-1], lineCoords(r.Points))
			}
		}
		if len(mp) == 1 {
			return geom.Polygon(mp[0]), nil
		}
		return mp, nil
	}

	return nil, ErrUnknownGeometry
}

func (f *Feature) vertices() [][2]float64 {
	var pts [][2]float64
	for _, p := range f.Points {
		pts = append(pts, p.coords())
	}
	for _, l := range f.Lines {
		pts = append(pts, lineCoords(l)...)
	}
	for _, r := range f.Rings {
		pts = append(pts, lineCoords(r.Points)...)
	}
	return pts
}

// Extent returns the bounding box of the feature's vertices, or nil when the
// feature has none.
func (f *Feature) Extent() *geom.Extent {
	pts := f.vertices()
	if len(pts) == 0 {
		return nil
	}
	return geom.NewExtent(pts...)
}
