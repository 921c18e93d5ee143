// Package mvt decodes Mapbox Vector Tile (v2.1) messages into layers of
// features with resolved attributes and geometry.
//
// Decoding never fails on malformed geometry or attribute data. Problems are
// collected as Diagnostics on the returned Tile and decoding continues with a
// deterministic fallback; only a missing tile message is an error.
package mvt

import (
	"sync"

	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
)

// GeomType is the geometry type of a feature.
type GeomType uint8

const (
	GeomUnknown GeomType = iota
	GeomPoint
	GeomLineString
	GeomPolygon
)

func (g GeomType) String() string {
	switch g {
	case GeomPoint:
		return "Point"
	case GeomLineString:
		return "LineString"
	case GeomPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

func (g GeomType) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func geomTypeFrom(t vectorTile.Tile_GeomType) GeomType {
	switch t {
	case vectorTile.Tile_POINT:
		return GeomPoint
	case vectorTile.Tile_LINESTRING:
		return GeomLineString
	case vectorTile.Tile_POLYGON:
		return GeomPolygon
	default:
		return GeomUnknown
	}
}

// Feature is one decoded feature.
//
// Commands is always populated. Depending on Type one of Points, Lines or
// Rings holds the absolute geometry. RawGeometry and RawTags are the arrays
// the feature was decoded from.
type Feature struct {
	ID         uint64           `json:"id"`
	Type       GeomType         `json:"type"`
	Attributes map[string]Value `json:"attributes"`
	Commands   []Command        `json:"commands,omitempty"`
	Points     []Point          `json:"points,omitempty"`
	Lines      [][]Point        `json:"lines,omitempty"`
	Rings      []Ring           `json:"rings,omitempty"`

	RawGeometry []uint32 `json:"-"`
	RawTags     []uint32 `json:"-"`
}

// Layer is a decoded layer. Keys and Values are the layer's shared tables;
// Values is already resolved.
type Layer struct {
	Name     string     `json:"name"`
	Version  uint32     `json:"version"`
	Extent   uint32     `json:"extent"`
	Features []*Feature `json:"features"`
	Keys     []string   `json:"-"`
	Values   []Value    `json:"-"`
}

// Tile is the result of decoding one tile message.
type Tile struct {
	Layers      []*Layer     `json:"layers"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Layer returns the first layer with the given name.
func (t *Tile) Layer(name string) (*Layer, bool) {
	for _, l := range t.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Decoder assembles tile messages.
type Decoder struct {
	// Layers is the allow-list of layers to keep.
	Layers LayerFilter
	// KeepInteriorRings keeps polygon holes instead of dropping them.
	KeepInteriorRings bool
	// Workers > 1 decodes layers concurrently. The result does not depend on it.
	Workers int
	// MaxTileSize caps the inflated size of gzip framed payloads handed to
	// Unmarshal. Zero means DefaultMaxTileSize.
	MaxTileSize int64
}

// Decode assembles the layers of msg named in allow.
func Decode(msg *vectorTile.Tile, allow LayerFilter) (*Tile, error) {
	return Decoder{Layers: allow}.Decode(msg)
}

// Decode assembles msg into a Tile.
func (d Decoder) Decode(msg *vectorTile.Tile) (*Tile, error) {
	if msg == nil {
		return nil, ErrNilTile
	}

	raw := d.Layers.Filter(msg.GetLayers())
	results := make([]layerResult, len(raw))

	if d.Workers > 1 && len(raw) > 1 {
		var (
			wg  sync.WaitGroup
			sem = make(chan struct{}, d.Workers)
		)
		for i := range raw {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				results[i] = d.decodeLayer(raw[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range raw {
			results[i] = d.decodeLayer(raw[i])
		}
	}

	tile := &Tile{
		Layers:      make([]*Layer, 0, len(results)),
		Diagnostics: []Diagnostic{},
	}
	for _, r := range results {
		tile.Layers = append(tile.Layers, r.layer)
		tile.Diagnostics = append(tile.Diagnostics, r.diagnostics...)
	}
	for _, diag := range tile.Diagnostics {
		logDiagnostic(diag)
	}

	return tile, nil
}

type layerResult struct {
	layer       *Layer
	diagnostics []Diagnostic
}

func (d Decoder) decodeLayer(raw *vectorTile.Tile_Layer) layerResult {
	table := resolveTable(raw.GetValues())
	l := &Layer{
		Name:     raw.GetName(),
		Version:  raw.GetVersion(),
		Extent:   raw.GetExtent(),
		Keys:     raw.GetKeys(),
		Values:   table.values,
		Features: make([]*Feature, 0, len(raw.GetFeatures())),
	}

	var diags []Diagnostic
	for _, rf := range raw.GetFeatures() {
		if rf == nil {
			continue
		}
		f, faults := d.decodeFeature(rf, l.Keys, table)
		for _, flt := range faults {
			diags = append(diags, Diagnostic{
				FeatureID: f.ID,
				Layer:     l.Name,
				Kind:      flt.Kind,
				Index:     flt.Index,
			})
		}
		l.Features = append(l.Features, f)
	}

	return layerResult{layer: l, diagnostics: diags}
}

func (d Decoder) decodeFeature(raw *vectorTile.Tile_Feature, keys []string, table valueTable) (*Feature, []Fault) {
	f := &Feature{
		ID:          raw.GetId(),
		Type:        geomTypeFrom(raw.GetType()),
		RawGeometry: raw.GetGeometry(),
		RawTags:     raw.GetTags(),
	}

	attrs, faults := assembleAttributes(f.RawTags, keys, table)
	f.Attributes = attrs

	cmds, cmdFaults := DecodeCommands(f.RawGeometry)
	f.Commands = cmds
	faults = append(faults, cmdFaults...)

	var geomFaults []Fault
	switch f.Type {
	case GeomPoint:
		f.Points, geomFaults = AssemblePoints(cmds)
	case GeomLineString:
		f.Lines, geomFaults = AssembleLines(cmds)
	case GeomPolygon:
		f.Rings, geomFaults = AssembleRings(cmds, d.KeepInteriorRings)
	}
	faults = append(faults, geomFaults...)

	return f, faults
}
