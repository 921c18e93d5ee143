package mvt

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-test/deep"
	"github.com/golang/protobuf/proto"

	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
)

func testMessage() *vectorTile.Tile {
	return &vectorTile.Tile{
		Layers: []*vectorTile.Tile_Layer{
			{
				Name:    proto.String("water"),
				Version: proto.Uint32(2),
				Extent:  proto.Uint32(4096),
				Keys:    []string{"name"},
				Values:  []*vectorTile.Tile_Value{{StringValue: proto.String("lake")}},
				Features: []*vectorTile.Tile_Feature{{
					Id:       proto.Uint64(1),
					Tags:     []uint32{0, 0},
					Type:     vectorTile.Tile_POLYGON.Enum(),
					Geometry: canonicalGeometry,
				}},
			},
			{
				Name:    proto.String("roads"),
				Version: proto.Uint32(2),
				Keys:    []string{"class"},
				Values:  []*vectorTile.Tile_Value{{StringValue: proto.String("primary")}},
				Features: []*vectorTile.Tile_Feature{{
					Id:       proto.Uint64(7),
					Tags:     []uint32{0, 0, 3, 0},
					Type:     vectorTile.Tile_LINESTRING.Enum(),
					Geometry: []uint32{9, 4, 4, 18, 0, 16, 16, 0},
				}},
			},
			{
				Name:    proto.String("pois"),
				Version: proto.Uint32(2),
				Features: []*vectorTile.Tile_Feature{{
					Id:       proto.Uint64(9),
					Type:     vectorTile.Tile_POINT.Enum(),
					Geometry: []uint32{9, 50, 34},
				}},
			},
		},
	}
}

func TestDecode(t *testing.T) {
	msg := testMessage()
	water := msg.Layers[0]

	tile, err := Decode(msg, LayerFilter{"water"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tile.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %v", len(tile.Layers))
	}
	if len(tile.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", tile.Diagnostics)
	}

	l := tile.Layers[0]
	if l.Name != "water" || l.Version != 2 || l.Extent != 4096 {
		t.Errorf("unexpected layer header: %v %v %v", l.Name, l.Version, l.Extent)
	}
	if len(l.Features) != 1 {
		t.Fatalf("expected 1 feature, got %v", len(l.Features))
	}

	f := l.Features[0]
	if f.ID != 1 || f.Type != GeomPolygon {
		t.Errorf("unexpected feature header: %v %v", f.ID, f.Type)
	}
	if diff := deep.Equal(f.Attributes, map[string]Value{"name": StringValue("lake")}); diff != nil {
		t.Errorf("attributes: %v", diff)
	}
	if diff := deep.Equal(f.Commands, canonicalCommands); diff != nil {
		t.Errorf("commands: %v", diff)
	}
	expectedRings := []Ring{{
		Points: []Point{{0, 0}, {4096, 0}, {4096, 4096}},
		Area:   8388608,
		Kind:   Exterior,
	}}
	if diff := deep.Equal(f.Rings, expectedRings); diff != nil {
		t.Errorf("rings: %v", diff)
	}

	if len(msg.Layers) != 3 || msg.Layers[0] != water || water.GetName() != "water" {
		t.Error("decoding modified the input message")
	}
}

func TestDecodeDiagnostics(t *testing.T) {
	tile, err := Decode(testMessage(), LayerFilter{"roads", "pois"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roads, ok := tile.Layer("roads")
	if !ok {
		t.Fatal("roads layer missing")
	}
	expectedLines := [][]Point{{{2, 2}, {2, 10}, {10, 10}}}
	if diff := deep.Equal(roads.Features[0].Lines, expectedLines); diff != nil {
		t.Errorf("lines: %v", diff)
	}
	if diff := deep.Equal(roads.Features[0].Attributes, map[string]Value{"class": StringValue("primary")}); diff != nil {
		t.Errorf("attributes: %v", diff)
	}

	pois, ok := tile.Layer("pois")
	if !ok {
		t.Fatal("pois layer missing")
	}
	if diff := deep.Equal(pois.Features[0].Points, []Point{{25, 17}}); diff != nil {
		t.Errorf("points: %v", diff)
	}

	expected := []Diagnostic{{FeatureID: 7, Layer: "roads", Kind: FaultTagIndexOutOfRange, Index: 2}}
	if diff := deep.Equal(tile.Diagnostics, expected); diff != nil {
		t.Errorf("diagnostics: %v", diff)
	}
}

func TestDecodeKeepInteriorRings(t *testing.T) {
	msg := &vectorTile.Tile{Layers: []*vectorTile.Tile_Layer{{
		Name:    proto.String("holes"),
		Version: proto.Uint32(2),
		Features: []*vectorTile.Tile_Feature{{
			Type:     vectorTile.Tile_POLYGON.Enum(),
			Geometry: EncodeCommands([]Command{moveTo(0, 0), lineTo(0, 10), lineTo(10, 0), lineTo(0, -10), closePath()}),
		}},
	}}}

	tile, err := Decoder{Layers: LayerFilter{"holes"}}.Decode(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(tile.Layers[0].Features[0].Rings); n != 0 {
		t.Errorf("expected the interior ring to be dropped, got %v rings", n)
	}
	if len(tile.Diagnostics) != 1 || tile.Diagnostics[0].Kind != FaultInteriorRing {
		t.Errorf("expected an interior ring diagnostic, got %v", tile.Diagnostics)
	}

	tile, err = Decoder{Layers: LayerFilter{"holes"}, KeepInteriorRings: true}.Decode(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rings := tile.Layers[0].Features[0].Rings
	if len(rings) != 1 || rings[0].Kind != Interior {
		t.Errorf("expected one interior ring, got %v", rings)
	}
	if len(tile.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", tile.Diagnostics)
	}
}

func TestDecodeWorkers(t *testing.T) {
	msg := &vectorTile.Tile{}
	var names LayerFilter
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("layer-%02d", i)
		names = append(names, name)
		msg.Layers = append(msg.Layers, &vectorTile.Tile_Layer{
			Name:    proto.String(name),
			Version: proto.Uint32(2),
			Features: []*vectorTile.Tile_Feature{{
				Id:       proto.Uint64(uint64(i)),
				Type:     vectorTile.Tile_POLYGON.Enum(),
				Geometry: []uint32{9, 0, 0, 26, 4096, 0, 0, 4096, 15},
			}},
		})
	}

	serial, err := Decoder{Layers: names}.Decode(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, workers := range []int{2, 4, 32} {
		concurrent, err := Decoder{Layers: names, Workers: workers}.Decode(msg)
		if err != nil {
			t.Fatalf("workers %v: unexpected error: %v", workers, err)
		}
		if diff := deep.Equal(serial.Diagnostics, concurrent.Diagnostics); diff != nil {
			t.Errorf("workers %v: diagnostics: %v", workers, diff)
		}
		if a, b := mustJSON(t, serial), mustJSON(t, concurrent); a != b {
			t.Errorf("workers %v: tiles differ:\n%v\n%v", workers, a, b)
		}
	}
	if len(serial.Diagnostics) != 16*2 {
		t.Errorf("expected two diagnostics per layer, got %v", len(serial.Diagnostics))
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestDecodeNil(t *testing.T) {
	if _, err := Decode(nil, LayerFilter{"water"}); err != ErrNilTile {
		t.Errorf("expected ErrNilTile, got %v", err)
	}
}

func TestDecodeEmptyFilter(t *testing.T) {
	tile, err := Decode(testMessage(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tile.Layers) != 0 || tile.Diagnostics == nil {
		t.Errorf("expected an empty tile, got %#v", tile)
	}
}

func gzipped(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUnmarshal(t *testing.T) {
	data, err := proto.Marshal(testMessage())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for name, payload := range map[string][]byte{
		"plain": data,
		"gzip":  gzipped(t, data),
	} {
		t.Run(name, func(t *testing.T) {
			tile, err := Unmarshal(payload, LayerFilter{"water", "pois"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tile.Layers) != 2 || tile.Layers[0].Name != "water" || tile.Layers[1].Name != "pois" {
				t.Errorf("unexpected layers: %v", tile.Layers)
			}
			if len(tile.Layers[0].Features[0].Rings) != 1 {
				t.Errorf("expected one ring, got %v", tile.Layers[0].Features[0].Rings)
			}
		})
	}
}

func TestUnmarshalMissingRequired(t *testing.T) {
	// a layer holding only extent = 4096
	data := []byte{0x1a, 0x03, 0x28, 0x80, 0x20}
	msg, err := UnmarshalMessage(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msg.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %v", len(msg.Layers))
	}
	if v := msg.Layers[0].GetVersion(); v != 1 {
		t.Errorf("expected default version 1, got %v", v)
	}
}

func TestUnmarshalMaxTileSize(t *testing.T) {
	data, err := proto.Marshal(testMessage())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	zipped := gzipped(t, data)
	size := int64(len(data))

	tests := map[string]struct {
		limit int64
		err   error
	}{
		"default limit":     {limit: 0},
		"exactly the limit": {limit: size},
		"over the limit":    {limit: size - 1, err: ErrTileTooLarge{Limit: size - 1}},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			tile, err := Decoder{Layers: LayerFilter{"water"}, MaxTileSize: tc.limit}.Unmarshal(zipped)
			if tc.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(tile.Layers) != 1 {
					t.Errorf("expected the water layer, got %v layers", len(tile.Layers))
				}
				return
			}

			e, ok := err.(ErrUnmarshal)
			if !ok || e.Stage != "gzip" || e.Err != tc.err {
				t.Errorf("expected a gzip stage %v, got %v", tc.err, err)
			}
		})
	}
}

func TestUnmarshalGzipBomb(t *testing.T) {
	zipped := gzipped(t, make([]byte, 1<<20))

	_, err := UnmarshalMessageLimit(zipped, 1024)
	if e, ok := err.(ErrUnmarshal); !ok || e.Err != (ErrTileTooLarge{Limit: 1024}) {
		t.Errorf("expected ErrTileTooLarge, got %v", err)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := map[string]struct {
		data  []byte
		stage string
	}{
		"truncated protobuf": {data: []byte{0x1a, 0x05, 0x01}, stage: "protobuf"},
		"truncated gzip":     {data: []byte{0x1f, 0x8b, 0x00}, stage: "gzip"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal(tc.data, LayerFilter{"water"})
			e, ok := err.(ErrUnmarshal)
			if !ok {
				t.Fatalf("expected ErrUnmarshal, got %T %v", err, err)
			}
			if e.Stage != tc.stage {
				t.Errorf("expected stage %v got %v", tc.stage, e.Stage)
			}
		})
	}
}
