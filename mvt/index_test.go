package mvt

import (
	"testing"

	"github.com/go-spatial/geom"
)

func TestIndex(t *testing.T) {
	tile := &Tile{Layers: []*Layer{
		{
			Name: "pois",
			Features: []*Feature{
				{ID: 1, Type: GeomPoint, Points: []Point{{25, 17}}},
				{ID: 2, Type: GeomPoint, Points: []Point{{3000, 3000}}},
				{ID: 3, Type: GeomPoint},
			},
		},
		{
			Name: "roads",
			Features: []*Feature{
				{ID: 4, Type: GeomLineString, Lines: [][]Point{{{0, 20}, {4096, 20}}}},
			},
		},
	}}

	idx := NewIndex(tile)
	if idx.Len() != 3 {
		t.Errorf("expected 3 indexed features, got %v", idx.Len())
	}

	tests := map[string]struct {
		ext geom.Extent
		ids []uint64
	}{
		"upper left":   {ext: *geom.NewExtent([2]float64{0, 0}, [2]float64{100, 100}), ids: []uint64{1, 4}},
		"lower right":  {ext: *geom.NewExtent([2]float64{2900, 2900}, [2]float64{3100, 3100}), ids: []uint64{2}},
		"road only":    {ext: *geom.NewExtent([2]float64{1000, 0}, [2]float64{1100, 100}), ids: []uint64{4}},
		"nothing here": {ext: *geom.NewExtent([2]float64{500, 500}, [2]float64{600, 600})},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			found := idx.Search(tc.ext)
			if len(found) != len(tc.ids) {
				t.Fatalf("expected %v results, got %v", len(tc.ids), len(found))
			}
			for i, e := range found {
				if e.Feature.ID != tc.ids[i] {
					t.Errorf("result %v: expected feature %v got %v", i, tc.ids[i], e.Feature.ID)
				}
			}
		})
	}

	found := idx.Search(*geom.NewExtent([2]float64{20, 15}, [2]float64{30, 18}))
	if len(found) != 1 || found[0].Layer != "pois" {
		t.Errorf("expected the poi, got %v", found)
	}
}
