package mvt

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/go-spatial/geom"
)

// minSide keeps point features and axis aligned lines from producing
// zero sized rectangles, which the R-tree rejects.
const minSide = 0.5

// IndexEntry is a feature found by an Index search.
type IndexEntry struct {
	Layer   string
	Feature *Feature
}

type indexedFeature struct {
	entry IndexEntry
	ext   geom.Extent
	seq   int
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return rectFor(f.ext)
}

func rectFor(ext geom.Extent) rtreego.Rect {
	w, h := ext.MaxX()-ext.MinX(), ext.MaxY()-ext.MinY()
	if w < minSide {
		w = minSide
	}
	if h < minSide {
		h = minSide
	}
	rect, _ := rtreego.NewRect(rtreego.Point{ext.MinX(), ext.MinY()}, []float64{w, h})
	return rect
}

// Index is an R-tree over the features of a decoded tile.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex indexes every feature of t that has at least one vertex.
func NewIndex(t *Tile) *Index {
	idx := &Index{tree: rtreego.NewTree(2, 25, 50)}
	var seq int
	for _, l := range t.Layers {
		for _, f := range l.Features {
			ext := f.Extent()
			if ext == nil {
				continue
			}
			idx.tree.Insert(&indexedFeature{
				entry: IndexEntry{Layer: l.Name, Feature: f},
				ext:   *ext,
				seq:   seq,
			})
			seq++
		}
	}
	return idx
}

// Len is the number of indexed features.
func (idx *Index) Len() int { return idx.tree.Size() }

// Search returns the features whose bounding box intersects ext, in tile
// order.
func (idx *Index) Search(ext geom.Extent) []IndexEntry {
	hits := idx.tree.SearchIntersect(rectFor(ext))
	found := make([]*indexedFeature, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.(*indexedFeature))
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	entries := make([]IndexEntry, len(found))
	for i, f := range found {
		entries[i] = f.entry
	}
	return entries
}
