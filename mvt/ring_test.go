package mvt

import (
	"testing"

	"github.com/go-test/deep"
)

func TestSignedArea(t *testing.T) {
	tests := map[string]struct {
		pts  []Point
		area float64
		kind RingKind
	}{
		"canonical triangle": {
			pts:  []Point{{0, 0}, {4096, 0}, {4096, 4096}},
			area: 4096 * 4096 / 2,
			kind: Exterior,
		},
		"square down then right": {
			pts:  []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
			area: -100,
			kind: Interior,
		},
		"square reversed": {
			pts:  []Point{{10, 0}, {10, 10}, {0, 10}, {0, 0}},
			area: 100,
			kind: Exterior,
		},
		"degenerate line": {
			pts:  []Point{{0, 0}, {5, 5}},
			area: 0,
			kind: Interior,
		},
		"single point": {
			pts:  []Point{{3, 3}},
			area: 0,
			kind: Interior,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			area := SignedArea(tc.pts)
			if area != tc.area {
				t.Errorf("area: expected %v got %v", tc.area, area)
			}
			if kind := ClassifyRing(area); kind != tc.kind {
				t.Errorf("kind: expected %v got %v", tc.kind, kind)
			}
		})
	}
}

func TestAssembleRings(t *testing.T) {
	tests := map[string]struct {
		cmds         []Command
		keepInterior bool
		rings        []Ring
		faults       []Fault
	}{
		"canonical": {
			cmds: canonicalCommands,
			rings: []Ring{{
				Points: []Point{{0, 0}, {4096, 0}, {4096, 4096}},
				Area:   8388608,
				Kind:   Exterior,
			}},
		},
		"repeated close path": {
			cmds: append(append([]Command{}, canonicalCommands...), closePath(), closePath()),
			rings: []Ring{{
				Points: []Point{{0, 0}, {4096, 0}, {4096, 4096}},
				Area:   8388608,
				Kind:   Exterior,
			}},
		},
		"interior ring discarded": {
			cmds:   []Command{moveTo(0, 0), lineTo(0, 10), lineTo(10, 0), lineTo(0, -10), closePath()},
			faults: []Fault{{Kind: FaultInteriorRing, Index: 4}},
		},
		"interior ring kept": {
			cmds:         []Command{moveTo(0, 0), lineTo(0, 10), lineTo(10, 0), lineTo(0, -10), closePath()},
			keepInterior: true,
			rings: []Ring{{
				Points: []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
				Area:   -100,
				Kind:   Interior,
			}},
		},
		"exterior then hole": {
			cmds: []Command{
				moveTo(0, 0), lineTo(10, 0), lineTo(0, 10), lineTo(-10, 0), closePath(),
				moveTo(2, -8), lineTo(0, 6), lineTo(6, 0), lineTo(0, -6), closePath(),
			},
			rings: []Ring{{
				Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
				Area:   100,
				Kind:   Exterior,
			}},
			faults: []Fault{{Kind: FaultInteriorRing, Index: 9}},
		},
		"reopened ring is force closed": {
			cmds: []Command{
				moveTo(0, 0), lineTo(10, 0), lineTo(0, 10),
				moveTo(10, 0), lineTo(10, 0), lineTo(0, 10), closePath(),
			},
			rings: []Ring{
				{Points: []Point{{0, 0}, {10, 0}, {10, 10}}, Area: 50, Kind: Exterior},
				{Points: []Point{{20, 10}, {30, 10}, {30, 20}}, Area: 50, Kind: Exterior},
			},
			faults: []Fault{{Kind: FaultReopenedRing, Index: 3}},
		},
		"orphan line to opens a ring at the cursor": {
			cmds: []Command{lineTo(10, 0), lineTo(0, 10), closePath()},
			rings: []Ring{
				{Points: []Point{{0, 0}, {10, 0}, {10, 10}}, Area: 50, Kind: Exterior},
			},
			faults: []Fault{{Kind: FaultOrphanLineTo, Index: 0}},
		},
		"unterminated ring is dropped": {
			cmds:   []Command{moveTo(0, 0), lineTo(10, 0), lineTo(0, 10)},
			faults: []Fault{{Kind: FaultUnterminatedRing, Index: 3}},
		},
		"close path without a ring": {
			cmds: []Command{closePath()},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			rings, faults := AssembleRings(tc.cmds, tc.keepInterior)
			if diff := deep.Equal(rings, tc.rings); diff != nil {
				t.Errorf("rings: %v", diff)
			}
			if diff := deep.Equal(faults, tc.faults); diff != nil {
				t.Errorf("faults: %v", diff)
			}
		})
	}
}

func TestRingFoldStep(t *testing.T) {
	var s ringFold

	s = s.step(0, moveTo(3, 4))
	if s.cursor != (Point{3, 4}) {
		t.Errorf("cursor after MoveTo: got %v", s.cursor)
	}
	if diff := deep.Equal(s.open, []Point{{3, 4}}); diff != nil {
		t.Errorf("open ring after MoveTo: %v", diff)
	}

	s = s.step(1, lineTo(-3, 0))
	if s.cursor != (Point{0, 4}) {
		t.Errorf("cursor after LineTo: got %v", s.cursor)
	}
	if len(s.open) != 2 {
		t.Errorf("expected 2 open vertices, got %v", s.open)
	}

	s = s.step(2, closePath())
	if s.open != nil {
		t.Errorf("ring still open after ClosePath: %v", s.open)
	}
	if len(s.rings) != 0 || len(s.faults) != 1 || s.faults[0].Kind != FaultInteriorRing {
		t.Errorf("expected the degenerate ring to be discarded, got %v %v", s.rings, s.faults)
	}
	if s.cursor != (Point{0, 4}) {
		t.Errorf("ClosePath moved the cursor to %v", s.cursor)
	}
}
