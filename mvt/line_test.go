package mvt

import (
	"testing"

	"github.com/go-test/deep"
)

func TestAssembleLines(t *testing.T) {
	tests := map[string]struct {
		cmds   []Command
		lines  [][]Point
		faults []Fault
	}{
		"single line": {
			cmds:  []Command{moveTo(2, 2), lineTo(0, 8), lineTo(8, 0)},
			lines: [][]Point{{{2, 2}, {2, 10}, {10, 10}}},
		},
		"cursor carries across lines": {
			cmds: []Command{
				moveTo(2, 2), lineTo(0, 8),
				moveTo(1, 1), lineTo(3, 0),
			},
			lines: [][]Point{
				{{2, 2}, {2, 10}},
				{{3, 11}, {6, 11}},
			},
		},
		"orphan line to": {
			cmds:   []Command{lineTo(5, 5), lineTo(1, 0)},
			lines:  [][]Point{{{0, 0}, {5, 5}, {6, 5}}},
			faults: []Fault{{Kind: FaultOrphanLineTo, Index: 0}},
		},
		"close path is unexpected": {
			cmds:   []Command{moveTo(0, 0), lineTo(1, 1), closePath()},
			lines:  [][]Point{{{0, 0}, {1, 1}}},
			faults: []Fault{{Kind: FaultUnexpectedCommand, Index: 2}},
		},
		"lone move to": {
			cmds:  []Command{moveTo(7, 7)},
			lines: [][]Point{{{7, 7}}},
		},
		"empty": {},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			lines, faults := AssembleLines(tc.cmds)
			if diff := deep.Equal(lines, tc.lines); diff != nil {
				t.Errorf("lines: %v", diff)
			}
			if diff := deep.Equal(faults, tc.faults); diff != nil {
				t.Errorf("faults: %v", diff)
			}
		})
	}
}

func TestAssemblePoints(t *testing.T) {
	tests := map[string]struct {
		cmds   []Command
		points []Point
		faults []Fault
	}{
		"single point": {
			cmds:   []Command{moveTo(25, 17)},
			points: []Point{{25, 17}},
		},
		"multi point is relative": {
			cmds:   []Command{moveTo(5, 7), moveTo(-2, 3)},
			points: []Point{{5, 7}, {3, 10}},
		},
		"line to is unexpected": {
			cmds:   []Command{moveTo(1, 1), lineTo(1, 1), moveTo(1, 1)},
			points: []Point{{1, 1}, {2, 2}},
			faults: []Fault{{Kind: FaultUnexpectedCommand, Index: 1}},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			points, faults := AssemblePoints(tc.cmds)
			if diff := deep.Equal(points, tc.points); diff != nil {
				t.Errorf("points: %v", diff)
			}
			if diff := deep.Equal(faults, tc.faults); diff != nil {
				t.Errorf("faults: %v", diff)
			}
		})
	}
}
