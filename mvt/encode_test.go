package mvt

import (
	"math"
	"testing"

	"github.com/go-test/deep"
)

func TestEncodeCommands(t *testing.T) {
	if diff := deep.Equal(EncodeCommands(canonicalCommands), canonicalGeometry); diff != nil {
		t.Error(diff)
	}

	cmds := []Command{
		moveTo(5, 7), moveTo(-2, 3),
		lineTo(1, 1), closePath(), closePath(),
		moveTo(-4096, 4096), lineTo(0, -1),
	}
	geometry := EncodeCommands(cmds)
	expected := []uint32{17, 10, 14, 3, 6, 10, 2, 2, 23, 9, 8191, 8192, 10, 0, 1}
	if diff := deep.Equal(geometry, expected); diff != nil {
		t.Errorf("encoded: %v", diff)
	}

	decoded, faults := DecodeCommands(geometry)
	if len(faults) != 0 {
		t.Errorf("unexpected faults: %v", faults)
	}
	if diff := deep.Equal(decoded, cmds); diff != nil {
		t.Errorf("round trip: %v", diff)
	}
}

func TestEncodeCommandsClampsDeltas(t *testing.T) {
	cmds := []Command{
		moveTo(math.MaxInt32+10, math.MinInt32-10),
		lineTo(math.MaxInt32, math.MinInt32),
	}
	decoded, faults := DecodeCommands(EncodeCommands(cmds))
	if len(faults) != 0 {
		t.Errorf("unexpected faults: %v", faults)
	}
	expected := []Command{
		moveTo(math.MaxInt32, math.MinInt32),
		lineTo(math.MaxInt32, math.MinInt32),
	}
	if diff := deep.Equal(decoded, expected); diff != nil {
		t.Error(diff)
	}
}

func TestRingCommands(t *testing.T) {
	cmds, cursor := RingCommands(Point{}, []Point{{0, 0}, {4096, 0}, {4096, 4096}})
	if diff := deep.Equal(cmds, canonicalCommands); diff != nil {
		t.Error(diff)
	}
	if cursor != (Point{4096, 4096}) {
		t.Errorf("cursor: got %v", cursor)
	}

	next, cursor := RingCommands(cursor, []Point{{4096, 4096}, {4000, 4096}})
	if next[0] != moveTo(0, 0) || next[1] != lineTo(-96, 0) || cursor != (Point{4000, 4096}) {
		t.Errorf("relative ring: got %v %v", next, cursor)
	}

	if cmds, cursor := RingCommands(Point{1, 2}, nil); cmds != nil || cursor != (Point{1, 2}) {
		t.Errorf("empty ring: got %v %v", cmds, cursor)
	}
}
