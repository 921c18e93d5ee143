package mvt

import "math"

// maxCommandCount is the largest repeat count a Command Integer can hold.
const maxCommandCount = 1<<29 - 1

// EncodeZigZag maps a signed parameter to its zig-zag encoded form.
func EncodeZigZag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// clampParam narrows a delta to the int32 range a parameter can carry.
func clampParam(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

func commandInteger(id CommandID, count int) uint32 {
	return uint32(id)&0x7 | uint32(count)<<3
}

// EncodeCommands is the inverse of DecodeCommands: runs of commands with the
// same id share one Command Integer. Deltas outside the int32 range are
// clamped to it.
func EncodeCommands(cmds []Command) []uint32 {
	out := make([]uint32, 0, len(cmds)*3)
	for i := 0; i < len(cmds); {
		id := cmds[i].ID
		j := i
		for j < len(cmds) && cmds[j].ID == id && j-i < maxCommandCount {
			j++
		}

		out = append(out, commandInteger(id, j-i))
		if id != ClosePath {
			for _, c := range cmds[i:j] {
				out = append(out, EncodeZigZag(clampParam(c.X)), EncodeZigZag(clampParam(c.Y)))
			}
		}
		i = j
	}
	return out
}

// RingCommands returns the commands drawing a closed ring through pts,
// starting from cursor. The returned cursor is the last vertex.
func RingCommands(cursor Point, pts []Point) ([]Command, Point) {
	if len(pts) == 0 {
		return nil, cursor
	}
	cmds := make([]Command, 0, len(pts)+1)
	for i, p := range pts {
		id := LineTo
		if i == 0 {
			id = MoveTo
		}
		cmds = append(cmds, Command{ID: id, X: p[0] - cursor[0], Y: p[1] - cursor[1]})
		cursor = p
	}
	return append(cmds, Command{ID: ClosePath}), cursor
}
