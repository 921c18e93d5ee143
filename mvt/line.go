package mvt

// AssembleLines replays the cursor walk of a LineString feature. Each MoveTo
// starts a new line; a LineTo without a preceding MoveTo starts one at the
// current cursor and is reported. ClosePath has no meaning for lines.
func AssembleLines(cmds []Command) ([][]Point, []Fault) {
	var (
		cursor Point
		cur    []Point
		lines  [][]Point
		faults []Fault
	)

	for i, c := range cmds {
		switch c.ID {
		case MoveTo:
			if cur != nil {
				lines = append(lines, cur)
			}
			cursor = cursor.move(c)
			cur = []Point{cursor}
		case LineTo:
			if cur == nil {
				faults = append(faults, Fault{Kind: FaultOrphanLineTo, Index: i})
				cur = []Point{cursor}
			}
			cursor = cursor.move(c)
			cur = append(cur, cursor)
		default:
			faults = append(faults, Fault{Kind: FaultUnexpectedCommand, Index: i})
		}
	}
	if cur != nil {
		lines = append(lines, cur)
	}
	return lines, faults
}

// AssemblePoints returns the absolute position of every MoveTo of a Point
// feature.
func AssemblePoints(cmds []Command) ([]Point, []Fault) {
	var (
		cursor Point
		pts    []Point
		faults []Fault
	)
	for i, c := range cmds {
		if c.ID != MoveTo {
			faults = append(faults, Fault{Kind: FaultUnexpectedCommand, Index: i})
			continue
		}
		cursor = cursor.move(c)
		pts = append(pts, cursor)
	}
	return pts, faults
}
