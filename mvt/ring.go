package mvt

// Point is an absolute position in tile local coordinates.
type Point [2]int64

func (p Point) move(c Command) Point {
	return Point{p[0] + c.X, p[1] + c.Y}
}

// RingKind is the winding derived classification of a ring.
type RingKind uint8

const (
	Exterior RingKind = iota + 1
	Interior
)

func (k RingKind) String() string {
	switch k {
	case Exterior:
		return "exterior"
	case Interior:
		return "interior"
	default:
		return "unclassified"
	}
}

func (k RingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Ring is one closed sub-path of a polygon. The closing vertex is not
// repeated; Points is treated as cyclic.
type Ring struct {
	Points []Point  `json:"points"`
	Area   float64  `json:"area"`
	Kind   RingKind `json:"kind"`
}

// SignedArea computes the shoelace area of a cyclic vertex list. In tile
// coordinates (y pointing down) a positive area is an exterior ring.
func SignedArea(pts []Point) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += float64(pts[i][0])*float64(pts[j][1]) - float64(pts[j][0])*float64(pts[i][1])
	}
	return sum / 2
}

// ClassifyRing maps a signed area to a ring kind. Zero area is interior.
func ClassifyRing(area float64) RingKind {
	if area > 0 {
		return Exterior
	}
	return Interior
}

// ringFold is the accumulator of the polygon command walk. Every step takes
// the previous state by value and returns the next one.
type ringFold struct {
	cursor       Point
	open         []Point // nil when no ring is open
	rings        []Ring
	faults       []Fault
	keepInterior bool
}

func (s ringFold) step(idx int, cmd Command) ringFold {
	switch cmd.ID {
	case MoveTo:
		if s.open != nil {
			s.faults = append(s.faults, Fault{Kind: FaultReopenedRing, Index: idx})
			s = s.close(idx)
		}
		s.cursor = s.cursor.move(cmd)
		s.open = []Point{s.cursor}

	case LineTo:
		if s.open == nil {
			s.faults = append(s.faults, Fault{Kind: FaultOrphanLineTo, Index: idx})
			s.open = []Point{s.cursor}
		}
		s.cursor = s.cursor.move(cmd)
		s.open = append(s.open, s.cursor)

	case ClosePath:
		// repeated ClosePath commands have nothing left to close
		if s.open != nil {
			s = s.close(idx)
		}
	}
	return s
}

func (s ringFold) close(idx int) ringFold {
	area := SignedArea(s.open)
	r := Ring{
		Points: s.open,
		Area:   area,
		Kind:   ClassifyRing(area),
	}
	s.open = nil

	if r.Kind == Interior && !s.keepInterior {
		s.faults = append(s.faults, Fault{Kind: FaultInteriorRing, Index: idx})
		return s
	}
	s.rings = append(s.rings, r)
	return s
}

// AssembleRings groups polygon commands into closed, classified rings.
//
// Interior rings are dropped (with FaultInteriorRing) unless keepInterior is
// set. A ring still open when the commands run out is dropped and reported
// with FaultUnterminatedRing at index len(cmds).
func AssembleRings(cmds []Command, keepInterior bool) ([]Ring, []Fault) {
	s := ringFold{keepInterior: keepInterior}
	for i, c := range cmds {
		s = s.step(i, c)
	}
	if s.open != nil {
		s.faults = append(s.faults, Fault{Kind: FaultUnterminatedRing, Index: len(cmds)})
	}
	return s.rings, s.faults
}
