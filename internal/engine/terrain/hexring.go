package terrain

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// Shape selects the corner table used to place points on a hexagon.
type Shape int

const (
	// VertexShape has corners pointing along ±X. Lines start at 1 o'clock
	// and run clockwise. Used for vertices inside a block.
	VertexShape Shape = iota
	// BlockShape has corners pointing along ±Z at apothem distance, so that
	// blocks of circumradius d tile at spacing d*cos30. Used for block centres.
	BlockShape
)

var (
	sin60 = math32.Sqrt(3) / 2
	cos60 = float32(0.5)
	cos30 = sin60
	sin30 = cos60
)

var corners = [2][6]math.Vec2{
	VertexShape: {
		{X: cos60, Y: sin60}, {X: 1, Y: 0}, {X: cos60, Y: -sin60},
		{X: -cos60, Y: -sin60}, {X: -1, Y: 0}, {X: -cos60, Y: sin60},
	},
	BlockShape: {
		{X: 0, Y: 1}, {X: cos30, Y: sin30}, {X: cos30, Y: -sin30},
		{X: 0, Y: -1}, {X: -cos30, Y: -sin30}, {X: -cos30, Y: sin30},
	},
}

// RingCoord addresses one point of a hexagonal ring expansion.
// Ring 0 is the single centre point; ring r > 0 has 6*r points.
type RingCoord struct {
	Ring    int
	Line    int
	Segment int
}

// Corner returns the unit corner i (mod 6) of the shape.
func (s Shape) Corner(i int) math.Vec2 {
	c := corners[s][mod6(i)]
	if s == BlockShape {
		return c.Scale(cos30)
	}
	return c
}

// PositionOf returns the point (ring, line, segment) of a hexagon whose
// ring has the given circumradius. Segment may equal ring, which yields the
// first point of the next line.
func (s Shape) PositionOf(ring, line, segment int, distance float32) math.Vec2 {
	if ring < 0 || segment < 0 || segment > ring {
		panic(fmt.Sprintf("terrain: invalid ring coordinate (%d, %d, %d)", ring, line, segment))
	}
	if ring == 0 {
		return math.Vec2{}
	}

	prev := s.Corner(line)
	next := s.Corner(line + 1)
	t := float32(segment) / float32(ring)
	return next.Scale(t).Add(prev.Scale(1 - t)).Scale(distance)
}

// PositionOf places a block vertex; see Shape.PositionOf.
func PositionOf(ring, line, segment int, distance float32) math.Vec2 {
	return VertexShape.PositionOf(ring, line, segment, distance)
}

// FlatIndex maps (ring, line, segment) with segment < ring to a dense vertex
// index: the vertices of all smaller rings come first.
func FlatIndex(ring, line, segment int) uint32 {
	if ring == 0 {
		return 0
	}
	if ring < 0 || segment < 0 || segment >= ring {
		panic(fmt.Sprintf("terrain: invalid ring coordinate (%d, %d, %d)", ring, line, segment))
	}
	smaller := 1 + 3*(ring-1)*ring
	return uint32(smaller + mod6(line)*ring + segment)
}

// Index returns the dense vertex index of the coordinate.
func (c RingCoord) Index() uint32 {
	return FlatIndex(c.Ring, c.Line, c.Segment)
}

// Position places the coordinate on a VertexShape ring of radius distance.
func (c RingCoord) Position(distance float32) math.Vec2 {
	return PositionOf(c.Ring, c.Line, c.Segment, distance)
}

// RingCoords lists the points of one ring in index order.
func RingCoords(ring int) []RingCoord {
	if ring == 0 {
		return []RingCoord{{}}
	}
	coords := make([]RingCoord, 0, 6*ring)
	for line := range 6 {
		for segment := range ring {
			coords = append(coords, RingCoord{Ring: ring, Line: line, Segment: segment})
		}
	}
	return coords
}

// VertexCount returns the number of vertices in rings [0, ringCount).
func VertexCount(ringCount int) int {
	if ringCount <= 0 {
		return 0
	}
	return 1 + 3*(ringCount-1)*ringCount
}

func mod6(i int) int {
	i %= 6
	if i < 0 {
		i += 6
	}
	return i
}
