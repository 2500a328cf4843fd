package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hexterrain/pkg/math"
)

const eps = 1e-3

func TestFlatIndexRingRanges(t *testing.T) {
	assert.Equal(t, uint32(0), FlatIndex(0, 0, 0))

	next := uint32(1)
	for ring := 1; ring <= 12; ring++ {
		seen := make(map[uint32]bool)
		for line := range 6 {
			for segment := range ring {
				idx := FlatIndex(ring, line, segment)
				assert.False(t, seen[idx], "duplicate index %d in ring %d", idx, ring)
				seen[idx] = true
			}
		}
		require.Len(t, seen, 6*ring)
		for i := next; i < next+uint32(6*ring); i++ {
			assert.True(t, seen[i], "ring %d misses index %d", ring, i)
		}
		next += uint32(6 * ring)
	}
	assert.Equal(t, uint32(VertexCount(13)), next)
}

func TestFlatIndexWrapsLine(t *testing.T) {
	assert.Equal(t, FlatIndex(3, 0, 0), FlatIndex(3, 6, 0))
	assert.Equal(t, FlatIndex(3, 5, 2), FlatIndex(3, -1, 2))
}

func TestFlatIndexPanicsOnInvalidSegment(t *testing.T) {
	assert.Panics(t, func() { FlatIndex(3, 0, 3) })
	assert.Panics(t, func() { FlatIndex(-1, 0, 0) })
	assert.Panics(t, func() { FlatIndex(2, 0, -1) })
}

func TestPositionOfSharedCorners(t *testing.T) {
	for _, shape := range []Shape{VertexShape, BlockShape} {
		for ring := 1; ring <= 8; ring++ {
			d := float32(ring) * 2.5
			for line := range 6 {
				a := shape.PositionOf(ring, line, 0, d)
				b := shape.PositionOf(ring, line-1, ring, d)
				assert.True(t, a.ApproxEqual(b, eps), "shape %d ring %d line %d: %v != %v", shape, ring, line, a, b)
			}
		}
	}
}

func TestPositionOfCenterAndCorners(t *testing.T) {
	assert.Equal(t, math.Vec2{}, PositionOf(0, 3, 0, 10))

	// VertexShape corners lie on the circumcircle.
	for line := range 6 {
		p := PositionOf(4, line, 0, 8)
		assert.InDelta(t, 8, p.Length(), eps)
	}
	assert.True(t, PositionOf(1, 1, 0, 5).ApproxEqual(math.Vec2{X: 5}, eps))

	// BlockShape corners sit at apothem distance.
	for line := range 6 {
		p := BlockShape.PositionOf(1, line, 0, 2)
		assert.InDelta(t, 2*cos30, p.Length(), eps)
	}
	assert.True(t, BlockShape.PositionOf(1, 0, 0, 1).ApproxEqual(math.Vec2{Y: cos30}, eps))
}

func TestPositionOfSegmentsAreEvenlySpaced(t *testing.T) {
	ring := 5
	first := PositionOf(ring, 2, 0, 10)
	for segment := 1; segment <= ring; segment++ {
		prev := PositionOf(ring, 2, segment-1, 10)
		cur := PositionOf(ring, 2, segment, 10)
		// Hexagon edges have the same length as the circumradius.
		assert.InDelta(t, 10.0/float32(ring), cur.Distance(prev), eps)
	}
	assert.InDelta(t, 10, first.Distance(PositionOf(ring, 2, ring, 10)), eps)
}

func TestPositionOfPanics(t *testing.T) {
	assert.Panics(t, func() { PositionOf(-1, 0, 0, 1) })
	assert.Panics(t, func() { PositionOf(2, 0, 3, 1) })
}

func TestVertexCount(t *testing.T) {
	tests := []struct {
		rings int
		want  int
	}{
		{0, 0},
		{1, 1},
		{2, 7},
		{4, 37},
		{8, 169},
		{16, 721},
		{32, 2977},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VertexCount(tt.rings), "rings=%d", tt.rings)
	}
}

func TestRingCoordsFollowIndexOrder(t *testing.T) {
	assert.Equal(t, []RingCoord{{}}, RingCoords(0))

	for ring := 1; ring <= 4; ring++ {
		coords := RingCoords(ring)
		require.Len(t, coords, 6*ring)
		first := uint32(VertexCount(ring))
		for i, c := range coords {
			assert.Equal(t, first+uint32(i), c.Index())
		}
	}
}

func TestRingCoordPosition(t *testing.T) {
	c := RingCoord{Ring: 2, Line: 1, Segment: 1}
	assert.Equal(t, PositionOf(2, 1, 1, 4), c.Position(4))
}
