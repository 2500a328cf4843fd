package terrain

import (
	"fmt"
	"slices"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// FanRun is the contiguous run of longer-row points fanned around one
// shorter-row point: triangles (L[First+j], S[Shorter], L[First+j+1])
// for j in [0, Count).
type FanRun struct {
	Shorter int
	First   int
	Count   int
}

// FanPlan splits the l-1 intervals of the longer row between the s points
// of the shorter row. The middle shorter point (two of them for even s)
// absorbs the remainder so the fans stay symmetric. Runs are contiguous and
// cover the longer row exactly once.
func FanPlan(s, l int) []FanRun {
	if s > l {
		panic(fmt.Sprintf("terrain: shorter row (%d) longer than longer row (%d)", s, l))
	}
	if s < 2 {
		return nil
	}

	var separated [2]int
	sepCount := 1
	separated[0] = s / 2
	if s%2 == 0 {
		sepCount = 2
		separated[0], separated[1] = s/2-1, s/2
	}

	intervals := l - 1
	regular := s - sepCount
	perPoint := 0
	if regular > 0 {
		perPoint = intervals / regular
	}
	leftover := intervals - perPoint*regular

	runs := make([]FanRun, s)
	first := 0
	for i := range runs {
		count := perPoint
		switch {
		case sepCount == 1 && i == separated[0]:
			count = leftover
		case sepCount == 2 && i == separated[0]:
			count = leftover / 2
		case sepCount == 2 && i == separated[1]:
			count = leftover - leftover/2
		}
		runs[i] = FanRun{Shorter: i, First: first, Count: count}
		first += count
	}
	return runs
}

// ConnectDiffSizeLines appends the triangles joining two parallel rows of
// points running in the same direction. The rows live in one vertex buffer
// at the given base indices. Every point of both rows ends up in at least
// one triangle and the s+l-2 triangles neither overlap nor leave gaps.
// A single-point shorter row yields no triangles.
func ConnectDiffSizeLines(shorterBase, s, longerBase, l int, indices []uint32) []uint32 {
	runs := FanPlan(s, l)
	for i, run := range runs {
		sh := uint32(shorterBase + run.Shorter)
		for j := range run.Count {
			lo := uint32(longerBase + run.First + j)
			indices = append(indices, lo, sh, lo+1)
		}
		if i+1 < len(runs) {
			// Bridge to the next shorter point across the shared longer point.
			indices = append(indices, sh+1, uint32(longerBase+run.First+run.Count), sh)
		}
	}
	return indices
}

// connectRows triangulates two rows of any relative length. Rows of equal
// length need no fan and produce nothing.
func connectRows(aBase, a, bBase, b int, indices []uint32) []uint32 {
	switch {
	case a < b:
		return ConnectDiffSizeLines(aBase, a, bBase, b, indices)
	case a > b:
		return ConnectDiffSizeLines(bBase, b, aBase, a, indices)
	default:
		return indices
	}
}

// linePoints returns the ring+1 points of one line of a block ring,
// corners included.
func linePoints(ring, line int, step float32) []math.Vec2 {
	distance := float32(ring) * step
	points := make([]math.Vec2, ring+1)
	for segment := range points {
		points[segment] = PositionOf(ring, line, segment, distance)
	}
	return points
}

// FacingLine returns the vertex line of a block that faces its neighbour in
// lattice direction dir.
func FacingLine(dir int) int {
	return mod6(dir + 5)
}

// BuildConnector builds the geometry between block b1 and its neighbour b2,
// which lies in lattice direction dir from b1. The gap runs from each
// block's outermost vertex ring to the shared edge; the edge row is taken
// from the coarser block. All rows run from b1's corner FacingLine(dir)
// towards the next corner.
func BuildConnector(blockSize int, b1, b2 BlockInstance, dir int) Connector {
	line1 := FacingLine(dir)
	line2 := mod6(line1 + 3)
	ring1 := blockSize >> b1.Level
	ring2 := blockSize >> b2.Level
	if ring1 < 2 || ring2 < 2 {
		panic(fmt.Sprintf("terrain: block size %d has no mip levels %d/%d", blockSize, b1.Level, b2.Level))
	}
	step1 := float32(int(1) << b1.Level)
	step2 := float32(int(1) << b2.Level)

	inner1 := linePoints(ring1-1, line1, step1)
	inner2 := linePoints(ring2-1, line2, step2)
	slices.Reverse(inner2)

	dist := b2.Center.Sub(b1.Center)
	var outer []math.Vec2
	var offset math.Vec2
	if b1.Level > b2.Level {
		outer = linePoints(ring1, line1, step1)
		for i := range inner2 {
			inner2[i] = inner2[i].Add(dist)
		}
		offset = b1.Center
	} else {
		outer = linePoints(ring2, line2, step2)
		slices.Reverse(outer)
		for i := range inner1 {
			inner1[i] = inner1[i].Sub(dist)
		}
		offset = b2.Center
	}

	in1, out, in2 := len(inner1), len(outer), len(inner2)
	vertices := make([]math.Vec2, 0, in1+out+in2)
	vertices = append(vertices, inner1...)
	vertices = append(vertices, outer...)
	vertices = append(vertices, inner2...)

	var indices []uint32
	indices = connectRows(0, in1, in1, out, indices)
	indices = connectRows(in1, out, in1+out, in2, indices)

	return Connector{
		Offset:   offset,
		Vertices: vertices,
		Indices:  indices,
	}
}
