package terrain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hexterrain/pkg/math"
)

func TestFanPlanCoversLongerRow(t *testing.T) {
	for s := 2; s <= 24; s++ {
		for l := s; l <= 50; l++ {
			runs := FanPlan(s, l)
			require.Len(t, runs, s)

			next := 0
			for i, run := range runs {
				assert.Equal(t, i, run.Shorter)
				assert.Equal(t, next, run.First, "s=%d l=%d run %d not contiguous", s, l, i)
				assert.GreaterOrEqual(t, run.Count, 0)
				next += run.Count
			}
			assert.Equal(t, l-1, next, "s=%d l=%d", s, l)
		}
	}
}

func TestFanPlanGivesRemainderToMiddle(t *testing.T) {
	// 8 intervals over 3 points: 4 per outer point, none left for the middle.
	assert.Equal(t, []FanRun{{0, 0, 4}, {1, 4, 0}, {2, 4, 4}}, FanPlan(3, 9))
	// 9 intervals over 4 points: outer points get 4 each, the middle pair
	// shares the remaining 1.
	assert.Equal(t, []FanRun{{0, 0, 4}, {1, 4, 0}, {2, 4, 1}, {3, 5, 4}}, FanPlan(4, 10))
	// Two points split everything.
	assert.Equal(t, []FanRun{{0, 0, 2}, {1, 2, 3}}, FanPlan(2, 6))
}

func TestFanPlanDegenerate(t *testing.T) {
	assert.Nil(t, FanPlan(1, 5))
	assert.Panics(t, func() { FanPlan(5, 4) })
}

func TestConnectDiffSizeLines(t *testing.T) {
	for s := 2; s <= 17; s++ {
		for l := s; l <= 40; l++ {
			t.Run(fmt.Sprintf("s%d_l%d", s, l), func(t *testing.T) {
				shorterBase, longerBase := 100, 0
				indices := ConnectDiffSizeLines(shorterBase, s, longerBase, l, nil)
				require.Len(t, indices, 3*(s+l-2))

				shorterSeen := make(map[int]bool)
				longerSeen := make(map[int]bool)
				for _, idx := range indices {
					i := int(idx)
					switch {
					case i >= shorterBase && i < shorterBase+s:
						shorterSeen[i-shorterBase] = true
					case i >= longerBase && i < longerBase+l:
						longerSeen[i-longerBase] = true
					default:
						t.Fatalf("index %d out of both rows", i)
					}
				}
				assert.Len(t, shorterSeen, s)
				assert.Len(t, longerSeen, l)

				// Rows on y=0 (shorter) and y=1 (longer) spanning [0, 1]: a
				// valid strip has only counter-clockwise triangles and
				// covers exactly the unit square.
				pos := func(i int) math.Vec2 {
					if i >= shorterBase {
						return math.Vec2{X: float32(i-shorterBase) / float32(s-1)}
					}
					return math.Vec2{X: float32(i) / float32(l-1), Y: 1}
				}
				var area float32
				for k := 0; k < len(indices); k += 3 {
					a, b, c := pos(int(indices[k])), pos(int(indices[k+1])), pos(int(indices[k+2]))
					cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
					require.Greater(t, cross, float32(0), "triangle %d is degenerate or flipped", k/3)
					area += cross / 2
				}
				assert.InDelta(t, 1.0, area, 1e-3)
			})
		}
	}
}

func TestConnectDiffSizeLinesSinglePoint(t *testing.T) {
	assert.Empty(t, ConnectDiffSizeLines(0, 1, 1, 8, nil))
}

func TestConnectRowsEqualLengthIsEmpty(t *testing.T) {
	assert.Empty(t, connectRows(0, 5, 5, 5, nil))
	assert.Len(t, connectRows(0, 6, 6, 5, nil), 3*9)
}

func TestFacingLine(t *testing.T) {
	// Block direction k points at the midpoint of vertex line (k+5)%6.
	for dir := range 6 {
		line := FacingLine(dir)
		mid := PositionOf(1, line, 0, 1).Add(PositionOf(1, line, 1, 1)).Scale(0.5)
		want := BlockShape.Corner(dir).Normalize().Scale(cos30)
		assert.True(t, mid.ApproxEqual(want, eps), "dir %d: %v != %v", dir, mid, want)
	}
}

func neighbours(bs int, dir, level1, level2 int) (BlockInstance, BlockInstance) {
	lt := lattice{spacing: 2 * float32(bs) * cos30}
	b1 := BlockInstance{Center: math.Vec2{X: 10, Y: -4}, Level: level1}
	h := HexDirections[dir]
	b2 := BlockInstance{Center: b1.Center.Add(lt.world(h)), Level: level2, Hex: h}
	return b1, b2
}

func TestBuildConnectorSameLevel(t *testing.T) {
	const bs = 32
	for dir := range 6 {
		b1, b2 := neighbours(bs, dir, 0, 0)
		conn := BuildConnector(bs, b1, b2, dir)

		require.Len(t, conn.Vertices, 32+33+32)
		assert.Equal(t, (32+33-2)*2, conn.Triangles())
		assert.Equal(t, b2.Center, conn.Offset)

		// The edge row lies on the bisector of the two centres.
		for _, v := range conn.Vertices[32 : 32+33] {
			w := v.Add(conn.Offset)
			assert.InDelta(t, w.Distance(b1.Center), w.Distance(b2.Center), 1e-2)
		}
		// Inner rows sit one step inside each block.
		first := conn.Vertices[0].Add(conn.Offset)
		assert.InDelta(t, bs-1, first.Distance(b1.Center), 1e-2)
		last := conn.Vertices[len(conn.Vertices)-1].Add(conn.Offset)
		assert.InDelta(t, bs-1, last.Distance(b2.Center), 1e-2)
	}
}

func TestBuildConnectorRowsRunTheSameWay(t *testing.T) {
	const bs = 16
	b1, b2 := neighbours(bs, 2, 0, 1)
	conn := BuildConnector(bs, b1, b2, 2)

	in1 := conn.Vertices[:16]
	outer := conn.Vertices[16 : 16+9]
	in2 := conn.Vertices[16+9:]
	require.Len(t, in2, 8)

	assert.Less(t, in1[0].Distance(outer[0]), float32(3))
	assert.Less(t, in2[0].Distance(outer[0]), float32(3))
	assert.Less(t, in1[len(in1)-1].Distance(outer[len(outer)-1]), float32(3))
	assert.Less(t, in2[len(in2)-1].Distance(outer[len(outer)-1]), float32(3))
}

func TestBuildConnectorCoarserSourceProvidesEdge(t *testing.T) {
	const bs = 32

	// Block 2 coarser: edge row has 17 points and the connector sits on block 2.
	b1, b2 := neighbours(bs, 1, 0, 1)
	conn := BuildConnector(bs, b1, b2, 1)
	require.Len(t, conn.Vertices, 32+17+16)
	assert.Equal(t, b2.Center, conn.Offset)
	assert.Equal(t, (17+32-2)+(16+17-2), conn.Triangles())

	// Block 1 coarser: edge row comes from block 1.
	b1, b2 = neighbours(bs, 4, 2, 0)
	conn = BuildConnector(bs, b1, b2, 4)
	require.Len(t, conn.Vertices, 8+9+32)
	assert.Equal(t, b1.Center, conn.Offset)
	assert.Equal(t, (8+9-2)+(9+32-2), conn.Triangles())

	for _, idx := range conn.Indices {
		assert.Less(t, int(idx), len(conn.Vertices))
	}
}

func TestBuildConnectorPanicsOnInvalidLevel(t *testing.T) {
	b1, b2 := neighbours(8, 0, 0, 3)
	assert.Panics(t, func() { BuildConnector(8, b1, b2, 0) })
}
