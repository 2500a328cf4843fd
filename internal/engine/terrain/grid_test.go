package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hexterrain/pkg/math"
)

type call struct {
	op     string
	level  int
	count  int
	offset math.Vec2
}

// recorder is a Renderer that remembers the submitted calls.
type recorder struct {
	calls   []call
	restart bool
	scale   math.Vec3
}

func (r *recorder) EnablePrimitiveRestart(index uint32) {
	r.restart = index == RestartIndex
	r.calls = append(r.calls, call{op: "restart_on"})
}

func (r *recorder) DisablePrimitiveRestart() {
	r.restart = false
	r.calls = append(r.calls, call{op: "restart_off"})
}

func (r *recorder) SetScale(scale math.Vec3) { r.scale = scale }

func (r *recorder) SetOffset(offset math.Vec2) {
	r.calls = append(r.calls, call{op: "offset", offset: offset})
}

func (r *recorder) BindLevel(level int) {
	r.calls = append(r.calls, call{op: "bind", level: level})
}

func (r *recorder) DrawIndexed(mode Primitive, count int) {
	r.calls = append(r.calls, call{op: "draw_" + mode.String(), count: count})
}

func (r *recorder) DrawTransient(mode Primitive, vertices []math.Vec2, indices []uint32) {
	r.calls = append(r.calls, call{op: "transient_" + mode.String(), count: len(indices)})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func newGrid(t *testing.T, cfg GridConfig) *BlockGrid {
	t.Helper()
	g, err := NewBlockGrid(cfg, nil)
	require.NoError(t, err)
	return g
}

func TestGridConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GridConfig
		wantErr bool
	}{
		{"default", GridConfig{BlockSize: 32, MipmapLevels: 4, Rings: 4}, false},
		{"max levels", GridConfig{BlockSize: 32, MipmapLevels: 5, Rings: 1}, false},
		{"too many levels", GridConfig{BlockSize: 32, MipmapLevels: 6, Rings: 1}, true},
		{"not power of two", GridConfig{BlockSize: 24, MipmapLevels: 2, Rings: 1}, true},
		{"no levels", GridConfig{BlockSize: 32, MipmapLevels: 0, Rings: 1}, true},
		{"no rings", GridConfig{BlockSize: 32, MipmapLevels: 1, Rings: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := NewBlockGrid(GridConfig{BlockSize: 7, MipmapLevels: 1, Rings: 1}, nil)
	assert.Error(t, err)
}

func TestSelectMipLevel(t *testing.T) {
	tests := []struct {
		distance float32
		want     int
	}{
		{0, 0},
		{1, 0},
		{64, 0},
		{127, 0},
		{128, 1},
		{255, 1},
		{256, 2},
		{512, 3},
		{1e9, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectMipLevel(tt.distance, 32, 4), "distance %v", tt.distance)
	}
}

func TestSelectMipLevelMonotonic(t *testing.T) {
	prev := 0
	for d := float32(0); d < 1e5; d += 7.3 {
		level := SelectMipLevel(d, 16, 5)
		require.GreaterOrEqual(t, level, prev, "distance %v", d)
		require.Less(t, level, 5)
		prev = level
	}
	assert.Equal(t, 4, prev)
}

func TestLayoutMatchesLattice(t *testing.T) {
	g := newGrid(t, GridConfig{BlockSize: 8, MipmapLevels: 3, Rings: 4})
	blocks := g.Layout(math.Vec2{})
	require.Len(t, blocks, 1+3*4*3)

	seen := make(map[Hex]bool)
	for _, b := range blocks {
		assert.False(t, seen[b.Hex], "hex %v placed twice", b.Hex)
		seen[b.Hex] = true
		assert.True(t, b.Center.ApproxEqual(g.lattice.world(b.Hex), eps), "hex %v at %v", b.Hex, b.Center)
	}

	// Ring 1 blocks touch the centre block.
	spacing := 2 * 8 * cos30
	for _, b := range blocks[1:7] {
		assert.InDelta(t, spacing, b.Center.Length(), eps)
	}
	assert.Equal(t, 0, blocks[0].Level)
}

func TestLayoutLevelsGrowOutwards(t *testing.T) {
	g := newGrid(t, GridConfig{BlockSize: 16, MipmapLevels: 4, Rings: 12})
	blocks := g.Layout(math.Vec2{})
	coarsest := 0
	for _, b := range blocks {
		assert.Equal(t, g.SelectMipLevel(b.Center.Length()), b.Level)
		coarsest = max(coarsest, b.Level)
	}
	assert.Equal(t, 0, blocks[0].Level)
	assert.Equal(t, 3, coarsest)
}

func TestOriginFollowsCamera(t *testing.T) {
	cfg := GridConfig{BlockSize: 16, MipmapLevels: 2, Rings: 3}
	fixed := newGrid(t, cfg)
	cfg.FollowCamera = true
	follow := newGrid(t, cfg)

	target := Hex{Q: 2, R: -1}
	cam := follow.lattice.world(target).Add(math.Vec2{X: 3, Y: -5})

	assert.Equal(t, math.Vec2{}, fixed.Origin(cam))
	assert.True(t, follow.Origin(cam).ApproxEqual(follow.lattice.world(target), eps))

	blocks := follow.Layout(cam)
	assert.Equal(t, Hex{}, blocks[0].Hex)
	assert.Equal(t, 0, blocks[0].Level)
}

func TestLatticeNearestRoundTrip(t *testing.T) {
	lt := lattice{spacing: 2 * 32 * cos30}
	for q := -4; q <= 4; q++ {
		for r := -4; r <= 4; r++ {
			h := Hex{q, r}
			assert.Equal(t, h, lt.nearest(lt.world(h)))
		}
	}
}

func TestRingHexMatchesBlockShape(t *testing.T) {
	lt := lattice{spacing: 1}
	for ring := 1; ring <= 5; ring++ {
		for line := range 6 {
			for segment := range ring {
				p := BlockShape.PositionOf(ring, line, segment, float32(ring)/cos30)
				assert.True(t, p.ApproxEqual(lt.world(RingHex(ring, line, segment)), eps))
			}
		}
	}
}

func TestRenderSubmitsBlocksAndConnectors(t *testing.T) {
	g := newGrid(t, GridConfig{BlockSize: 8, MipmapLevels: 2, Rings: 2, Scales: Scales{XZ: 0.5, Y: 40}})
	r := &recorder{}
	stats := g.Render(r, math.Vec3{Y: 20})

	assert.Equal(t, 7, stats.Blocks)
	// Centre to ring: 6 edges, around the ring: 6 edges.
	assert.Equal(t, 12, stats.Connectors)
	assert.Equal(t, 7, r.count("draw_triangle_strip"))
	assert.Equal(t, 12, r.count("transient_triangles"))
	assert.Equal(t, math.Vec3{X: 0.5, Y: 40, Z: 0.5}, r.scale)

	require.NotEmpty(t, r.calls)
	assert.Equal(t, "restart_on", r.calls[0].op)
	assert.Equal(t, "restart_off", r.calls[len(r.calls)-1].op)
	assert.False(t, r.restart)

	// Every draw is preceded by an offset.
	for i, c := range r.calls {
		if c.op == "draw_triangle_strip" {
			require.GreaterOrEqual(t, i, 2)
			assert.Equal(t, "bind", r.calls[i-1].op)
			assert.Equal(t, "offset", r.calls[i-2].op)
			assert.Equal(t, len(g.Meshes()[r.calls[i-1].level].Indices), c.count)
		}
		if c.op == "transient_triangles" {
			assert.Equal(t, "offset", r.calls[i-1].op)
		}
	}
}

func TestRenderConnectsEveryLatticeEdgeOnce(t *testing.T) {
	g := newGrid(t, GridConfig{BlockSize: 16, MipmapLevels: 3, Rings: 5})
	r := &recorder{}
	stats := g.Render(r, math.Vec3{X: 40, Z: -10})

	blocks := g.Layout(math.Vec2{X: 40, Y: -10})
	present := make(map[Hex]bool)
	for _, b := range blocks {
		present[b.Hex] = true
	}
	edges := 0
	for h := range present {
		for dir := range 3 {
			if present[h.Neighbor(dir)] {
				edges++
			}
		}
	}

	assert.Equal(t, len(blocks), stats.Blocks)
	assert.Equal(t, edges, stats.Connectors)
	assert.Equal(t, 9*16+3*4, edges)

	total := 0
	for _, n := range stats.Levels {
		total += n
	}
	assert.Equal(t, stats.Blocks, total)
	assert.Positive(t, stats.ConnectorTriangles)
}

func TestRingsForExtent(t *testing.T) {
	assert.Equal(t, 1, RingsForExtent(32, 32, 32))
	assert.Equal(t, 17, RingsForExtent(1024, 512, 32))
}
