package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBlockMeshesCounts(t *testing.T) {
	meshes := BuildBlockMeshes(32, 4)
	require.Len(t, meshes, 4)

	wantVertices := []int{2977, 721, 169, 37}
	for m, mesh := range meshes {
		r := 32 >> m
		assert.Equal(t, m, mesh.Level)
		assert.Equal(t, r, mesh.RingCount)
		assert.Len(t, mesh.Vertices, wantVertices[m], "level %d", m)
		assert.Len(t, mesh.Indices, 6*(r-1)*(r+2), "level %d", m)
	}
}

func TestBlockMeshVerticesMatchAddressing(t *testing.T) {
	for level := range 3 {
		mesh := BuildBlockMesh(16, level)
		step := float32(int(1) << level)
		for ring := 1; ring < mesh.RingCount; ring++ {
			for line := range 6 {
				for segment := range ring {
					v := mesh.Vertices[FlatIndex(ring, line, segment)]
					want := PositionOf(ring, line, segment, float32(ring)*step)
					assert.True(t, v.ApproxEqual(want, eps))
				}
			}
		}
		// Outermost ring reaches blockSize - step at every level.
		corner := mesh.Vertices[FlatIndex(mesh.RingCount-1, 0, 0)]
		assert.InDelta(t, 16-step, corner.Length(), eps)
	}
}

func TestBlockMeshIndicesInRange(t *testing.T) {
	mesh := BuildBlockMesh(8, 0)
	restarts := 0
	used := make(map[uint32]bool)
	for _, idx := range mesh.Indices {
		if idx == RestartIndex {
			restarts++
			continue
		}
		require.Less(t, int(idx), len(mesh.Vertices))
		used[idx] = true
	}
	// One restart per (ring, line) run.
	assert.Equal(t, 6*(mesh.RingCount-1), restarts)
	assert.Len(t, used, len(mesh.Vertices), "every vertex is referenced")
	assert.Equal(t, RestartIndex, mesh.Indices[len(mesh.Indices)-1])
}

func TestBlockMeshFirstRun(t *testing.T) {
	mesh := BuildBlockMesh(4, 0)
	// Ring 1, line 0: (1,0,0), centre, (1,1,0), restart.
	assert.Equal(t, []uint32{1, 0, 2, RestartIndex}, mesh.Indices[:4])
	// Ring 1, line 5 wraps to line 0.
	assert.Equal(t, []uint32{6, 0, 1, RestartIndex}, mesh.Indices[20:24])
}

func TestBuildBlockMeshPanicsOnTooManyLevels(t *testing.T) {
	assert.Panics(t, func() { BuildBlockMesh(8, 3) })
	assert.Panics(t, func() { BuildBlockMesh(8, -1) })
	assert.NotPanics(t, func() { BuildBlockMesh(8, 2) })
}
