package terrain

import (
	"fmt"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// BuildBlockMesh builds the block geometry for one mipmap level. Rings are
// spaced 1<<level apart, so every level covers the same footprint.
func BuildBlockMesh(blockSize, level int) BlockMesh {
	ringCount := blockSize >> level
	if level < 0 || ringCount < 2 {
		panic(fmt.Sprintf("terrain: block size %d has no mip level %d", blockSize, level))
	}
	step := float32(int(1) << level)

	vertices := make([]math.Vec2, 0, VertexCount(ringCount))
	vertices = append(vertices, math.Vec2{})
	for ring := 1; ring < ringCount; ring++ {
		distance := float32(ring) * step
		for line := range 6 {
			for segment := range ring {
				vertices = append(vertices, PositionOf(ring, line, segment, distance))
			}
		}
	}

	// Each (ring, line) run is a strip of 2*ring+1 indices plus a restart.
	indices := make([]uint32, 0, 6*(ringCount-1)*(ringCount+2))
	for ring := 1; ring < ringCount; ring++ {
		for line := range 6 {
			for segment := range ring - 1 {
				indices = append(indices,
					FlatIndex(ring, line, segment),
					FlatIndex(ring-1, line, segment))
			}
			indices = append(indices,
				FlatIndex(ring, line, ring-1),
				FlatIndex(ring-1, line+1, 0),
				FlatIndex(ring, line+1, 0),
				RestartIndex)
		}
	}

	return BlockMesh{
		Level:     level,
		RingCount: ringCount,
		Vertices:  vertices,
		Indices:   indices,
	}
}

// BuildBlockMeshes builds the meshes for mip levels [0, levels).
func BuildBlockMeshes(blockSize, levels int) []BlockMesh {
	meshes := make([]BlockMesh, levels)
	for m := range levels {
		meshes[m] = BuildBlockMesh(blockSize, m)
	}
	return meshes
}
