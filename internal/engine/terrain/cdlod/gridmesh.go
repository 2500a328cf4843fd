package cdlod

import (
	"fmt"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// IndexRange is a slice of an index buffer.
type IndexRange struct {
	Start int
	Count int
}

// GridMesh is a dim x dim quad grid centred on the origin. Its triangle
// list is grouped by quadrant so any subset can be drawn.
type GridMesh struct {
	Dim      int
	Vertices []math.Vec2
	Indices  []uint32
	Ranges   [4]IndexRange // TL, TR, BL, BR
}

// BuildGridMesh builds the patch mesh. Quadrants follow the child layout:
// "top" is +Z, "left" is -X.
func BuildGridMesh(dim int) GridMesh {
	if dim < 2 || dim%2 != 0 {
		panic(fmt.Sprintf("cdlod: grid dimension must be even and >= 2, got %d", dim))
	}
	half := dim / 2
	stride := dim + 1

	vertices := make([]math.Vec2, 0, stride*stride)
	for z := 0; z <= dim; z++ {
		for x := 0; x <= dim; x++ {
			vertices = append(vertices, math.Vec2{X: float32(x - half), Y: float32(z - half)})
		}
	}

	// Quad origins per quadrant: x from left, z from top.
	origins := [4][2]int{
		{0, half},    // TL
		{half, half}, // TR
		{0, 0},       // BL
		{half, 0},    // BR
	}

	mesh := GridMesh{Dim: dim, Vertices: vertices}
	mesh.Indices = make([]uint32, 0, dim*dim*6)
	for q, o := range origins {
		start := len(mesh.Indices)
		for z := o[1]; z < o[1]+half; z++ {
			for x := o[0]; x < o[0]+half; x++ {
				i0 := uint32(z*stride + x)
				i1 := i0 + 1
				i2 := i0 + uint32(stride)
				i3 := i2 + 1
				mesh.Indices = append(mesh.Indices, i0, i2, i1, i1, i2, i3)
			}
		}
		mesh.Ranges[q] = IndexRange{Start: start, Count: len(mesh.Indices) - start}
	}
	return mesh
}

// RangesFor returns the index ranges for a quadrant set, merging adjacent
// ranges so a full patch is a single draw.
func (m *GridMesh) RangesFor(q Quadrant) []IndexRange {
	var out []IndexRange
	for k, r := range m.Ranges {
		if q&(1<<k) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Start+out[n-1].Count == r.Start {
			out[n-1].Count += r.Count
			continue
		}
		out = append(out, r)
	}
	return out
}
