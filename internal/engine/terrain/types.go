// Package terrain builds the hexagonal-ring LOD terrain: per-mip-level block
// meshes, the connector geometry between neighbouring blocks and the block
// grid that places them around the viewer.
package terrain

import (
	"github.com/Faultbox/hexterrain/pkg/math"
)

// RestartIndex is the primitive-restart sentinel used by block index buffers.
const RestartIndex uint32 = 0xFFFFFFFF

// Primitive selects how an index buffer is assembled into triangles.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	default:
		return "unknown"
	}
}

// BlockMesh is the geometry of one block at a fixed mipmap level.
// It is built once and shared by every block instance of that level.
type BlockMesh struct {
	Level     int
	RingCount int
	Vertices  []math.Vec2
	Indices   []uint32 // triangle strip, runs separated by RestartIndex
}

// BlockInstance places a block mesh in world space for one frame.
type BlockInstance struct {
	Center math.Vec2 // world XZ
	Level  int
	Hex    Hex // lattice cell relative to the grid origin
}

// Connector is the transient geometry stitching two neighbouring blocks.
// Vertices are relative to Offset.
type Connector struct {
	Offset   math.Vec2
	Vertices []math.Vec2
	Indices  []uint32 // triangle list
}

// Triangles returns the number of triangles in the connector.
func (c *Connector) Triangles() int {
	return len(c.Indices) / 3
}

// Stats summarizes one grid render pass.
type Stats struct {
	Blocks             int
	Connectors         int
	ConnectorTriangles int
	Levels             []int // blocks drawn per mipmap level
}

// Scales converts mesh units to world units: XZ spacing and height.
type Scales struct {
	XZ float32
	Y  float32
}

// Vec3 returns the scales in the (x, y, z) layout the shaders expect.
func (s Scales) Vec3() math.Vec3 {
	return math.Vec3{X: s.XZ, Y: s.Y, Z: s.XZ}
}

// Renderer is the draw surface the grid submits to. Calls must be made in
// order: every Set* call affects the draws issued after it.
type Renderer interface {
	EnablePrimitiveRestart(index uint32)
	DisablePrimitiveRestart()
	SetScale(scale math.Vec3)
	SetOffset(offset math.Vec2)
	BindLevel(level int)
	DrawIndexed(mode Primitive, count int)
	DrawTransient(mode Primitive, vertices []math.Vec2, indices []uint32)
}
