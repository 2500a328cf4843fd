package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hexterrain/internal/engine/shader"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/texture"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Shading holds the look settings shared by both terrain renderers.
type Shading struct {
	FogColor   math.Vec3
	FogDensity float32
	ShowLevels bool // tint geometry by LOD level
}

// DefaultShading returns daylight fog with level tinting off.
func DefaultShading() Shading {
	return Shading{
		FogColor:   SkyColor(1),
		FogDensity: 0.0004,
	}
}

// normalizeScales replaces unusable scales with 1.
func normalizeScales(s terrain.Scales) terrain.Scales {
	if s.XZ <= 0 {
		s.XZ = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

// localPosition converts a world position to terrain mesh units. Heights
// stay in world units.
func localPosition(p math.Vec3, s terrain.Scales) math.Vec3 {
	return math.Vec3{X: p.X / s.XZ, Y: p.Y, Z: p.Z / s.XZ}
}

// localViewProjection maps mesh-unit positions straight to clip space.
func localViewProjection(projection, view math.Mat4, s terrain.Scales) math.Mat4 {
	return projection.Mul(view).Mul(math.Scale(s.XZ, 1, s.XZ))
}

// setFrameUniforms uploads the uniforms every terrain draw of a frame shares.
func setFrameUniforms(p *shader.Program, frame *Frame, projection math.Mat4, scales terrain.Scales, heightTex uint32, sh Shading) {
	p.Use()
	p.SetMat4("uProjectionMatrix", projection)
	p.SetMat4("uCameraMatrix", frame.Camera.ViewMatrix())
	p.SetVec3("uCameraPos", frame.Camera.Position())
	p.SetVec3("uScales", scales.Vec3())
	p.SetVec4("uSunData", frame.Sun.Vec4())
	p.SetVec3("uFogColor", sh.FogColor)
	p.SetFloat("uFogDensity", sh.FogDensity)
	p.SetInt("uShowLevels", boolToInt(sh.ShowLevels))

	texture.Bind(heightTex, 0)
	p.SetInt("uHeightMap", 0)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func glMode(p terrain.Primitive) uint32 {
	if p == terrain.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

// meshBuffers is one VAO with a vec2 position stream and an index buffer.
type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int
}

func newMeshBuffers(vertices []math.Vec2, indices []uint32, usage uint32) meshBuffers {
	var b meshBuffers
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	b.upload(vertices, indices, usage)
	gl.BindVertexArray(0)
	return b
}

// upload replaces the buffer contents. The VAO must be bound.
func (b *meshBuffers) upload(vertices []math.Vec2, indices []uint32, usage uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*2*4, gl.Ptr(vertices), usage)
	}
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), usage)
	}
	b.count = len(indices)
}

func (b *meshBuffers) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}
