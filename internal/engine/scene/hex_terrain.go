package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/renderer"
	"github.com/Faultbox/hexterrain/internal/engine/scene/shaders"
	"github.com/Faultbox/hexterrain/internal/engine/shader"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/texture"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// HexTerrain renders a terrain.BlockGrid with OpenGL. Block meshes live in
// one static VAO per mip level; connectors are streamed every frame.
type HexTerrain struct {
	Shading

	grid       *terrain.BlockGrid
	scales     terrain.Scales
	program    *shader.Program
	heightTex  uint32
	levels     []meshBuffers
	transient  meshBuffers
	projection math.Mat4
	stats      terrain.Stats
	log        *zap.Logger
}

// NewHexTerrain uploads the grid's block meshes and the heightmap.
// Requires a current OpenGL context.
func NewHexTerrain(grid *terrain.BlockGrid, hm *terrain.Heightmap, log *zap.Logger) (*HexTerrain, error) {
	if log == nil {
		log = zap.NewNop()
	}
	program, err := shader.New("hexterrain", shaders.HexTerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("hex terrain: %w", err)
	}

	t := &HexTerrain{
		Shading:    DefaultShading(),
		grid:       grid,
		scales:     normalizeScales(grid.Config().Scales),
		program:    program,
		heightTex:  texture.UploadHeightmap(hm),
		projection: math.Identity(),
		log:        log,
	}

	for _, m := range grid.Meshes() {
		t.levels = append(t.levels, newMeshBuffers(m.Vertices, m.Indices, gl.STATIC_DRAW))
	}
	t.transient = newMeshBuffers(nil, nil, gl.STREAM_DRAW)

	log.Info("hex terrain uploaded", zap.Int("levels", len(t.levels)))
	return t, nil
}

// Reshape stores the projection used by the next frames.
func (t *HexTerrain) Reshape(projection math.Mat4) {
	t.projection = projection
}

// Render draws the grid around the frame camera.
func (t *HexTerrain) Render(frame *Frame) {
	setFrameUniforms(t.program, frame, t.projection, t.scales, t.heightTex, t.Shading)

	cam := localPosition(frame.Camera.Position(), t.scales)
	t.stats = t.grid.Render((*hexSurface)(t), cam)
	gl.BindVertexArray(0)
}

// Stats returns the counters of the last rendered frame.
func (t *HexTerrain) Stats() terrain.Stats {
	return t.stats
}

// Grid returns the block grid being rendered.
func (t *HexTerrain) Grid() *terrain.BlockGrid {
	return t.grid
}

// Destroy releases all GPU resources.
func (t *HexTerrain) Destroy() {
	for i := range t.levels {
		t.levels[i].delete()
	}
	t.levels = nil
	t.transient.delete()
	texture.Delete(&t.heightTex)
	t.program.Delete()
}

// hexSurface is the terrain.Renderer view of a HexTerrain.
type hexSurface HexTerrain

func (s *hexSurface) EnablePrimitiveRestart(index uint32) {
	renderer.EnablePrimitiveRestart(index)
}

func (s *hexSurface) DisablePrimitiveRestart() {
	renderer.DisablePrimitiveRestart()
}

func (s *hexSurface) SetScale(scale math.Vec3) {
	s.program.SetVec3("uScales", scale)
}

func (s *hexSurface) SetOffset(offset math.Vec2) {
	s.program.SetVec2("uOffset", offset)
}

func (s *hexSurface) BindLevel(level int) {
	gl.BindVertexArray(s.levels[level].vao)
	s.program.SetInt("uMipmapLevel", int32(level))
}

func (s *hexSurface) DrawIndexed(mode terrain.Primitive, count int) {
	gl.DrawElementsWithOffset(glMode(mode), int32(count), gl.UNSIGNED_INT, 0)
}

func (s *hexSurface) DrawTransient(mode terrain.Primitive, vertices []math.Vec2, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	gl.BindVertexArray(s.transient.vao)
	s.transient.upload(vertices, indices, gl.STREAM_DRAW)
	gl.DrawElementsWithOffset(glMode(mode), int32(len(indices)), gl.UNSIGNED_INT, 0)
}
