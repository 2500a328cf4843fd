package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/collision"
	"github.com/Faultbox/hexterrain/internal/engine/scene/shaders"
	"github.com/Faultbox/hexterrain/internal/engine/shader"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/terrain/cdlod"
	"github.com/Faultbox/hexterrain/internal/engine/texture"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// CDLODTerrain renders a cdlod.QuadTree by drawing one shared grid mesh per
// selected patch.
type CDLODTerrain struct {
	Shading

	tree       *cdlod.QuadTree
	mesh       cdlod.GridMesh
	scales     terrain.Scales
	program    *shader.Program
	heightTex  uint32
	buffers    meshBuffers
	projection math.Mat4
	stats      cdlod.Stats
	log        *zap.Logger
}

// NewCDLODTerrain uploads the patch grid mesh and the heightmap. Requires a
// current OpenGL context.
func NewCDLODTerrain(tree *cdlod.QuadTree, patchSize int, hm *terrain.Heightmap, scales terrain.Scales, log *zap.Logger) (*CDLODTerrain, error) {
	if log == nil {
		log = zap.NewNop()
	}
	program, err := shader.New("cdlod", shaders.CDLODVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("cdlod terrain: %w", err)
	}

	mesh := cdlod.BuildGridMesh(patchSize)
	t := &CDLODTerrain{
		Shading:    DefaultShading(),
		tree:       tree,
		mesh:       mesh,
		scales:     normalizeScales(scales),
		program:    program,
		heightTex:  texture.UploadHeightmap(hm),
		buffers:    newMeshBuffers(mesh.Vertices, mesh.Indices, gl.STATIC_DRAW),
		projection: math.Identity(),
		log:        log,
	}

	log.Info("cdlod terrain uploaded",
		zap.Int("patchSize", patchSize),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)))
	return t, nil
}

// Reshape stores the projection used by the next frames.
func (t *CDLODTerrain) Reshape(projection math.Mat4) {
	t.projection = projection
}

// Render selects and draws the patches visible from the frame camera. The
// traversal runs in mesh units, so the frustum is rebuilt for them.
func (t *CDLODTerrain) Render(frame *Frame) {
	setFrameUniforms(t.program, frame, t.projection, t.scales, t.heightTex, t.Shading)
	gl.BindVertexArray(t.buffers.vao)

	frustum := collision.FrustumFromMatrix(localViewProjection(t.projection, frame.Camera.ViewMatrix(), t.scales))
	cam := localPosition(frame.Camera.Position(), t.scales)
	t.stats = t.tree.Render(cam, &frustum, t)

	gl.BindVertexArray(0)
}

// RenderPatch draws the requested quadrants of one patch.
func (t *CDLODTerrain) RenderPatch(p cdlod.Patch) {
	t.program.SetVec2("uOffset", p.Offset)
	t.program.SetFloat("uScale", p.Scale)
	t.program.SetInt("uMipmapLevel", int32(p.Level))
	for _, r := range t.mesh.RangesFor(p.Quadrants) {
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(r.Count), gl.UNSIGNED_INT, uintptr(r.Start*4))
	}
}

// Stats returns the counters of the last rendered frame.
func (t *CDLODTerrain) Stats() cdlod.Stats {
	return t.stats
}

// Destroy releases all GPU resources.
func (t *CDLODTerrain) Destroy() {
	t.buffers.delete()
	texture.Delete(&t.heightTex)
	t.program.Delete()
}
