package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// GridConfig configures a BlockGrid.
type GridConfig struct {
	BlockSize    int  // vertex rings per block at level 0, power of two
	MipmapLevels int  // number of block mesh levels
	Rings        int  // block rings around the centre block, centre included
	FollowCamera bool // snap the grid origin to the lattice cell under the camera
	Scales       Scales
}

// Validate checks that every mip level keeps at least two vertex rings.
func (c GridConfig) Validate() error {
	if c.BlockSize < 2 || c.BlockSize&(c.BlockSize-1) != 0 {
		return fmt.Errorf("block size %d is not a power of two >= 2", c.BlockSize)
	}
	if c.MipmapLevels < 1 || c.BlockSize>>(c.MipmapLevels-1) < 2 {
		return fmt.Errorf("%d mipmap levels are too many for block size %d", c.MipmapLevels, c.BlockSize)
	}
	if c.Rings < 1 {
		return fmt.Errorf("grid needs at least one ring, got %d", c.Rings)
	}
	return nil
}

// RingsForExtent returns how many block rings cover a heightmap of w x h
// texels.
func RingsForExtent(w, h, blockSize int) int {
	return max(w, h)/(2*blockSize) + 1
}

// BlockGrid lays out blocks in concentric hexagonal rings and draws them
// with their connectors.
type BlockGrid struct {
	cfg     GridConfig
	meshes  []BlockMesh
	lattice lattice
	log     *zap.Logger

	blocks []BlockInstance
	index  map[Hex]int
}

// NewBlockGrid builds the block meshes for every mip level.
func NewBlockGrid(cfg GridConfig, log *zap.Logger) (*BlockGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Scales == (Scales{}) {
		cfg.Scales = Scales{XZ: 1, Y: 1}
	}

	g := &BlockGrid{
		cfg:     cfg,
		meshes:  BuildBlockMeshes(cfg.BlockSize, cfg.MipmapLevels),
		lattice: lattice{spacing: 2 * float32(cfg.BlockSize) * cos30},
		log:     log,
		index:   make(map[Hex]int),
	}

	for _, m := range g.meshes {
		log.Debug("block mesh built",
			zap.Int("level", m.Level),
			zap.Int("rings", m.RingCount),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("indices", len(m.Indices)))
	}
	log.Info("block grid ready",
		zap.Int("blockSize", cfg.BlockSize),
		zap.Int("levels", cfg.MipmapLevels),
		zap.Int("rings", cfg.Rings),
		zap.Bool("followCamera", cfg.FollowCamera))

	return g, nil
}

// Config returns the grid configuration.
func (g *BlockGrid) Config() GridConfig {
	return g.cfg
}

// Meshes returns the shared per-level block meshes.
func (g *BlockGrid) Meshes() []BlockMesh {
	return g.meshes
}

// SelectMipLevel picks the block level for a block at the given distance
// from the camera. Level 0 is used within 2*blockSize; beyond that the
// level grows with log2 of the distance up to the coarsest level.
func (g *BlockGrid) SelectMipLevel(distance float32) int {
	return SelectMipLevel(distance, g.cfg.BlockSize, g.cfg.MipmapLevels)
}

// SelectMipLevel is the level rule for an arbitrary block size and level count.
func SelectMipLevel(distance float32, blockSize, levels int) int {
	near := 2 * float32(blockSize)
	if distance <= near {
		return 0
	}
	level := int(math32.Floor(math32.Log2(distance) - math32.Log2(near)))
	return min(max(level, 0), levels-1)
}

// Origin returns the world XZ of the centre block for a camera position.
func (g *BlockGrid) Origin(cam math.Vec2) math.Vec2 {
	if !g.cfg.FollowCamera {
		return math.Vec2{}
	}
	return g.lattice.world(g.lattice.nearest(cam))
}

// Layout places the blocks for one frame: the centre block, then ring by
// ring, line by line, segment by segment.
func (g *BlockGrid) Layout(cam math.Vec2) []BlockInstance {
	return g.layout(cam, nil)
}

func (g *BlockGrid) layout(cam math.Vec2, blocks []BlockInstance) []BlockInstance {
	origin := g.Origin(cam)
	blocks = append(blocks[:0], BlockInstance{
		Center: origin,
		Level:  g.SelectMipLevel(origin.Distance(cam)),
	})

	spacing := 2 * float32(g.cfg.BlockSize)
	for ring := 1; ring < g.cfg.Rings; ring++ {
		distance := spacing * float32(ring)
		for line := range 6 {
			for segment := range ring {
				center := origin.Add(BlockShape.PositionOf(ring, line, segment, distance))
				blocks = append(blocks, BlockInstance{
					Center: center,
					Level:  g.SelectMipLevel(center.Distance(cam)),
					Hex:    RingHex(ring, line, segment),
				})
			}
		}
	}
	return blocks
}

// Render draws every block of the current layout, each followed by the
// connectors to its already drawn neighbours.
func (g *BlockGrid) Render(r Renderer, camPos math.Vec3) Stats {
	g.blocks = g.layout(camPos.XZ(), g.blocks)
	clear(g.index)

	stats := Stats{Levels: make([]int, g.cfg.MipmapLevels)}

	r.EnablePrimitiveRestart(RestartIndex)
	r.SetScale(g.cfg.Scales.Vec3())

	for i, b := range g.blocks {
		r.SetOffset(b.Center)
		r.BindLevel(b.Level)
		r.DrawIndexed(TriangleStrip, len(g.meshes[b.Level].Indices))
		stats.Blocks++
		stats.Levels[b.Level]++

		for dir := range 6 {
			j, ok := g.index[b.Hex.Neighbor(dir)]
			if !ok {
				continue
			}
			conn := BuildConnector(g.cfg.BlockSize, b, g.blocks[j], dir)
			if len(conn.Indices) == 0 {
				continue
			}
			r.SetOffset(conn.Offset)
			r.DrawTransient(Triangles, conn.Vertices, conn.Indices)
			stats.Connectors++
			stats.ConnectorTriangles += conn.Triangles()
		}
		g.index[b.Hex] = i
	}

	r.DisablePrimitiveRestart()
	return stats
}
