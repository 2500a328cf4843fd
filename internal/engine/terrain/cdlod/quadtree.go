// Package cdlod implements a continuous distance-dependent LOD quadtree:
// nodes outside the view frustum are skipped, nodes near the camera
// delegate to their children and render whatever the children do not.
package cdlod

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/collision"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Quadrant is a bit set of node quarters.
type Quadrant uint8

const (
	TopLeft Quadrant = 1 << iota
	TopRight
	BottomLeft
	BottomRight

	AllQuadrants = TopLeft | TopRight | BottomLeft | BottomRight
)

// noChild marks a missing child slot.
const noChild int32 = -1

// Node is one quadtree cell. Children are arena indices in TL, TR, BL, BR
// order, all noChild for leaves.
type Node struct {
	X, Z     int32 // centre
	MinY     float32
	MaxY     float32
	Level    int
	Size     int32 // patchSize << Level
	Children [4]int32
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return n.Children[0] == noChild
}

// BoundingBox returns the node's world-space bounds.
func (n *Node) BoundingBox() collision.BoundingBox {
	half := float32(n.Size) / 2
	return collision.BoundingBox{
		Min: math.Vec3{X: float32(n.X) - half, Y: n.MinY, Z: float32(n.Z) - half},
		Max: math.Vec3{X: float32(n.X) + half, Y: n.MaxY, Z: float32(n.Z) + half},
	}
}

// Patch is one draw request: the grid mesh scaled to a node, restricted to
// the listed quadrants.
type Patch struct {
	Offset    math.Vec2
	Scale     float32
	Level     int
	Quadrants Quadrant
}

// PatchRenderer draws selected patches in submission order.
type PatchRenderer interface {
	RenderPatch(p Patch)
}

// Stats summarizes one traversal.
type Stats struct {
	Visited int
	Culled  int
	Patches int
}

// Options configures a QuadTree.
type Options struct {
	PatchSize    int // grid mesh resolution, quads per side
	Depth        int // level of the root node
	Heightmap    *terrain.Heightmap
	HeightScale  float32
	RefineBounds bool // compute node height bounds from Heightmap
}

// QuadTree is a static quadtree stored as a node arena. Node 0 is the root.
type QuadTree struct {
	nodes     []Node
	patchSize int32
	log       *zap.Logger
}

// NewQuadTree builds the full tree. The root is centred on the origin and
// covers PatchSize << Depth units per side.
func NewQuadTree(opts Options, log *zap.Logger) (*QuadTree, error) {
	if opts.PatchSize < 2 || opts.PatchSize%2 != 0 {
		return nil, fmt.Errorf("patch size must be an even number >= 2, got %d", opts.PatchSize)
	}
	if opts.Depth < 0 || opts.Depth > 10 {
		return nil, fmt.Errorf("quadtree depth %d out of range [0, 10]", opts.Depth)
	}
	if log == nil {
		log = zap.NewNop()
	}

	// A full tree of depth d has (4^(d+1) - 1) / 3 nodes.
	count := ((1 << (2 * (opts.Depth + 1))) - 1) / 3
	t := &QuadTree{
		nodes:     make([]Node, 0, count),
		patchSize: int32(opts.PatchSize),
		log:       log,
	}
	t.build(0, 0, opts.Depth)

	if opts.RefineBounds && opts.Heightmap != nil {
		t.refine(0, opts.Heightmap, opts.HeightScale)
	}

	root := t.nodes[0]
	log.Info("quadtree built",
		zap.Int("nodes", len(t.nodes)),
		zap.Int("depth", opts.Depth),
		zap.Int32("size", root.Size),
		zap.Float32("minY", root.MinY),
		zap.Float32("maxY", root.MaxY))

	return t, nil
}

func (t *QuadTree) build(x, z int32, level int) int32 {
	idx := int32(len(t.nodes))
	size := t.patchSize << level
	t.nodes = append(t.nodes, Node{
		X:        x,
		Z:        z,
		Level:    level,
		Size:     size,
		Children: [4]int32{noChild, noChild, noChild, noChild},
	})
	if level == 0 {
		return idx
	}

	q := size / 4
	children := [4]int32{
		t.build(x-q, z+q, level-1),
		t.build(x+q, z+q, level-1),
		t.build(x-q, z-q, level-1),
		t.build(x+q, z-q, level-1),
	}
	t.nodes[idx].Children = children
	return idx
}

// refine fills height bounds bottom-up. The heightmap is centred on the
// origin with one texel per world unit.
func (t *QuadTree) refine(i int32, hm *terrain.Heightmap, scale float32) (lo, hi float32) {
	n := &t.nodes[i]
	if n.Leaf() {
		half := n.Size / 2
		x0 := int(n.X-half) + hm.Width/2
		z0 := int(n.Z-half) + hm.Height/2
		lo, hi = hm.MinMax(x0, z0, x0+int(n.Size), z0+int(n.Size))
		lo, hi = lo*scale, hi*scale
	} else {
		for k, c := range n.Children {
			clo, chi := t.refine(c, hm, scale)
			if k == 0 {
				lo, hi = clo, chi
				continue
			}
			lo, hi = min(lo, clo), max(hi, chi)
		}
	}
	n.MinY, n.MaxY = lo, hi
	return lo, hi
}

// Nodes exposes the arena, root first.
func (t *QuadTree) Nodes() []Node {
	return t.nodes
}

// Root returns the root node.
func (t *QuadTree) Root() *Node {
	return &t.nodes[0]
}

// Render walks the tree from the root and submits the selected patches.
func (t *QuadTree) Render(cam math.Vec3, frustum *collision.Frustum, r PatchRenderer) Stats {
	var stats Stats
	t.render(0, cam, frustum, r, &stats)
	return stats
}

// Select returns the patches Render would submit.
func (t *QuadTree) Select(cam math.Vec3, frustum *collision.Frustum) ([]Patch, Stats) {
	var c collector
	stats := t.Render(cam, frustum, &c)
	return c.patches, stats
}

func (t *QuadTree) render(i int32, cam math.Vec3, frustum *collision.Frustum, r PatchRenderer, stats *Stats) {
	n := &t.nodes[i]
	stats.Visited++

	bb := n.BoundingBox()
	if !bb.CollidesWithFrustum(frustum) {
		stats.Culled++
		return
	}

	// A node covers its whole area when the camera is farther than one
	// node size away.
	radius := float32(n.Size)
	if n.Leaf() || !bb.CollidesWithSphere(cam, radius) {
		t.emit(n, AllQuadrants, r, stats)
		return
	}

	var rest Quadrant
	for k, c := range n.Children {
		if t.nodes[c].BoundingBox().CollidesWithSphere(cam, radius) {
			t.render(c, cam, frustum, r, stats)
		} else {
			rest |= 1 << k
		}
	}
	if rest != 0 {
		t.emit(n, rest, r, stats)
	}
}

func (t *QuadTree) emit(n *Node, quadrants Quadrant, r PatchRenderer, stats *Stats) {
	r.RenderPatch(Patch{
		Offset:    math.Vec2{X: float32(n.X), Y: float32(n.Z)},
		Scale:     float32(n.Size) / float32(t.patchSize),
		Level:     n.Level,
		Quadrants: quadrants,
	})
	stats.Patches++
}

type collector struct {
	patches []Patch
}

func (c *collector) RenderPatch(p Patch) {
	c.patches = append(c.patches, p)
}
