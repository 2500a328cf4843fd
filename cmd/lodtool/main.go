// lodtool inspects the terrain LOD structures without a GPU: block meshes,
// grid layouts, connector fans and CDLOD patch selection.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/Faultbox/hexterrain/internal/engine/camera"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/terrain/cdlod"
	"github.com/Faultbox/hexterrain/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "mesh":
		err = cmdMesh(args)
	case "ring":
		err = cmdRing(args)
	case "layout":
		err = cmdLayout(args)
	case "fan":
		err = cmdFan(args)
	case "cdlod":
		err = cmdCDLOD(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lodtool - terrain LOD inspection

Usage:
  lodtool <command> [options]

Commands:
  mesh    Vertex and index counts of every block mesh level
  ring    Points of one hexagonal vertex ring
  layout  Block placement, levels and connectors for a camera position
  fan     Connector fan plan between rows of two lengths
  cdlod   Patches the quadtree selects for a camera

Examples:
  lodtool mesh --block 32 --levels 4
  lodtool ring --ring 2 --distance 1
  lodtool layout --block 32 --levels 4 --rings 4 --cam 100,40
  lodtool fan --shorter 5 --longer 17
  lodtool cdlod --patch 32 --depth 5 --cam 0,50,0 --pitch -0.4`)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func cmdMesh(args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	block := fs.Int("block", 32, "Block size (power of two)")
	levels := fs.Int("levels", 4, "Mipmap levels")
	fs.Parse(args)

	cfg := terrain.GridConfig{BlockSize: *block, MipmapLevels: *levels, Rings: 1}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "LEVEL\tRINGS\tVERTICES\tINDICES\tSTRIPS")
	for _, m := range terrain.BuildBlockMeshes(*block, *levels) {
		strips := 1
		for _, idx := range m.Indices {
			if idx == terrain.RestartIndex {
				strips++
			}
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", m.Level, m.RingCount, len(m.Vertices), len(m.Indices), strips)
	}
	return w.Flush()
}

func cmdRing(args []string) error {
	fs := flag.NewFlagSet("ring", flag.ExitOnError)
	ring := fs.Int("ring", 1, "Ring number")
	distance := fs.Float64("distance", 1, "Ring radius")
	fs.Parse(args)

	if *ring < 0 {
		return fmt.Errorf("ring must be >= 0, got %d", *ring)
	}

	w := newTable()
	fmt.Fprintln(w, "INDEX\tLINE\tSEGMENT\tX\tZ")
	for _, c := range terrain.RingCoords(*ring) {
		p := c.Position(float32(*distance))
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%.4f\n", c.Index(), c.Line, c.Segment, p.X, p.Y)
	}
	return w.Flush()
}

// drawCounter counts what a grid submits per frame.
type drawCounter struct {
	strips    int
	transient int
}

func (d *drawCounter) EnablePrimitiveRestart(uint32) {}
func (d *drawCounter) DisablePrimitiveRestart() {}
func (d *drawCounter) SetScale(math.Vec3) {}
func (d *drawCounter) SetOffset(math.Vec2) {}
func (d *drawCounter) BindLevel(int) {}
func (d *drawCounter) DrawIndexed(terrain.Primitive, int) { d.strips++ }
func (d *drawCounter) DrawTransient(terrain.Primitive, []math.Vec2, []uint32) { d.transient++ }

func cmdLayout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	block := fs.Int("block", 32, "Block size (power of two)")
	levels := fs.Int("levels", 4, "Mipmap levels")
	rings := fs.Int("rings", 4, "Block rings, centre included")
	follow := fs.Bool("follow", false, "Snap the grid to the camera")
	cam := fs.String("cam", "0,0", "Camera position x,z in mesh units")
	quiet := fs.Bool("q", false, "Only print totals")
	fs.Parse(args)

	xz, err := parseFloats(*cam, 2)
	if err != nil {
		return fmt.Errorf("--cam: %w", err)
	}

	grid, err := terrain.NewBlockGrid(terrain.GridConfig{
		BlockSize:    *block,
		MipmapLevels: *levels,
		Rings:        *rings,
		FollowCamera: *follow,
	}, nil)
	if err != nil {
		return err
	}

	camPos := math.Vec3{X: xz[0], Z: xz[1]}
	if !*quiet {
		w := newTable()
		fmt.Fprintln(w, "#\tHEX\tX\tZ\tLEVEL")
		for i, b := range grid.Layout(camPos.XZ()) {
			fmt.Fprintf(w, "%d\t(%d,%d)\t%.1f\t%.1f\t%d\n", i, b.Hex.Q, b.Hex.R, b.Center.X, b.Center.Y, b.Level)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	var counter drawCounter
	stats := grid.Render(&counter, camPos)
	fmt.Printf("Blocks:              %d\n", stats.Blocks)
	fmt.Printf("Connectors:          %d\n", stats.Connectors)
	fmt.Printf("Connector triangles: %d\n", stats.ConnectorTriangles)
	fmt.Printf("Blocks per level:    %v\n", stats.Levels)
	fmt.Printf("Draw calls:          %d\n", counter.strips+counter.transient)
	return nil
}

func cmdFan(args []string) error {
	fs := flag.NewFlagSet("fan", flag.ExitOnError)
	shorter := fs.Int("shorter", 5, "Points in the shorter row")
	longer := fs.Int("longer", 9, "Points in the longer row")
	fs.Parse(args)

	if *shorter > *longer {
		return fmt.Errorf("shorter row (%d) is longer than longer row (%d)", *shorter, *longer)
	}

	w := newTable()
	fmt.Fprintln(w, "SHORTER\tFIRST\tCOUNT")
	for _, r := range terrain.FanPlan(*shorter, *longer) {
		fmt.Fprintf(w, "%d\t%d\t%d\n", r.Shorter, r.First, r.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	indices := terrain.ConnectDiffSizeLines(0, *shorter, *shorter, *longer, nil)
	fmt.Printf("\nTriangles: %d\n", len(indices)/3)
	return nil
}

func cmdCDLOD(args []string) error {
	fs := flag.NewFlagSet("cdlod", flag.ExitOnError)
	patch := fs.Int("patch", 32, "Patch grid size (even)")
	depth := fs.Int("depth", 5, "Quadtree depth")
	cam := fs.String("cam", "0,50,0", "Camera position x,y,z in mesh units")
	yaw := fs.Float64("yaw", 0, "Camera yaw in radians, 0 looks down -Z")
	pitch := fs.Float64("pitch", -0.3, "Camera pitch in radians")
	far := fs.Float64("far", 20000, "Far clip distance")
	heightmap := fs.String("heightmap", "", "Heightmap image for node bounds")
	heightScale := fs.Float64("height-scale", 1, "Height of a full-white texel")
	fs.Parse(args)

	pos, err := parseFloats(*cam, 3)
	if err != nil {
		return fmt.Errorf("--cam: %w", err)
	}

	opts := cdlod.Options{
		PatchSize:   *patch,
		Depth:       *depth,
		HeightScale: float32(*heightScale),
	}
	if *heightmap != "" {
		hm, err := terrain.LoadHeightmap(*heightmap)
		if err != nil {
			return err
		}
		opts.Heightmap = hm
		opts.RefineBounds = true
	}

	tree, err := cdlod.NewQuadTree(opts, nil)
	if err != nil {
		return err
	}

	viewer := camera.NewFreeFlyCamera(math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}, float32(*yaw), float32(*pitch))
	viewer.Far = float32(*far)
	viewer.Reshape(16, 9)
	frustum := viewer.Frustum()

	patches, stats := tree.Select(viewer.Position(), &frustum)
	slices.SortStableFunc(patches, func(a, b cdlod.Patch) int {
		return b.Level - a.Level
	})

	w := newTable()
	fmt.Fprintln(w, "LEVEL\tX\tZ\tSCALE\tQUADRANTS")
	for _, p := range patches {
		fmt.Fprintf(w, "%d\t%.0f\t%.0f\t%.0f\t%s\n", p.Level, p.Offset.X, p.Offset.Y, p.Scale, quadrantString(p.Quadrants))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nVisited: %d  Culled: %d  Patches: %d\n", stats.Visited, stats.Culled, stats.Patches)
	return nil
}

func quadrantString(q cdlod.Quadrant) string {
	if q == cdlod.AllQuadrants {
		return "all"
	}
	names := []string{"TL", "TR", "BL", "BR"}
	var out []byte
	for k, n := range names {
		if q&(1<<k) != 0 {
			if len(out) > 0 {
				out = append(out, '+')
			}
			out = append(out, n...)
		}
	}
	return string(out)
}
