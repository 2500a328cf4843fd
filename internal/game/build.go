package game

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/terrain/cdlod"
)

// scalesFor maps the terrain section to mesh-to-world scales.
func scalesFor(cfg *config.Config) terrain.Scales {
	return terrain.Scales{XZ: cfg.Terrain.XZScale, Y: cfg.Terrain.HeightScale}
}

// gridConfigFor builds the block grid settings. Zero grid_rings sizes the
// grid to cover the heightmap.
func gridConfigFor(cfg *config.Config, hm *terrain.Heightmap) terrain.GridConfig {
	rings := cfg.Terrain.GridRings
	if rings == 0 {
		rings = terrain.RingsForExtent(hm.Width, hm.Height, cfg.Terrain.BlockSize)
	}
	return terrain.GridConfig{
		BlockSize:    cfg.Terrain.BlockSize,
		MipmapLevels: cfg.Terrain.MipmapLevels,
		Rings:        rings,
		FollowCamera: cfg.Terrain.FollowCamera,
		Scales:       scalesFor(cfg),
	}
}

// quadTreeOptionsFor builds the CDLOD settings. Node heights are kept in
// world units so the tree can be culled against a mesh-unit frustum that
// leaves Y unscaled.
func quadTreeOptionsFor(cfg *config.Config, hm *terrain.Heightmap) cdlod.Options {
	return cdlod.Options{
		PatchSize:    cfg.CDLOD.PatchSize,
		Depth:        cfg.CDLOD.Depth,
		Heightmap:    hm,
		HeightScale:  cfg.Terrain.HeightScale,
		RefineBounds: cfg.CDLOD.RefineBounds,
	}
}

// fovRadians converts the configured vertical field of view.
func fovRadians(deg float32) float32 {
	return deg * math32.Pi / 180
}
