// Package game implements the demo main loop and scene wiring.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/assets"
	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/engine/camera"
	"github.com/Faultbox/hexterrain/internal/engine/debug"
	"github.com/Faultbox/hexterrain/internal/engine/input"
	"github.com/Faultbox/hexterrain/internal/engine/renderer"
	"github.com/Faultbox/hexterrain/internal/engine/scene"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
	"github.com/Faultbox/hexterrain/internal/engine/terrain/cdlod"
	"github.com/Faultbox/hexterrain/internal/engine/window"
	"github.com/Faultbox/hexterrain/internal/game/states"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/pkg/math"
)

const (
	title         = "hexterrain"
	loadTimeout   = 2 * time.Minute
	cameraHeadway = 2 // minimum height above the ground
)

// Game is the demo instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FreeFlyCamera
	assets   *assets.Manager
	states   *states.Manager
	scenes   []*scene.Scene
	shots    *debug.Screenshots
	log      *zap.Logger
}

// New creates the window, GL renderer and the loading state.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}
	g.log.Info("initializing demo",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("mode", cfg.Terrain.Mode))

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context exists only once the window does.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	start := cfg.Camera.Start
	g.camera = camera.NewFreeFlyCamera(math.Vec3{X: start[0], Y: start[1], Z: start[2]}, 0, -0.3)
	g.camera.Speed = cfg.Camera.Speed
	g.camera.MouseSensitivity = cfg.Camera.MouseSensitivity
	g.camera.FovY = fovRadians(cfg.Graphics.FOV)
	g.camera.Near = cfg.Graphics.Near
	g.camera.Far = cfg.Graphics.Far
	g.camera.Reshape(width, height)

	g.shots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, title)
	g.assets = assets.NewManager(cfg.CacheDir(), logger.Named("assets"))
	g.states = states.NewManager(logger.Named("states"))
	g.states.Change(states.NewLoadingState(g.states, g.loadHeightmap, g.buildScenes, loadTimeout, logger.Named("loading")))

	return g, nil
}

func (g *Game) loadHeightmap(ctx context.Context) (*terrain.Heightmap, error) {
	return g.assets.HeightmapOrNoise(ctx, g.cfg.Terrain.Heightmap, assets.NoiseParams{
		Size:    g.cfg.Terrain.NoiseSize,
		Seed:    g.cfg.Terrain.Seed,
		Octaves: g.cfg.Terrain.NoiseOctaves,
	})
}

// buildScenes creates both terrain scenes and returns the configured one.
func (g *Game) buildScenes(hm *terrain.Heightmap) (states.State, error) {
	scales := scalesFor(g.cfg)
	ground := func(x, z float32) float32 {
		return hm.WorldHeight(x, z, scales)
	}

	hexState, err := g.buildHexScene(hm, ground)
	if err != nil {
		return nil, err
	}
	cdlodState, err := g.buildCDLODScene(hm, ground)
	if err != nil {
		return nil, err
	}
	hexState.Other = cdlodState
	cdlodState.Other = hexState

	for _, s := range g.scenes {
		s.Reshape(g.camera.Projection())
	}

	if g.cfg.Terrain.Mode == config.ModeCDLOD {
		return cdlodState, nil
	}
	return hexState, nil
}

func (g *Game) buildHexScene(hm *terrain.Heightmap, ground func(x, z float32) float32) (*states.TerrainState, error) {
	grid, err := terrain.NewBlockGrid(gridConfigFor(g.cfg, hm), logger.Named("terrain"))
	if err != nil {
		return nil, err
	}
	ht, err := scene.NewHexTerrain(grid, hm, logger.Named("terrain"))
	if err != nil {
		return nil, err
	}

	sc := scene.New(config.ModeHexGrid, g.cfg.Sky.DayDuration, logger.Named("scene"))
	if err := sc.Add(ht); err != nil {
		return nil, err
	}
	g.scenes = append(g.scenes, sc)

	return states.NewTerrainState(states.TerrainStateConfig{
		Scene:       sc,
		Shading:     &ht.Shading,
		Camera:      g.camera,
		Input:       g.input,
		Renderer:    g.renderer,
		Window:      g.window,
		Ground:      ground,
		Clearance:   cameraHeadway,
		Screenshots: g.shots,
		Stats: func() []zap.Field {
			st := ht.Stats()
			return []zap.Field{
				zap.Int("blocks", st.Blocks),
				zap.Int("connectors", st.Connectors),
				zap.Int("connectorTriangles", st.ConnectorTriangles),
				zap.Ints("levels", st.Levels),
			}
		},
	}, g.states, logger.Named("hexgrid")), nil
}

func (g *Game) buildCDLODScene(hm *terrain.Heightmap, ground func(x, z float32) float32) (*states.TerrainState, error) {
	tree, err := cdlod.NewQuadTree(quadTreeOptionsFor(g.cfg, hm), logger.Named("cdlod"))
	if err != nil {
		return nil, err
	}
	ct, err := scene.NewCDLODTerrain(tree, g.cfg.CDLOD.PatchSize, hm, scalesFor(g.cfg), logger.Named("cdlod"))
	if err != nil {
		return nil, err
	}

	sc := scene.New(config.ModeCDLOD, g.cfg.Sky.DayDuration, logger.Named("scene"))
	if err := sc.Add(ct); err != nil {
		return nil, err
	}
	g.scenes = append(g.scenes, sc)

	return states.NewTerrainState(states.TerrainStateConfig{
		Scene:       sc,
		Shading:     &ct.Shading,
		Camera:      g.camera,
		Input:       g.input,
		Renderer:    g.renderer,
		Window:      g.window,
		Ground:      ground,
		Clearance:   cameraHeadway,
		Screenshots: g.shots,
		Stats: func() []zap.Field {
			st := ct.Stats()
			return []zap.Field{
				zap.Int("visited", st.Visited),
				zap.Int("culled", st.Culled),
				zap.Int("patches", st.Patches),
			}
		},
	}, g.states, logger.Named("cdlod")), nil
}

// statsReporter is implemented by states that log frame counters.
type statsReporter interface {
	StatsFields() []zap.Field
}

// Run runs the main loop until the window closes, Escape is pressed or ctx
// is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	g.log.Info("starting main loop")

	for g.running {
		if err := ctx.Err(); err != nil {
			g.log.Info("main loop cancelled", zap.Error(err))
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch {
			case event.Type == input.EventWindowResize:
				g.resize()
			case event.Type == input.EventKeyDown && event.Key == sdl.SCANCODE_ESCAPE:
				g.running = false
			}
			if err := g.states.HandleInput(event); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		if err := g.states.Render(float32(now.Sub(start).Seconds())); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fields := []zap.Field{
				zap.Int("fps", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			}
			if r, ok := g.states.Current().(statsReporter); ok {
				fields = append(fields, r.StatsFields()...)
			}
			g.log.Debug("frame stats", fields...)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize propagates the drawable size to the viewport, camera and scenes.
func (g *Game) resize() {
	width, height := g.window.GetSize()
	g.renderer.Resize(width, height)
	g.camera.Reshape(width, height)
	for _, s := range g.scenes {
		s.Reshape(g.camera.Projection())
	}
}

// Close releases scenes, GPU resources and the window.
func (g *Game) Close() {
	g.log.Info("closing demo")

	if err := g.states.Close(); err != nil {
		g.log.Warn("closing state", zap.Error(err))
	}
	for _, s := range g.scenes {
		s.Destroy()
	}
	g.scenes = nil
	g.assets.Close()

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
