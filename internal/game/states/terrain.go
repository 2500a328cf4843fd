package states

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/camera"
	"github.com/Faultbox/hexterrain/internal/engine/debug"
	"github.com/Faultbox/hexterrain/internal/engine/input"
	"github.com/Faultbox/hexterrain/internal/engine/renderer"
	"github.com/Faultbox/hexterrain/internal/engine/scene"
	"github.com/Faultbox/hexterrain/internal/engine/window"
)

// TerrainStateConfig wires a terrain scene to the shared frame resources.
type TerrainStateConfig struct {
	Scene    *scene.Scene
	Shading  *scene.Shading // toggled by the level-tint key
	Camera   *camera.FreeFlyCamera
	Input    *input.Input
	Renderer *renderer.Renderer
	Window   *window.Window

	// Ground returns the terrain height under a world XZ position.
	Ground    func(x, z float32) float32
	Clearance float32

	// Stats reports the counters of the last frame for the periodic log.
	Stats func() []zap.Field

	Screenshots *debug.Screenshots
}

// TerrainState flies the camera over one terrain scene.
type TerrainState struct {
	config  TerrainStateConfig
	manager *Manager
	log     *zap.Logger

	// Other is the state the switch key changes to.
	Other State

	captureNext bool
}

// NewTerrainState creates a terrain state.
func NewTerrainState(cfg TerrainStateConfig, manager *Manager, log *zap.Logger) *TerrainState {
	if log == nil {
		log = zap.NewNop()
	}
	return &TerrainState{config: cfg, manager: manager, log: log}
}

// Name identifies the state in logs.
func (s *TerrainState) Name() string {
	return s.config.Scene.Name()
}

// Scene returns the rendered scene.
func (s *TerrainState) Scene() *scene.Scene {
	return s.config.Scene
}

// Enter logs the controls once.
func (s *TerrainState) Enter() error {
	s.log.Info("entering terrain scene",
		zap.String("scene", s.Name()),
		zap.Int("objects", s.config.Scene.Len()),
		zap.String("controls", "WASD move, Space/Ctrl up/down, Shift boost, C capture mouse, Tab switch LOD, F1 wireframe, F2 level tint, F12 screenshot, Esc quit"))
	return nil
}

// Exit keeps the scene alive so switching back is instant.
func (s *TerrainState) Exit() error {
	return nil
}

// Update moves the camera from the held keys and mouse motion.
func (s *TerrainState) Update(dt float32) error {
	in := s.config.Input
	cam := s.config.Camera

	if in.Captured() {
		dx, dy := in.MouseDelta()
		cam.HandleMouse(dx, dy)
	}
	cam.HandleMovement(
		in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		in.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		in.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE),
		dt,
		in.IsKeyDown(sdl.SCANCODE_LSHIFT),
	)
	if s.config.Ground != nil {
		cam.KeepAbove(s.config.Ground(cam.Pos.X, cam.Pos.Z), s.config.Clearance)
	}

	s.config.Scene.Update(dt)
	return nil
}

// Render clears to the sky color and draws the scene.
func (s *TerrainState) Render(time float32) error {
	r := s.config.Renderer
	r.SetClearColor(scene.SkyColor(s.config.Scene.Sky().DayLerp))
	r.Begin()
	s.config.Scene.Render(time, s.config.Camera)
	if s.captureNext {
		s.captureNext = false
		s.capture()
	}
	r.End()
	return nil
}

func (s *TerrainState) capture() {
	if s.config.Screenshots == nil {
		return
	}
	pixels, w, h := s.config.Renderer.ReadPixels()
	path, err := s.config.Screenshots.SavePixels(pixels, w, h)
	if err != nil {
		s.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	s.log.Info("screenshot saved", zap.String("path", path))
}

// HandleInput applies the toggle keys.
func (s *TerrainState) HandleInput(event input.Event) error {
	if event.Type != input.EventKeyDown {
		return nil
	}

	switch event.Key {
	case sdl.SCANCODE_TAB:
		if s.Other != nil {
			s.manager.Change(s.Other)
		}
	case sdl.SCANCODE_F1:
		s.config.Renderer.SetWireframe(!s.config.Renderer.Wireframe())
	case sdl.SCANCODE_F2:
		if s.config.Shading != nil {
			s.config.Shading.ShowLevels = !s.config.Shading.ShowLevels
		}
	case sdl.SCANCODE_F12:
		s.captureNext = true
	case sdl.SCANCODE_C:
		on := !s.config.Input.Captured()
		s.config.Input.SetCaptured(on)
		if s.config.Window != nil {
			s.config.Window.SetMouseCaptured(on)
		}
	}
	return nil
}

// StatsFields returns the counters of the last frame.
func (s *TerrainState) StatsFields() []zap.Field {
	fields := []zap.Field{zap.String("scene", s.Name())}
	if s.config.Stats != nil {
		fields = append(fields, s.config.Stats()...)
	}
	return fields
}
