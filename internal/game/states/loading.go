package states

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/input"
	"github.com/Faultbox/hexterrain/internal/engine/terrain"
)

// HeightmapLoader produces the terrain heightmap. It runs off the main
// thread and must not touch OpenGL.
type HeightmapLoader func(ctx context.Context) (*terrain.Heightmap, error)

// SceneBuilder turns a loaded heightmap into the first terrain state. It
// runs on the main thread, so it may create GPU resources.
type SceneBuilder func(hm *terrain.Heightmap) (State, error)

type loadResult struct {
	hm  *terrain.Heightmap
	err error
}

// LoadingState fetches the heightmap in the background and hands over to
// the state built from it.
type LoadingState struct {
	manager *Manager
	load    HeightmapLoader
	build   SceneBuilder
	timeout time.Duration
	log     *zap.Logger

	cancel context.CancelFunc
	done   chan loadResult

	Phase     string
	StartedAt time.Time
}

// NewLoadingState creates a loading state. A zero timeout waits forever.
func NewLoadingState(manager *Manager, load HeightmapLoader, build SceneBuilder, timeout time.Duration, log *zap.Logger) *LoadingState {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoadingState{
		manager: manager,
		load:    load,
		build:   build,
		timeout: timeout,
		log:     log,
		Phase:   "init",
	}
}

// Name identifies the state in logs.
func (s *LoadingState) Name() string {
	return "loading"
}

// Enter starts the background load.
func (s *LoadingState) Enter() error {
	s.StartedAt = time.Now()
	s.Phase = "heightmap"

	ctx := context.Background()
	if s.timeout > 0 {
		ctx, s.cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		ctx, s.cancel = context.WithCancel(ctx)
	}

	s.done = make(chan loadResult, 1)
	go func() {
		hm, err := s.load(ctx)
		s.done <- loadResult{hm: hm, err: err}
	}()

	s.log.Info("loading terrain")
	return nil
}

// Exit cancels a load still in flight.
func (s *LoadingState) Exit() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// Update polls the background load and builds the scene once it finishes.
func (s *LoadingState) Update(dt float32) error {
	select {
	case res := <-s.done:
		if res.err != nil {
			s.Phase = "failed"
			return fmt.Errorf("loading heightmap: %w", res.err)
		}
		s.log.Info("heightmap ready",
			zap.Int("width", res.hm.Width),
			zap.Int("height", res.hm.Height),
			zap.Duration("took", time.Since(s.StartedAt)))

		s.Phase = "scene"
		next, err := s.build(res.hm)
		if err != nil {
			s.Phase = "failed"
			return fmt.Errorf("building scene: %w", err)
		}
		s.Phase = "done"
		s.manager.Change(next)
	default:
	}
	return nil
}

// Render draws nothing; the clear color shows while loading.
func (s *LoadingState) Render(time float32) error {
	return nil
}

// HandleInput ignores input while loading.
func (s *LoadingState) HandleInput(event input.Event) error {
	return nil
}
