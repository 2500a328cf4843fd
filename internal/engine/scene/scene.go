// Package scene holds the renderable world: objects are discovered by the
// capabilities they implement and driven in a fixed order each frame.
package scene

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/collision"
	"github.com/Faultbox/hexterrain/internal/engine/lighting"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Camera is the view the scene is rendered from.
type Camera interface {
	Position() math.Vec3
	Forward() math.Vec3
	ViewMatrix() math.Mat4
	Frustum() collision.Frustum
}

// Frame carries the per-frame inputs shared by all renderables.
type Frame struct {
	Time   float32
	Camera Camera
	Sun    lighting.SunData
}

// Renderable objects draw themselves once per frame.
type Renderable interface {
	Render(frame *Frame)
}

// Updatable objects advance their state once per frame before rendering.
type Updatable interface {
	Update(dt float32)
}

// Reshaper objects react to projection changes.
type Reshaper interface {
	Reshape(projection math.Mat4)
}

// Destroyer objects own GPU resources that must be released.
type Destroyer interface {
	Destroy()
}

type entry struct {
	group int
	obj   any
}

// Scene is an ordered collection of objects plus the sky state.
type Scene struct {
	name        string
	entries     []entry
	sky         lighting.SkyState
	dayDuration float32
	projection  math.Mat4
	reshaped    bool
	log         *zap.Logger
}

// New creates an empty scene.
func New(name string, dayDuration float32, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		name:        name,
		sky:         lighting.NewSkyState(0),
		dayDuration: dayDuration,
		log:         log,
	}
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.name
}

// Add appends an object to group 0.
func (s *Scene) Add(obj any) error {
	return s.AddToGroup(0, obj)
}

// AddToGroup appends an object. Lower groups render first; objects of the
// same group render in insertion order.
func (s *Scene) AddToGroup(group int, obj any) error {
	switch obj.(type) {
	case Renderable, Updatable, Reshaper:
	default:
		return fmt.Errorf("scene %s: %T has no scene capability", s.name, obj)
	}

	e := entry{group: group, obj: obj}
	// Insert after every entry of the same group.
	i := len(s.entries)
	for i > 0 && s.entries[i-1].group > group {
		i--
	}
	s.entries = slices.Insert(s.entries, i, e)

	if r, ok := obj.(Reshaper); ok && s.reshaped {
		r.Reshape(s.projection)
	}
	s.log.Debug("object added", zap.String("scene", s.name), zap.String("type", fmt.Sprintf("%T", obj)), zap.Int("group", group))
	return nil
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.entries)
}

// Reshape forwards a new projection to every Reshaper. Objects added later
// receive it on Add.
func (s *Scene) Reshape(projection math.Mat4) {
	s.projection = projection
	s.reshaped = true
	for _, e := range s.entries {
		if r, ok := e.obj.(Reshaper); ok {
			r.Reshape(projection)
		}
	}
}

// Update advances every Updatable.
func (s *Scene) Update(dt float32) {
	for _, e := range s.entries {
		if u, ok := e.obj.(Updatable); ok {
			u.Update(dt)
		}
	}
}

// Render advances the sky to time and renders every Renderable.
func (s *Scene) Render(time float32, cam Camera) Frame {
	var sun lighting.SunData
	s.sky, sun = lighting.Advance(s.sky, time, s.dayDuration)

	frame := Frame{Time: time, Camera: cam, Sun: sun}
	for _, e := range s.entries {
		if r, ok := e.obj.(Renderable); ok {
			r.Render(&frame)
		}
	}
	return frame
}

// Sky returns the current sky state.
func (s *Scene) Sky() lighting.SkyState {
	return s.sky
}

// Destroy releases every Destroyer and empties the scene.
func (s *Scene) Destroy() {
	for _, e := range slices.Backward(s.entries) {
		if d, ok := e.obj.(Destroyer); ok {
			d.Destroy()
		}
	}
	s.entries = nil
}

// SkyColor returns the background color for a day factor.
func SkyColor(dayLerp float32) math.Vec3 {
	night := math.Vec3{X: 0.02, Y: 0.02, Z: 0.05}
	day := math.Vec3{X: 0.55, Y: 0.7, Z: 0.9}
	return night.Add(day.Sub(night).Scale(dayLerp))
}
