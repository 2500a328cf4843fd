// Package camera provides the free-flying viewer used by the terrain scenes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hexterrain/internal/engine/collision"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// FreeFlyCamera moves freely in world space. Yaw 0 looks down -Z; positive
// yaw turns right, positive pitch looks up.
type FreeFlyCamera struct {
	Pos   math.Vec3
	Yaw   float32 // radians
	Pitch float32 // radians

	// Movement
	Speed            float32 // world units per second
	BoostFactor      float32
	MouseSensitivity float32 // radians per pixel
	MaxPitch         float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32

	aspect float32
	proj   math.Mat4
}

// NewFreeFlyCamera creates a camera with default settings.
func NewFreeFlyCamera(pos math.Vec3, yaw, pitch float32) *FreeFlyCamera {
	c := &FreeFlyCamera{
		Pos:              pos,
		Yaw:              yaw,
		Pitch:            pitch,
		Speed:            60.0,
		BoostFactor:      5.0,
		MouseSensitivity: 0.0025,
		MaxPitch:         1.55,
		FovY:             math32.Pi / 3,
		Near:             0.5,
		Far:              20000.0,
	}
	c.Reshape(16, 9)
	return c
}

// Position returns the camera position in world space.
func (c *FreeFlyCamera) Position() math.Vec3 {
	return c.Pos
}

// Forward returns the unit view direction.
func (c *FreeFlyCamera) Forward() math.Vec3 {
	sy, cy := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	sp, cp := math32.Sin(c.Pitch), math32.Cos(c.Pitch)
	return math.Vec3{X: cp * sy, Y: sp, Z: -cp * cy}
}

// Right returns the unit right direction on the XZ plane.
func (c *FreeFlyCamera) Right() math.Vec3 {
	sy, cy := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	return math.Vec3{X: cy, Y: 0, Z: sy}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FreeFlyCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Pos, c.Pos.Add(c.Forward()), up)
}

// Reshape updates the projection for a new viewport size.
func (c *FreeFlyCamera) Reshape(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.proj = math.Perspective(c.FovY, c.aspect, c.Near, c.Far)
}

// Projection returns the current projection matrix.
func (c *FreeFlyCamera) Projection() math.Mat4 {
	return c.proj
}

// ViewProjection returns projection * view.
func (c *FreeFlyCamera) ViewProjection() math.Mat4 {
	return c.proj.Mul(c.ViewMatrix())
}

// Frustum returns the culling volume of the current view.
func (c *FreeFlyCamera) Frustum() collision.Frustum {
	return collision.FrustumFromMatrix(c.ViewProjection())
}

// HandleMouse turns the camera by a relative mouse motion in pixels.
func (c *FreeFlyCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.MouseSensitivity
	c.Pitch -= deltaY * c.MouseSensitivity
	c.Pitch = math.Clamp(c.Pitch, -c.MaxPitch, c.MaxPitch)

	// Keep yaw in [-pi, pi] so it doesn't lose precision over long sessions.
	if c.Yaw > math32.Pi {
		c.Yaw -= 2 * math32.Pi
	} else if c.Yaw < -math32.Pi {
		c.Yaw += 2 * math32.Pi
	}
}

// HandleMovement moves the camera along its own axes. Each axis input is
// expected in [-1, 1].
func (c *FreeFlyCamera) HandleMovement(forward, right, up, dt float32, boost bool) {
	speed := c.Speed * dt
	if boost {
		speed *= c.BoostFactor
	}
	move := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Vec3{Y: up})
	c.Pos = c.Pos.Add(move.Scale(speed))
}

// KeepAbove lifts the camera so it stays at least clearance above ground.
func (c *FreeFlyCamera) KeepAbove(ground, clearance float32) {
	if c.Pos.Y < ground+clearance {
		c.Pos.Y = ground + clearance
	}
}
