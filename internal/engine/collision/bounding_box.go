package collision

import (
	"github.com/Faultbox/hexterrain/pkg/math"
)

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBoundingBox returns the box spanned by two corners in any order.
func NewBoundingBox(a, b math.Vec3) BoundingBox {
	return BoundingBox{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Center returns the center point of the box.
func (b BoundingBox) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: math.Vec3{X: min(b.Min.X, other.Min.X), Y: min(b.Min.Y, other.Min.Y), Z: min(b.Min.Z, other.Min.Z)},
		Max: math.Vec3{X: max(b.Max.X, other.Max.X), Y: max(b.Max.Y, other.Max.Y), Z: max(b.Max.Z, other.Max.Z)},
	}
}

// CollidesWithFrustum returns false only if the box is completely outside
// one of the frustum planes (positive-vertex test). Boxes straddling a
// corner of the frustum may be reported as colliding.
func (b BoundingBox) CollidesWithFrustum(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		v := b.Max
		if p.Normal.X < 0 {
			v.X = b.Min.X
		}
		if p.Normal.Y < 0 {
			v.Y = b.Min.Y
		}
		if p.Normal.Z < 0 {
			v.Z = b.Min.Z
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// CollidesWithSphere reports whether the sphere intersects the box.
func (b BoundingBox) CollidesWithSphere(center math.Vec3, radius float32) bool {
	closest := math.Vec3{
		X: math.Clamp(center.X, b.Min.X, b.Max.X),
		Y: math.Clamp(center.Y, b.Min.Y, b.Max.Y),
		Z: math.Clamp(center.Z, b.Min.Z, b.Max.Z),
	}
	d := closest.Sub(center)
	return d.Dot(d) <= radius*radius
}
