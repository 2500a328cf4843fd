// Package collision provides the geometric predicates used by terrain culling.
package collision

import (
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Plane is the half-space Normal·p + D >= 0. The normal points into the frustum.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p math.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts normalized frustum planes from a
// view-projection matrix (Gribb/Hartmann).
func FrustumFromMatrix(viewProj math.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	var f Frustum
	f.Planes[PlaneLeft] = planeFrom(add4(r3, r0))
	f.Planes[PlaneRight] = planeFrom(sub4(r3, r0))
	f.Planes[PlaneBottom] = planeFrom(add4(r3, r1))
	f.Planes[PlaneTop] = planeFrom(sub4(r3, r1))
	f.Planes[PlaneNear] = planeFrom(add4(r3, r2))
	f.Planes[PlaneFar] = planeFrom(sub4(r3, r2))
	return f
}

// ContainsPoint reports whether p lies inside all six planes.
func (f *Frustum) ContainsPoint(p math.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

func planeFrom(v math.Vec4) Plane {
	n := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Scale(1 / l), D: v[3] / l}
}

func add4(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}
