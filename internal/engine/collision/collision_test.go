package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/hexterrain/pkg/math"
)

func testFrustum() Frustum {
	proj := math.Perspective(1.0, 1.0, 0.1, 100)
	view := math.LookAt(math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Y: 1})
	return FrustumFromMatrix(proj.Mul(view))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()

	assert.True(t, f.ContainsPoint(math.Vec3{Z: -10}))
	assert.False(t, f.ContainsPoint(math.Vec3{Z: 10}), "behind camera")
	assert.False(t, f.ContainsPoint(math.Vec3{Z: -200}), "beyond far plane")
	assert.False(t, f.ContainsPoint(math.Vec3{X: 50, Z: -10}), "far to the right")
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, p.Normal.Length(), 1e-4, "plane %d", i)
	}
}

func TestBoundingBoxCollidesWithFrustum(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"in front", NewBoundingBox(math.Vec3{X: -1, Y: -1, Z: -11}, math.Vec3{X: 1, Y: 1, Z: -9}), true},
		{"behind", NewBoundingBox(math.Vec3{X: -1, Y: -1, Z: 5}, math.Vec3{X: 1, Y: 1, Z: 9}), false},
		{"straddling near plane", NewBoundingBox(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}), true},
		{"far left", NewBoundingBox(math.Vec3{X: -60, Y: -1, Z: -11}, math.Vec3{X: -50, Y: 1, Z: -9}), false},
		{"huge enclosing", NewBoundingBox(math.Vec3{X: -1000, Y: -1000, Z: -1000}, math.Vec3{X: 1000, Y: 1000, Z: 1000}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.CollidesWithFrustum(&f))
		})
	}
}

func TestBoundingBoxCollidesWithSphere(t *testing.T) {
	box := NewBoundingBox(math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 10, Y: 10, Z: 10})

	assert.True(t, box.CollidesWithSphere(math.Vec3{X: 5, Y: 5, Z: 5}, 1), "center inside")
	assert.True(t, box.CollidesWithSphere(math.Vec3{X: 12, Y: 5, Z: 5}, 2), "touching face")
	assert.False(t, box.CollidesWithSphere(math.Vec3{X: 13, Y: 5, Z: 5}, 2))
	assert.False(t, box.CollidesWithSphere(math.Vec3{X: 12, Y: 12, Z: 12}, 3), "corner distance is sqrt(12)")
	assert.True(t, box.CollidesWithSphere(math.Vec3{X: 12, Y: 12, Z: 12}, 3.5))
}

func TestBoundingBoxUnion(t *testing.T) {
	a := NewBoundingBox(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 0, Y: 0, Z: 0})
	b := NewBoundingBox(math.Vec3{X: -1, Y: 5, Z: 1}, math.Vec3{X: 0, Y: 6, Z: 2})

	u := a.Union(b)
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: 0}, u.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 6, Z: 3}, u.Max)
	assert.Equal(t, math.Vec3{X: 0, Y: 3, Z: 1.5}, u.Center())
}
