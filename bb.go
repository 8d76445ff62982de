package crane

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// BB is an axis-aligned footprint on the ground plane. (left, bottom, right, top)
//
// Ground coordinates map world X to vec.Vec2.X and world Z to vec.Vec2.Y.
type BB struct {
	L, B, R, T float64
}

// NewBB is convenience constructor for BB structs.
func NewBB(l, b, r, t float64) BB {
	return BB{
		L: l,
		B: b,
		R: r,
		T: t,
	}
}

func (bb BB) String() string {
	return fmt.Sprintf("%v %v %v %v", bb.L, bb.B, bb.R, bb.T)
}

// Footprint projects a 3D box onto the ground plane.
func Footprint(box AABB) BB {
	return BB{L: box.Min[0], B: box.Min[2], R: box.Max[0], T: box.Max[2]}
}

// Ground returns the ground-plane coordinates of a world point.
func Ground(p mgl64.Vec3) vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[2]}
}

// ContainsVect returns true if bb contains v.
func (bb BB) ContainsVect(v vec.Vec2) bool {
	return bb.L <= v.X && bb.R >= v.X && bb.B <= v.Y && bb.T >= v.Y
}

// Center returns the center of a bounding box.
func (bb BB) Center() vec.Vec2 {
	return vec.Vec2{X: bb.L, Y: bb.B}.Lerp(vec.Vec2{X: bb.R, Y: bb.T}, 0.5)
}

// Verts returns the corners counter-clockwise from the bottom left.
func (bb BB) Verts() []vec.Vec2 {
	return []vec.Vec2{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
}
