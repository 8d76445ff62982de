package crane

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned 3D bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// EmptyAABB returns a box that contains nothing and grows to fit the first
// point expanded into it.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{infinity, infinity, infinity},
		Max: mgl64.Vec3{-infinity, -infinity, -infinity},
	}
}

// NewAABBForExtents constructs a box centered on c with the given half sizes.
func NewAABBForExtents(c, half mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// NewAABBForPoints returns the smallest box holding every point.
func NewAABBForPoints(points ...mgl64.Vec3) AABB {
	bb := EmptyAABB()
	for _, p := range points {
		bb = bb.Expand(p)
	}
	return bb
}

func (bb AABB) String() string {
	return fmt.Sprintf("[%v %v %v]-[%v %v %v]", bb.Min[0], bb.Min[1], bb.Min[2], bb.Max[0], bb.Max[1], bb.Max[2])
}

// IsEmpty reports whether the box holds no point.
func (bb AABB) IsEmpty() bool {
	return bb.Max[0] < bb.Min[0] || bb.Max[1] < bb.Min[1] || bb.Max[2] < bb.Min[2]
}

// Intersects returns true if the boxes overlap on all three axes.
// Touching faces count as an overlap.
func (bb AABB) Intersects(b AABB) bool {
	return bb.Min[0] <= b.Max[0] && b.Min[0] <= bb.Max[0] &&
		bb.Min[1] <= b.Max[1] && b.Min[1] <= bb.Max[1] &&
		bb.Min[2] <= b.Max[2] && b.Min[2] <= bb.Max[2]
}

// Merge returns a box that holds both boxes.
func (bb AABB) Merge(b AABB) AABB {
	return AABB{Min: minVec3(bb.Min, b.Min), Max: maxVec3(bb.Max, b.Max)}
}

// Expand returns a box that holds both bb and p.
func (bb AABB) Expand(p mgl64.Vec3) AABB {
	return AABB{Min: minVec3(bb.Min, p), Max: maxVec3(bb.Max, p)}
}

// Center returns the center of the box.
func (bb AABB) Center() mgl64.Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Size returns the edge lengths of the box.
func (bb AABB) Size() mgl64.Vec3 {
	return bb.Max.Sub(bb.Min)
}

// Corners returns the eight corners of the box.
func (bb AABB) Corners() [8]mgl64.Vec3 {
	lo, hi := bb.Min, bb.Max
	return [8]mgl64.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], hi[1], hi[2]},
		{hi[0], hi[1], hi[2]},
	}
}

// Transform returns the box enclosing bb after m is applied to it.
func (bb AABB) Transform(m mgl64.Mat4) AABB {
	out := EmptyAABB()
	for _, c := range bb.Corners() {
		out = out.Expand(mgl64.TransformCoordinate(c, m))
	}
	return out
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// BoundingSphere returns the sphere circumscribing the box: centered on the
// box with half its diagonal as radius.
func (bb AABB) BoundingSphere() Sphere {
	if bb.IsEmpty() {
		return Sphere{Radius: -1}
	}
	return Sphere{Center: bb.Center(), Radius: bb.Size().Len() * 0.5}
}

// Intersects reports whether the spheres touch or overlap:
// (rA+rB)² >= |cA-cB|².
func (s Sphere) Intersects(o Sphere) bool {
	if s.Radius < 0 || o.Radius < 0 {
		return false
	}
	d := s.Center.Sub(o.Center)
	r := s.Radius + o.Radius
	return r*r >= d.Dot(d)
}

// Bounds pairs a box with the sphere derived from it.
type Bounds struct {
	Box    AABB
	Sphere Sphere
}

// NewBounds derives the bounding sphere of box.
func NewBounds(box AABB) Bounds {
	return Bounds{Box: box, Sphere: box.BoundingSphere()}
}

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 {
	if b.Box.IsEmpty() {
		return 0
	}
	return math.Max(0, b.Box.Max[1]-b.Box.Min[1])
}
