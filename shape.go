package crane

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the geometry a node carries, reduced to what bounding volumes
// need: a set of local vertices whose convex hull encloses the part.
type Shape interface {
	Vertices() []mgl64.Vec3
}

// Box is a cuboid centered on its node's origin.
type Box struct {
	Size mgl64.Vec3
}

// NewBox returns a box with the given edge lengths.
func NewBox(x, y, z float64) Box {
	return Box{Size: mgl64.Vec3{x, y, z}}
}

func (b Box) Vertices() []mgl64.Vec3 {
	c := NewAABBForExtents(mgl64.Vec3{}, b.Size.Mul(0.5)).Corners()
	return c[:]
}

func (b Box) String() string {
	return fmt.Sprintf("Box%v", b.Size)
}

// Cylinder is an upright cylinder centered on its node's origin.
// Its vertices are those of the enclosing square prism.
type Cylinder struct {
	Radius, Height float64
}

func (c Cylinder) Vertices() []mgl64.Vec3 {
	return Box{Size: mgl64.Vec3{2 * c.Radius, c.Height, 2 * c.Radius}}.Vertices()
}

// Pyramid is a square pyramid centered on its node's origin, apex up.
type Pyramid struct {
	Side, Height float64
}

func (p Pyramid) Vertices() []mgl64.Vec3 {
	h := p.Side / 2
	y := p.Height / 2
	return []mgl64.Vec3{
		{-h, -y, -h},
		{h, -y, -h},
		{h, -y, h},
		{-h, -y, h},
		{0, y, 0},
	}
}

// Hull is an arbitrary point set.
type Hull struct {
	Points []mgl64.Vec3
}

func (h Hull) Vertices() []mgl64.Vec3 {
	return h.Points
}

// fingerOutline is the side profile of a claw finger in the XY plane,
// extruded 2 units along Z.
var fingerOutline = [...][2]float64{
	{0, 0},
	{0, -2},
	{5, -5},
	{3.5, -5},
	{3, -10},
	{1, -12},
}

// NewFinger returns the hull of one claw finger scaled by scale and turned
// about Y by yaw, so four fingers at quarter turns surround the claw axis.
func NewFinger(scale, yaw float64) Hull {
	q := mgl64.QuatRotate(yaw, YAxis)
	points := make([]mgl64.Vec3, 0, 2*len(fingerOutline))
	for _, z := range [...]float64{0, 2} {
		for _, p := range fingerOutline {
			v := mgl64.Vec3{p[0], p[1], z}.Mul(scale)
			points = append(points, q.Rotate(v))
		}
	}
	return Hull{Points: points}
}
