package crane

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a node's placement relative to its parent: scale first,
// then rotation, then translation.
//
//	M = T(Position) * R(Rotation) * S(Scale)
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransformIdentity returns the transform that leaves points unchanged.
func NewTransformIdentity() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Mat4 returns the homogeneous matrix of t.
func (t Transform) Mat4() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	scale := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// Bone returns the rotation that turns the local Y axis onto the segment
// v0→v1 together with the segment length, which is how cylinders are laid
// along an arbitrary direction.
func Bone(v0, v1 mgl64.Vec3) (mgl64.Quat, float64) {
	d := v1.Sub(v0)
	length := d.Len()
	if length < magicEpsilon {
		return mgl64.QuatIdent(), 0
	}
	return mgl64.QuatBetweenVectors(YAxis, d.Mul(1/length)), length
}
