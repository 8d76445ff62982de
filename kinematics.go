package crane

import "fmt"

// Param names one of the five kinematic parameters.
type Param uint8

const (
	TrolleyX Param = iota
	TowerAngle
	RopeScale
	ClawY
	FingerAngle
)

// Params lists every parameter in declaration order.
var Params = [...]Param{TrolleyX, TowerAngle, RopeScale, ClawY, FingerAngle}

func (p Param) String() string {
	switch p {
	case TrolleyX:
		return "trolleyX"
	case TowerAngle:
		return "towerAngle"
	case RopeScale:
		return "ropeScale"
	case ClawY:
		return "clawY"
	case FingerAngle:
		return "fingerAngle"
	default:
		return fmt.Sprintf("Param(%d)", uint8(p))
	}
}

// Kinematics is the pose of the crane.
//
// TrolleyX is the trolley offset along the jib, TowerAngle the jib rotation
// about the vertical axis, RopeScale the rope length in units of
// BaseRopeHeight, ClawY the claw offset below the trolley and FingerAngle
// how far each finger has swung closed.
type Kinematics struct {
	TrolleyX    float64
	TowerAngle  float64
	RopeScale   float64
	ClawY       float64
	FingerAngle float64
}

// InitialKinematics returns the rest pose: trolley mid-jib, rope at unit
// length, claw open.
func InitialKinematics(d Dimensions) Kinematics {
	k := Kinematics{
		TrolleyX:    d.CJib / 2,
		TowerAngle:  0,
		RopeScale:   1,
		ClawY:       d.ClawYForRope(1),
		FingerAngle: 0,
	}
	k.ClampAll(d.Limits())
	return k
}

// Get returns the value of p.
func (k *Kinematics) Get(p Param) float64 {
	return *k.field(p)
}

// Set stores value into p clamped to its bounds and returns the stored value.
func (k *Kinematics) Set(p Param, value float64, l Limits) float64 {
	lo, hi := l.Range(p)
	f := k.field(p)
	*f = Clamp(value, lo, hi)
	return *f
}

// Add moves p by delta and clamps it.
func (k *Kinematics) Add(p Param, delta float64, l Limits) float64 {
	return k.Set(p, k.Get(p)+delta, l)
}

// ClampAll clamps every parameter to its bounds.
func (k *Kinematics) ClampAll(l Limits) {
	for _, p := range Params {
		k.Set(p, k.Get(p), l)
	}
}

// Within reports whether every parameter lies inside its bounds.
func (k Kinematics) Within(l Limits) bool {
	for _, p := range Params {
		lo, hi := l.Range(p)
		if v := k.Get(p); v < lo || v > hi {
			return false
		}
	}
	return true
}

// Apply adds d to k one parameter at a time, clamping after each. A rope
// change drags the claw along with it.
func (k *Kinematics) Apply(d Delta, dims Dimensions, l Limits) {
	if d.TrolleyX != 0 {
		k.Add(TrolleyX, d.TrolleyX, l)
	}
	if d.TowerAngle != 0 {
		k.Add(TowerAngle, d.TowerAngle, l)
	}
	if d.RopeScale != 0 {
		k.Hoist(d.RopeScale, dims, l)
	}
	if d.ClawY != 0 {
		k.Add(ClawY, d.ClawY, l)
	}
	if d.FingerAngle != 0 {
		k.Add(FingerAngle, d.FingerAngle, l)
	}
}

// Hoist moves the rope by delta scale units and lets the claw follow.
func (k *Kinematics) Hoist(delta float64, d Dimensions, l Limits) {
	k.SetRope(k.RopeScale+delta, d, l)
}

// SetRope sets the rope scale and moves the claw to match.
func (k *Kinematics) SetRope(scale float64, d Dimensions, l Limits) {
	k.Set(RopeScale, scale, l)
	k.Set(ClawY, d.ClawYForRope(k.RopeScale), l)
}

func (k *Kinematics) field(p Param) *float64 {
	switch p {
	case TrolleyX:
		return &k.TrolleyX
	case TowerAngle:
		return &k.TowerAngle
	case RopeScale:
		return &k.RopeScale
	case ClawY:
		return &k.ClawY
	case FingerAngle:
		return &k.FingerAngle
	default:
		panic(fmt.Sprintf("crane: unknown parameter %d", p))
	}
}

// Delta is a per-frame change of the kinematic parameters.
type Delta Kinematics

// Get returns the change of p.
func (d Delta) Get(p Param) float64 {
	k := Kinematics(d)
	return k.Get(p)
}

// IsZero reports whether d changes nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

func (k Kinematics) String() string {
	return fmt.Sprintf("trolleyX=%.3f towerAngle=%.3f ropeScale=%.3f clawY=%.3f fingerAngle=%.3f",
		k.TrolleyX, k.TowerAngle, k.RopeScale, k.ClawY, k.FingerAngle)
}
