package crane

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Finger is one of the four claw blades. It swings about Axis through the
// claw origin; Sign orients the swing so a positive FingerAngle moves every
// tip toward the claw axis.
type Finger struct {
	*Node
	Axis mgl64.Vec3
	Sign float64
}

// Crane is the articulated tower crane.
//
// The hierarchy is
//
//	Root
//	└── Lower (base, tower)
//	    └── Upper (peaks, jib, counter-jib, counterweight, cab, pendants)
//	        └── Trolley (carriage, Rope, ClawBase)
//	            └── Claw
//	                └── Fingers[0..3]
//
// Every node the simulation moves is held as a typed handle.
type Crane struct {
	Dimensions Dimensions
	Limits     Limits

	Root     *Node
	Lower    *Node
	Upper    *Node
	Trolley  *Node
	Rope     *Node
	ClawBase *Node
	Claw     *Node
	Fingers  [4]Finger

	// ClawLocalBounds encloses the open claw in the claw's own frame.
	ClawLocalBounds AABB
}

// NewCrane builds the crane hierarchy from d in its rest pose.
func NewCrane(d Dimensions) (*Crane, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("building crane: %w", err)
	}
	c := &Crane{
		Dimensions: d,
		Limits:     d.Limits(),
		Root:       NewNode("crane"),
	}
	k := InitialKinematics(d)

	c.Lower = c.Root.Add(c.buildLower())
	c.Upper = c.Lower.Add(c.buildUpper())
	c.Upper.SetPosition(0, d.HBase+d.HTower, 0)
	c.Trolley = c.Upper.Add(c.buildTrolley())
	c.Trolley.SetPosition(k.TrolleyX, d.HDifference, 0)
	c.Claw = c.Trolley.Add(c.buildClaw())
	c.Claw.SetPosition(0, k.ClawY, 0)
	c.ClawLocalBounds = c.Claw.LocalBounds()

	c.check()
	c.Apply(k)
	return c, nil
}

func (c *Crane) buildLower() *Node {
	d := c.Dimensions
	lower := NewNode("lowerCrane")
	base := lower.Add(NewMesh("base", NewBox(d.LBase, d.HBase, d.LBase), Grey))
	base.SetPosition(0, d.HBase/2, 0)
	tower := lower.Add(NewMesh("tower", NewBox(d.LTower, d.HTower, d.LTower), LightOrange))
	tower.SetPosition(0, d.HBase+d.HTower/2, 0)
	return lower
}

func (c *Crane) buildUpper() *Node {
	d := c.Dimensions
	upper := NewNode("upperCrane")
	jibY := d.HDifference + d.HJib/2

	peak := upper.Add(NewMesh("superiorTowerPeak", Pyramid{Side: d.LTower, Height: d.HSuperiorTowerPeak}, DarkOrange))
	peak.SetPosition(0, d.HInferiorTowerPeak+d.HSuperiorTowerPeak/2, 0)

	inferior := upper.Add(NewMesh("inferiorTowerPeak", NewBox(d.LTower, d.HInferiorTowerPeak, d.LTower), DarkOrange))
	inferior.SetPosition(0, d.HInferiorTowerPeak/2, 0)

	jib := upper.Add(NewMesh("jib", NewBox(d.CJib, d.HJib, d.LTower), DarkOrange))
	jib.SetPosition((d.LTower+d.CJib)/2, jibY, 0)

	counterJib := upper.Add(NewMesh("counterJib", NewBox(d.CCounterJib, d.HJib, d.LTower), DarkOrange))
	counterJib.SetPosition(-(d.LTower+d.CCounterJib)/2, jibY, 0)

	weight := upper.Add(NewMesh("counterWeight", NewBox(d.CCounterWeight, d.HCounterWeight, d.LTower), Grey))
	weight.SetPosition((d.CCounterWeight-d.LTower)/2-d.CCounterJib, jibY-d.HJib, 0)

	cab := upper.Add(NewMesh("cab", NewBox(d.LTower, d.LTower, d.LCab), LightBlue))
	cab.SetPosition(0, d.HDifference/2, (d.LTower+d.LCab)/2)

	apex := mgl64.Vec3{0, d.HInferiorTowerPeak, 0}
	front := mgl64.Vec3{d.CJib / 2, d.HDifference, 0}
	rear := mgl64.Vec3{-d.CJib / 2, d.HDifference, 0}
	upper.Add(c.pendant("frontPendant", front, apex, mgl64.Vec3{d.CJib / 4, d.HInferiorTowerPeak, 0}))
	upper.Add(c.pendant("rearPendant", rear, apex, mgl64.Vec3{-d.CCounterJib / 2, d.HInferiorTowerPeak, 0}))
	return upper
}

// pendant lays a tie rod along from→to, centered at at.
func (c *Crane) pendant(name string, from, to, at mgl64.Vec3) *Node {
	q, length := Bone(from, to)
	n := NewMesh(name, Cylinder{Radius: c.Dimensions.RPendant, Height: length}, Purple)
	n.Rotation = q
	n.Position = at
	return n
}

func (c *Crane) buildTrolley() *Node {
	d := c.Dimensions
	trolley := NewNode("trolley")
	carriage := trolley.Add(NewMesh("carriage", NewBox(d.CTrolley, d.HTrolley, d.LTower), Grey))
	carriage.SetPosition(0, -d.HTrolley/2, 0)
	c.Rope = trolley.Add(NewMesh("rope", Cylinder{Radius: d.RRope, Height: BaseRopeHeight}, Grey))
	c.ClawBase = trolley.Add(NewMesh("clawBase", NewBox(d.LClawBase, d.HClawBase, d.LClawBase), LightOrange))
	return trolley
}

var fingerLayout = [4]struct {
	yaw  float64
	axis mgl64.Vec3
	sign float64
}{
	{0, ZAxis, -1},
	{math.Pi, ZAxis, 1},
	{math.Pi / 2, XAxis, -1},
	{-math.Pi / 2, XAxis, 1},
}

func (c *Crane) buildClaw() *Node {
	claw := NewNode("claw")
	for i, l := range fingerLayout {
		n := claw.Add(NewMesh(fmt.Sprintf("finger%d", i), NewFinger(c.Dimensions.FingerScale, l.yaw), Pink))
		c.Fingers[i] = Finger{Node: n, Axis: l.axis, Sign: l.sign}
	}
	return claw
}

// check fails fast on a broken hierarchy.
func (c *Crane) check() {
	parents := []struct {
		child, parent *Node
	}{
		{c.Lower, c.Root},
		{c.Upper, c.Lower},
		{c.Trolley, c.Upper},
		{c.Rope, c.Trolley},
		{c.ClawBase, c.Trolley},
		{c.Claw, c.Trolley},
	}
	for _, f := range c.Fingers {
		parents = append(parents, struct{ child, parent *Node }{f.Node, c.Claw})
	}
	for _, p := range parents {
		if p.child == nil || p.parent == nil || p.child.Parent() != p.parent {
			panic("Internal Error: crane hierarchy is broken")
		}
	}
}

// Apply maps the kinematic state onto the hierarchy. k is expected to be
// clamped already.
func (c *Crane) Apply(k Kinematics) {
	d := c.Dimensions
	c.Upper.Rotation = mgl64.QuatRotate(k.TowerAngle, YAxis)
	c.Trolley.Position[0] = k.TrolleyX

	length := d.RopeLength(k.RopeScale)
	c.Rope.Scale[1] = k.RopeScale
	c.Rope.Position[1] = -(d.HTrolley + length/2)
	c.ClawBase.Position[1] = -(d.HTrolley + length + d.HClawBase/2)

	c.Claw.Position[1] = k.ClawY
	for _, f := range c.Fingers {
		f.Rotation = mgl64.QuatRotate(f.Sign*k.FingerAngle, f.Axis)
	}
}

// ClawBounds returns the current world bounding volumes of the fingers.
// A crate carried by the claw is not part of them.
func (c *Crane) ClawBounds() Bounds {
	box := EmptyAABB()
	for _, f := range c.Fingers {
		box = box.Merge(f.WorldBounds())
	}
	return NewBounds(box)
}

// ClawPosition returns the world position of the claw origin.
func (c *Crane) ClawPosition() mgl64.Vec3 {
	return c.Claw.WorldPosition()
}

// JibTip returns the world position of the far end of the jib at trolley
// height.
func (c *Crane) JibTip() mgl64.Vec3 {
	d := c.Dimensions
	local := mgl64.Vec3{d.LTower/2 + d.CJib, d.HDifference, 0}
	return mgl64.TransformCoordinate(local, c.Upper.WorldMatrix())
}
