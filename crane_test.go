package crane_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/crane"
)

func newTestCrane(t *testing.T) *crane.Crane {
	t.Helper()
	c, err := crane.NewCrane(crane.DefaultDimensions())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCraneHierarchy(t *testing.T) {
	c := newTestCrane(t)

	chain := []struct {
		child, parent *crane.Node
	}{
		{c.Lower, c.Root},
		{c.Upper, c.Lower},
		{c.Trolley, c.Upper},
		{c.Rope, c.Trolley},
		{c.ClawBase, c.Trolley},
		{c.Claw, c.Trolley},
	}
	for _, l := range chain {
		if l.child.Parent() != l.parent {
			t.Errorf("%s should hang from %s", l.child.Name, l.parent.Name)
		}
	}
	for i, f := range c.Fingers {
		if f.Parent() != c.Claw {
			t.Errorf("finger %d should hang from the claw", i)
		}
	}
}

func TestCraneRestPose(t *testing.T) {
	c := newTestCrane(t)

	if got := c.Upper.WorldPosition(); !near(got, mgl64.Vec3{0, 25, 0}) {
		t.Errorf("upper crane at %v", got)
	}
	if got := c.Trolley.WorldPosition(); !near(got, mgl64.Vec3{15, 35, 0}) {
		t.Errorf("trolley at %v", got)
	}
	if got := c.ClawPosition(); !near(got, mgl64.Vec3{15, 26, 0}) {
		t.Errorf("claw at %v", got)
	}
	if got := c.JibTip(); !near(got, mgl64.Vec3{32.5, 35, 0}) {
		t.Errorf("jib tip at %v", got)
	}
	if c.ClawLocalBounds.IsEmpty() {
		t.Error("claw has geometry")
	}
}

func TestCraneApply(t *testing.T) {
	c := newTestCrane(t)
	d := c.Dimensions
	k := crane.InitialKinematics(d)
	k.TowerAngle = math.Pi / 2
	k.TrolleyX = 20
	k.SetRope(4, d, c.Limits)
	c.Apply(k)

	// a quarter turn swings the jib from +X to -Z
	if got := c.Trolley.WorldPosition(); !near(got, mgl64.Vec3{0, 35, -20}) {
		t.Errorf("trolley at %v", got)
	}
	if got := c.ClawPosition(); !near(got, mgl64.Vec3{0, 35 + d.ClawYForRope(4), -20}) {
		t.Errorf("claw at %v", got)
	}
	if c.Rope.Scale[1] != 4 {
		t.Errorf("rope scale %v", c.Rope.Scale[1])
	}

	rope := c.Rope.WorldBounds()
	if math.Abs(rope.Size()[1]-d.RopeLength(4)) > 1e-9 {
		t.Errorf("rope length %v, want %v", rope.Size()[1], d.RopeLength(4))
	}
	if math.Abs(rope.Max[1]-(35-d.HTrolley)) > 1e-9 {
		t.Errorf("rope should start under the carriage, top at %v", rope.Max[1])
	}
}

func TestFingersCloseTowardAxis(t *testing.T) {
	c := newTestCrane(t)
	k := crane.InitialKinematics(c.Dimensions)
	axis := crane.Ground(c.ClawPosition())

	var open [4]crane.AABB
	for i, f := range c.Fingers {
		open[i] = f.WorldBounds()
	}
	openClaw := c.ClawBounds().Box

	k.FingerAngle = c.Limits.MaxFingerAngle
	c.Apply(k)

	for i, f := range c.Fingers {
		from := crane.Ground(open[i].Center())
		to := crane.Ground(f.WorldBounds().Center())
		if to.Sub(from).Dot(axis.Sub(from)) <= 0 {
			t.Errorf("finger %d swung away from the claw axis: %v -> %v", i, from, to)
		}
	}
	if c.ClawBounds().Box.Min[1] <= openClaw.Min[1] {
		t.Error("closing should lift the finger tips")
	}
}

func TestClawBoundsExcludeCarriedCrate(t *testing.T) {
	c := newTestCrane(t)
	before := c.ClawBounds()

	crate := crane.NewMesh("crate", crane.NewBox(5, 5, 5), crane.Red)
	c.Claw.Add(crate)
	crate.SetPosition(0, -4, 0)

	after := c.ClawBounds()
	if after.Box != before.Box {
		t.Error("carried crate leaked into the claw bounds")
	}
}
