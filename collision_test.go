package crane_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/crane"
)

func TestDetectorBroadHitNarrowMiss(t *testing.T) {
	a := crane.Bounds{
		Box:    crane.NewAABBForExtents(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}),
		Sphere: crane.Sphere{Radius: 2},
	}
	b := crane.Bounds{
		Box:    crane.NewAABBForExtents(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{1, 1, 1}),
		Sphere: crane.Sphere{Center: mgl64.Vec3{4, 0, 0}, Radius: 3},
	}

	var d crane.Detector
	if d.Test(a, b) {
		t.Error("boxes are apart")
	}
	if d.BroadChecks != 1 || d.NarrowChecks != 1 {
		t.Errorf("checks = %d/%d, want 1/1", d.BroadChecks, d.NarrowChecks)
	}

	b.Sphere.Center = mgl64.Vec3{10, 0, 0}
	b.Box = crane.NewAABBForExtents(b.Box.Center().Add(mgl64.Vec3{6, 0, 0}), b.Box.Size().Mul(0.5))
	d.Reset()
	if d.Test(a, b) {
		t.Error("spheres are apart")
	}
	if d.NarrowChecks != 0 {
		t.Error("narrow phase should not run after a broad miss")
	}
}

func TestCollideTouching(t *testing.T) {
	a := crane.NewBounds(crane.NewAABBForExtents(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}))
	b := crane.NewBounds(crane.NewAABBForExtents(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{1, 1, 1}))
	if !crane.Collide(a, b) {
		t.Error("touching boxes collide")
	}
}

func TestDetectorCheckOrder(t *testing.T) {
	y := crane.NewYard([]crane.CrateSpec{
		{Size: mgl64.Vec3{2, 2, 2}, Material: crane.Red},
		{Size: mgl64.Vec3{2, 2, 2}, Material: crane.CoffeeBrown},
	}, crane.DefaultContainer())

	claw := crane.NewBounds(crane.NewAABBForExtents(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0.5, 0.5, 0.5}))

	var d crane.Detector
	i, ok := d.Check(claw, y.Crates)
	if !ok || i != 0 {
		t.Fatalf("got (%d, %v), want the first crate", i, ok)
	}
	if d.BroadChecks != 1 {
		t.Errorf("scan should stop at the first hit, made %d checks", d.BroadChecks)
	}

	y.Crates[0].Grabbed = true
	if i, _ := d.Check(claw, y.Crates); i != 1 {
		t.Errorf("grabbed crate should be skipped, got %d", i)
	}

	if _, ok := d.Check(crane.NewBounds(crane.EmptyAABB()), y.Crates); ok {
		t.Error("an empty claw hits nothing")
	}
	if _, ok := d.Check(claw, nil); ok {
		t.Error("no crates, no hit")
	}
}
