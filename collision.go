package crane

// Collide runs both phases on a pair of bounding volumes: the sphere test
// rejects distant pairs and the box test confirms the rest.
func Collide(a, b Bounds) bool {
	return a.Sphere.Intersects(b.Sphere) && a.Box.Intersects(b.Box)
}

// Detector finds the first crate touched by the claw.
//
// BroadChecks counts sphere tests and NarrowChecks the box tests that
// followed a sphere hit.
type Detector struct {
	BroadChecks  int
	NarrowChecks int
}

// Test runs the two-phase check on one pair and updates the counters.
func (d *Detector) Test(a, b Bounds) bool {
	d.BroadChecks++
	if !a.Sphere.Intersects(b.Sphere) {
		return false
	}
	d.NarrowChecks++
	return a.Box.Intersects(b.Box)
}

// Check tests claw against crates in order and returns the index of the
// first hit. Scanning stops at the first hit. Grabbed crates are skipped.
func (d *Detector) Check(claw Bounds, crates []*Crate) (int, bool) {
	if claw.Box.IsEmpty() {
		return -1, false
	}
	for i, c := range crates {
		if c.Grabbed {
			continue
		}
		if d.Test(claw, c.Bounds) {
			return i, true
		}
	}
	return -1, false
}

// Reset zeroes the counters.
func (d *Detector) Reset() {
	d.BroadChecks = 0
	d.NarrowChecks = 0
}
