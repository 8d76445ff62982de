package main

import (
	"math"

	"github.com/setanarut/crane"
	"github.com/setanarut/vec"
)

// autopilot plays the keyboard to carry every crate in the yard, one at a
// time: swing over it, run the trolley out, lower until the claw touches.
type autopilot struct {
	sim    *crane.Simulation
	target *crane.Crate
}

func newAutopilot(sim *crane.Simulation) *autopilot {
	return &autopilot{sim: sim}
}

// polar returns the tower angle and trolley offset that put the claw over
// the ground point p.
func polar(p vec.Vec2) (angle, radius float64) {
	return math.Atan2(-p.Y, p.X), p.Mag()
}

// steer presses the keys for this frame. It reports false once there is
// nothing left to do.
func (a *autopilot) steer(dt float64) bool {
	kb := a.sim.Keyboard()
	kb.Reset()
	if a.sim.Animating() {
		a.target = nil
		return true
	}
	if a.target == nil {
		if len(a.sim.Yard.Crates) == 0 {
			return false
		}
		a.target = a.sim.Yard.Crates[0]
	}

	rates := a.sim.ManualRates()
	k := a.sim.Kinematics()
	l := a.sim.Limits()
	angle, radius := polar(a.target.Footprint().Center())
	angle = crane.Clamp(angle, l.MinTowerAngle, l.MaxTowerAngle)
	radius = crane.Clamp(radius, l.MinTrolleyX, l.MaxTrolleyX)

	aligned := a.drive(kb, k.TowerAngle, angle, rates.Tower*dt, 'q', 'a')
	aligned = a.drive(kb, k.TrolleyX, radius, rates.Trolley*dt, 'w', 's') && aligned
	if !aligned {
		if k.RopeScale > 1 {
			kb.Press('e', false)
		}
		return true
	}
	if k.RopeScale >= l.MaxRopeScale {
		// lowered all the way without touching anything
		return false
	}
	kb.Press('d', false)
	return true
}

// drive holds up or down until value is within half a step of target.
func (a *autopilot) drive(kb *crane.Keyboard, value, target, step float64, up, down crane.Key) bool {
	switch {
	case value < target-step/2:
		kb.Press(up, false)
		return false
	case value > target+step/2:
		kb.Press(down, false)
		return false
	default:
		return true
	}
}
