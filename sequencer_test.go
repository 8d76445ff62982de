package crane_test

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/setanarut/crane"
	. "github.com/smartystreets/goconvey/convey"
)

type pickRig struct {
	crane  *crane.Crane
	yard   *crane.Yard
	kin    crane.Kinematics
	seq    *crane.Sequencer
	events []crane.PhaseEvent
}

func newPickRig(rates crane.SequenceRates) *pickRig {
	c, err := crane.NewCrane(crane.DefaultDimensions())
	So(err, ShouldBeNil)
	r := &pickRig{
		crane: c,
		yard:  crane.NewYard(crane.DefaultCrates(), crane.DefaultContainer()),
		kin:   crane.InitialKinematics(c.Dimensions),
		seq:   crane.NewSequencer(rates, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	r.seq.OnPhase = func(e crane.PhaseEvent) {
		r.events = append(r.events, e)
	}
	return r
}

// run steps the sequencer until it finishes and returns the frame count.
func (r *pickRig) run(dt float64) int {
	for frame := 1; frame < 100000; frame++ {
		done := r.seq.Step(dt, &r.kin, r.crane, r.yard)
		r.crane.Apply(r.kin)
		if done {
			return frame
		}
	}
	panic("sequence never finished")
}

// overCrate puts the claw straight above the first crate.
func (r *pickRig) overCrate() *crane.Crate {
	c := r.yard.Crates[0]
	p := c.Footprint().Center()
	r.kin.TowerAngle = math.Atan2(-p.Y, p.X)
	r.kin.TrolleyX = p.Mag()
	r.crane.Apply(r.kin)
	return c
}

func TestSequencer(t *testing.T) {
	Convey("Given a crane parked over a crate", t, func() {
		r := newPickRig(crane.DefaultSequenceRates())
		crate := r.overCrate()
		trolley := r.kin.TrolleyX
		l := r.crane.Limits

		Convey("an idle sequencer does nothing", func() {
			before := r.kin
			So(r.seq.Step(1, &r.kin, r.crane, r.yard), ShouldBeFalse)
			So(r.kin, ShouldResemble, before)
			So(r.seq.Phase(), ShouldEqual, crane.ClosingClaw)
		})

		Convey("a triggered sequence", func() {
			So(r.seq.Trigger(crate), ShouldBeTrue)
			So(r.seq.Active(), ShouldBeTrue)
			So(r.seq.Pending(), ShouldEqual, crate)

			Convey("ignores a second trigger", func() {
				So(r.seq.Trigger(r.yard.Crates[1]), ShouldBeFalse)
				So(r.seq.Pending(), ShouldEqual, crate)
				So(r.events, ShouldHaveLength, 1)
			})

			Convey("attaches the crate when lifting starts", func() {
				for r.seq.Phase() == crane.ClosingClaw {
					r.seq.Step(1.0/60, &r.kin, r.crane, r.yard)
				}
				So(r.seq.Phase(), ShouldEqual, crane.Lifting)
				So(r.kin.FingerAngle, ShouldEqual, l.MaxFingerAngle)
				So(r.seq.Carried(), ShouldEqual, crate)
				So(r.seq.Pending(), ShouldBeNil)
				So(crate.Grabbed, ShouldBeTrue)
				So(crate.Node.Parent(), ShouldEqual, r.crane.Claw)
				So(r.yard.Index(crate), ShouldEqual, -1)
			})

			Convey("runs every phase once and ends at rest", func() {
				r.run(1.0 / 60)

				var phases []crane.Phase
				for _, e := range r.events {
					if !e.Done {
						phases = append(phases, e.Phase)
					}
				}
				So(phases, ShouldResemble, []crane.Phase{
					crane.ClosingClaw, crane.Lifting, crane.Rotating, crane.Lowering, crane.Releasing,
				})
				last := r.events[len(r.events)-1]
				So(last.Done, ShouldBeTrue)
				So(last.Phase, ShouldEqual, crane.Releasing)
				So(last.Crate, ShouldEqual, crate)

				So(r.seq.Active(), ShouldBeFalse)
				So(r.seq.Phase(), ShouldEqual, crane.ClosingClaw)
				So(r.seq.Carried(), ShouldBeNil)

				So(r.kin.TrolleyX, ShouldEqual, trolley)
				So(r.kin.TowerAngle, ShouldEqual, l.MaxTowerAngle)
				So(r.kin.RopeScale, ShouldEqual, l.MaxRopeScale)
				So(r.kin.ClawY, ShouldEqual, l.MinClawY)
				So(r.kin.FingerAngle, ShouldEqual, l.MinFingerAngle)
			})

			Convey("deposits the crate in the container", func() {
				r.run(1.0 / 60)

				So(crate.Deposited, ShouldBeTrue)
				So(crate.Grabbed, ShouldBeFalse)
				So(crate.InContainer, ShouldBeTrue)
				So(crate.Node.Parent(), ShouldEqual, r.yard.Root)
				So(r.yard.Deposited, ShouldResemble, []*crane.Crate{crate})
				So(r.yard.Crates, ShouldHaveLength, 1)

				floor := r.yard.Container.Floor
				So(crate.Bounds.Box.Min[1], ShouldAlmostEqual, floor, 1e-9)
				So(r.yard.Container.Holds(crate.Footprint().Center()), ShouldBeTrue)
			})
		})

		Convey("phase order is monotone with one reset at the end", func() {
			r.seq.Trigger(crate)
			prev := r.seq.Phase()
			resets, jumps := 0, 0
			for r.seq.Active() {
				r.seq.Step(1.0/45, &r.kin, r.crane, r.yard)
				cur := r.seq.Phase()
				switch {
				case cur == prev || cur == prev+1:
				case cur == crane.ClosingClaw && !r.seq.Active():
					resets++
				default:
					jumps++
				}
				prev = cur
			}
			So(jumps, ShouldEqual, 0)
			So(resets, ShouldEqual, 1)
		})

		Convey("the end state does not depend on the frame rate", func() {
			r.seq.Trigger(crate)
			frames30 := r.run(1.0 / 30)
			end30 := r.kin
			t30 := r.events[len(r.events)-1].Elapsed

			other := newPickRig(crane.DefaultSequenceRates())
			other.overCrate()
			other.seq.Trigger(other.yard.Crates[0])
			frames60 := other.run(1.0 / 60)
			t60 := other.events[len(other.events)-1].Elapsed

			So(other.kin, ShouldResemble, end30)
			So(frames60, ShouldBeGreaterThan, frames30)
			So(math.Abs(t30-t60), ShouldBeLessThanOrEqualTo, 5.0/30+1e-9)
			So(other.yard.Deposited[0].Footprint(), ShouldResemble, r.yard.Deposited[0].Footprint())
		})

		Convey("faster rates finish sooner", func() {
			fast := crane.DefaultSequenceRates()
			fast.Finger *= 2
			fast.Tower *= 2
			fast.Rope *= 2

			r.seq.Trigger(crate)
			slow := r.run(1.0 / 60)

			other := newPickRig(fast)
			other.overCrate()
			other.seq.Trigger(other.yard.Crates[0])
			So(other.run(1.0/60), ShouldBeLessThan, slow)
		})
	})

	Convey("Given a trigger without a crate", t, func() {
		r := newPickRig(crane.DefaultSequenceRates())
		So(r.seq.Trigger(nil), ShouldBeTrue)
		r.run(1.0 / 60)

		Convey("the claw makes the round trip empty", func() {
			So(r.seq.Active(), ShouldBeFalse)
			So(r.yard.Crates, ShouldHaveLength, 2)
			So(r.yard.Deposited, ShouldBeEmpty)
			last := r.events[len(r.events)-1]
			So(last.Done, ShouldBeTrue)
			So(last.Crate, ShouldBeNil)
		})
	})

	Convey("Given a crate taken before lifting starts", t, func() {
		r := newPickRig(crane.DefaultSequenceRates())
		crate := r.yard.Crates[0]
		r.seq.Trigger(crate)
		So(r.yard.Take(crate), ShouldBeTrue)
		r.run(1.0 / 60)

		Convey("the sequence still finishes without it", func() {
			So(r.seq.Carried(), ShouldBeNil)
			So(r.yard.Deposited, ShouldBeEmpty)
			So(r.events[len(r.events)-1].Crate, ShouldBeNil)
		})
	})
}
