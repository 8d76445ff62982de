package crane

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is a stage of the pick-and-place sequence.
type Phase uint8

const (
	// ClosingClaw swings the fingers shut around the crate.
	ClosingClaw Phase = iota
	// Lifting shortens the rope until the claw is at the trolley.
	Lifting
	// Rotating turns the jib to its far stop.
	Rotating
	// Lowering pays the rope out to full length.
	Lowering
	// Releasing opens the fingers again.
	Releasing
)

func (p Phase) String() string {
	switch p {
	case ClosingClaw:
		return "closingClaw"
	case Lifting:
		return "lifting"
	case Rotating:
		return "rotating"
	case Lowering:
		return "lowering"
	case Releasing:
		return "releasing"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// SequenceRates are the speeds of the scripted phases, per second.
type SequenceRates struct {
	Finger float64 `mapstructure:"finger"`
	Tower  float64 `mapstructure:"tower"`
	Rope   float64 `mapstructure:"rope"`
}

// DefaultSequenceRates closes the claw in one second and turns the jib
// half a revolution in two.
func DefaultSequenceRates() SequenceRates {
	return SequenceRates{
		Finger: math.Pi / 4,
		Tower:  math.Pi / 2,
		Rope:   3,
	}
}

// Validate reports whether every phase speed is positive and finite. The
// sequence cannot be cancelled, so a phase must always reach its target.
func (r SequenceRates) Validate() error {
	return validateRates("sequence",
		namedRate{"finger", r.Finger},
		namedRate{"tower", r.Tower},
		namedRate{"rope", r.Rope})
}

// DefaultCarryOffset is where a grabbed crate hangs in the claw frame.
var DefaultCarryOffset = mgl64.Vec3{0, -4, 0}

// PhaseEvent reports a change of the sequence.
type PhaseEvent struct {
	// Phase is the phase just entered. When Done is set it is the phase
	// that completed last.
	Phase Phase
	// Crate is the crate handled by this sequence, nil for an empty grab.
	Crate *Crate
	// Elapsed is the time since the trigger.
	Elapsed float64
	Done    bool
}

// Sequencer drives the kinematic state through the pick-and-place phases.
// While active it is the only writer of the state; it cannot be cancelled.
type Sequencer struct {
	Rates       SequenceRates
	CarryOffset mgl64.Vec3

	// OnPhase is called from Trigger and Step after every change.
	OnPhase func(PhaseEvent)

	logger  *slog.Logger
	active  bool
	phase   Phase
	pending *Crate
	carried *Crate
	target  *Crate
	elapsed float64
}

// NewSequencer returns an idle sequencer.
func NewSequencer(rates SequenceRates, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		Rates:       rates,
		CarryOffset: DefaultCarryOffset,
		logger:      logger,
	}
}

// Active reports whether a sequence is running.
func (s *Sequencer) Active() bool {
	return s.active
}

// Phase returns the current phase. It is ClosingClaw while idle.
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Carried returns the crate hanging in the claw, if any.
func (s *Sequencer) Carried() *Crate {
	return s.carried
}

// Pending returns the crate waiting to be attached at the start of Lifting.
func (s *Sequencer) Pending() *Crate {
	return s.pending
}

// Trigger starts a sequence for c, which may be nil for an empty grab.
// A trigger while a sequence runs is ignored and reports false.
func (s *Sequencer) Trigger(c *Crate) bool {
	if s.active {
		return false
	}
	s.active = true
	s.phase = ClosingClaw
	s.pending = c
	s.target = c
	s.elapsed = 0
	if c != nil {
		s.logger.Info("Pick started", "crate", c.ID)
	} else {
		s.logger.Debug("Pick started without a crate")
	}
	s.emit(PhaseEvent{Phase: ClosingClaw})
	return true
}

// Step advances the current phase by dt seconds and moves to the next
// phase on the frame its target is reached. It reports whether the
// sequence finished during this step.
func (s *Sequencer) Step(dt float64, k *Kinematics, c *Crane, y *Yard) bool {
	if !s.active {
		return false
	}
	s.elapsed += dt
	l := c.Limits
	var reached bool
	switch s.phase {
	case ClosingClaw:
		reached = s.turn(k, FingerAngle, l.MaxFingerAngle, s.Rates.Finger*dt, l)
	case Lifting:
		reached = s.hoist(k, l.MinRopeScale, dt, c.Dimensions, l)
	case Rotating:
		reached = s.turn(k, TowerAngle, l.MaxTowerAngle, s.Rates.Tower*dt, l)
	case Lowering:
		reached = s.hoist(k, l.MaxRopeScale, dt, c.Dimensions, l)
	case Releasing:
		reached = s.turn(k, FingerAngle, l.MinFingerAngle, s.Rates.Finger*dt, l)
	default:
		panic("Internal Error: unknown phase")
	}
	if !reached {
		return false
	}
	if s.phase == Releasing {
		s.finish(y)
		return true
	}
	s.enter(s.phase+1, c, y)
	return false
}

func (s *Sequencer) turn(k *Kinematics, p Param, target, step float64, l Limits) bool {
	return k.Set(p, approach(k.Get(p), target, step), l) == target
}

func (s *Sequencer) hoist(k *Kinematics, target, dt float64, d Dimensions, l Limits) bool {
	k.SetRope(approach(k.RopeScale, target, s.Rates.Rope*dt), d, l)
	return k.RopeScale == target
}

func (s *Sequencer) enter(next Phase, c *Crane, y *Yard) {
	s.phase = next
	if next == Lifting {
		s.attach(c, y)
	}
	s.logger.Debug("Phase entered", "phase", next, "elapsed", s.elapsed)
	s.emit(PhaseEvent{Phase: next})
}

// attach moves the pending crate from the yard into the claw, once.
func (s *Sequencer) attach(c *Crane, y *Yard) {
	crate := s.pending
	s.pending = nil
	if crate == nil {
		s.logger.Debug("Claw closed on nothing, lifting empty")
		return
	}
	if !y.Take(crate) {
		s.logger.Warn("Crate no longer in the yard", "crate", crate.ID)
		s.target = nil
		return
	}
	c.Claw.Add(crate.Node)
	crate.Node.Position = s.CarryOffset
	s.carried = crate
	s.logger.Info("Crate attached", "crate", crate.ID)
}

func (s *Sequencer) finish(y *Yard) {
	if crate := s.carried; crate != nil {
		y.Deposit(crate)
		s.carried = nil
		s.logger.Info("Crate deposited", "crate", crate.ID, "inContainer", crate.InContainer,
			"at", Ground(crate.Node.WorldPosition()))
	}
	last := s.phase
	s.active = false
	s.phase = ClosingClaw
	s.logger.Debug("Pick finished", "elapsed", s.elapsed)
	s.emit(PhaseEvent{Phase: last, Done: true})
	s.target = nil
}

func (s *Sequencer) emit(e PhaseEvent) {
	if s.OnPhase == nil {
		return
	}
	e.Crate = s.target
	e.Elapsed = s.elapsed
	s.OnPhase(e)
}
