package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/setanarut/crane"
)

// FrameTracer writes one JSON line per sampled frame.
type FrameTracer struct {
	logger zerolog.Logger
	// Every samples one frame in Every; 0 or 1 traces all frames. Frames
	// with a phase change are always traced.
	Every uint64

	lastPhase crane.Phase
	lastBusy  bool
}

// zerologLevel converts a string log level to zerolog.Level.
func zerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewFrameTracer returns a tracer writing to w. Frames are logged at debug
// level, so a level above debug silences them. Timestamps come from
// zerolog.TimestampFunc.
func NewFrameTracer(w io.Writer, level string) *FrameTracer {
	logger := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &FrameTracer{logger: logger}
}

// Trace records the state of sim after a step.
func (t *FrameTracer) Trace(sim *crane.Simulation) {
	seq := sim.Sequencer()
	busy := seq.Active()
	changed := busy != t.lastBusy || seq.Phase() != t.lastPhase
	t.lastBusy, t.lastPhase = busy, seq.Phase()

	frame := sim.Frame()
	if !changed && t.Every > 1 && frame%t.Every != 0 {
		return
	}

	k := sim.Kinematics()
	claw := sim.Crane.ClawPosition()
	t.logger.Debug().
		Uint64("frame", frame).
		Float64("t", sim.Elapsed()).
		Bool("animating", busy).
		Stringer("phase", seq.Phase()).
		Float64("trolleyX", k.TrolleyX).
		Float64("towerAngle", k.TowerAngle).
		Float64("ropeScale", k.RopeScale).
		Float64("clawY", k.ClawY).
		Float64("fingerAngle", k.FingerAngle).
		Floats64("claw", claw[:]).
		Int("crates", len(sim.Yard.Crates)).
		Msg("frame")
}

// Event records a sequence change.
func (t *FrameTracer) Event(e crane.PhaseEvent) {
	ev := t.logger.Info().
		Stringer("phase", e.Phase).
		Bool("done", e.Done).
		Float64("elapsed", e.Elapsed)
	if e.Crate != nil {
		ev = ev.Int("crate", e.Crate.ID).Bool("inContainer", e.Crate.InContainer)
	}
	ev.Msg("sequence")
}
