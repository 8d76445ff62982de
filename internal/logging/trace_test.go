package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/setanarut/crane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		lines = append(lines, m)
	}
	return lines
}

func newQuietSimulation(t *testing.T) *crane.Simulation {
	t.Helper()
	sim, err := crane.NewSimulation(crane.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return sim
}

func TestFrameTracer_Sampling(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFrameTracer(&buf, "debug")
	tr.Every = 5
	sim := newQuietSimulation(t)

	for i := 0; i < 20; i++ {
		sim.Step(1.0 / 60)
		tr.Trace(sim)
	}

	lines := traceLines(t, &buf)
	require.Len(t, lines, 4)
	first := lines[0]
	assert.Equal(t, "frame", first["message"])
	assert.Equal(t, "debug", first["level"])
	assert.EqualValues(t, 5, first["frame"])
	assert.Equal(t, "closingClaw", first["phase"])
	assert.Equal(t, false, first["animating"])
	assert.Contains(t, first, "time")
	assert.Len(t, first["claw"], 3)
}

func TestFrameTracer_UsesGlobalTimestampFunc(t *testing.T) {
	prev := zerolog.TimestampFunc
	t.Cleanup(func() { zerolog.TimestampFunc = prev })
	zerolog.TimestampFunc = func() time.Time { return testTime }

	var buf bytes.Buffer
	tr := NewFrameTracer(&buf, "debug")
	tr.Event(crane.PhaseEvent{Phase: crane.Rotating})

	assert.Equal(t, testTime, zerolog.TimestampFunc())
	lines := traceLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "2026-02-12T21:38:36Z", lines[0]["time"])
}

func TestFrameTracer_LevelSilencesFrames(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFrameTracer(&buf, "info")
	sim := newQuietSimulation(t)
	sim.Step(1.0 / 60)
	tr.Trace(sim)
	assert.Zero(t, buf.Len())

	tr.Event(crane.PhaseEvent{Phase: crane.Lifting, Elapsed: 1.25})
	lines := traceLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "sequence", lines[0]["message"])
	assert.Equal(t, "lifting", lines[0]["phase"])
	assert.Equal(t, 1.25, lines[0]["elapsed"])
	assert.NotContains(t, lines[0], "crate")
}

func TestFrameTracer_PhaseChangeIsAlwaysTraced(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFrameTracer(&buf, "debug")
	tr.Every = 1 << 20
	sim := newQuietSimulation(t)
	sim.OnPhase(tr.Event)

	target := sim.Yard.Crates[0]
	p := target.Footprint().Center()
	k := sim.Kinematics()
	k.TowerAngle = math.Atan2(-p.Y, p.X)
	k.TrolleyX = p.Mag()
	require.True(t, sim.SetKinematics(k))

	sim.Keyboard().Press('d', false)
	for i := 0; i < 2000; i++ {
		sim.Step(1.0 / 60)
		tr.Trace(sim)
		if len(sim.Yard.Deposited) > 0 {
			break
		}
	}
	require.Len(t, sim.Yard.Deposited, 1)

	var frames, events int
	var phases []string
	for _, l := range traceLines(t, &buf) {
		switch l["message"] {
		case "frame":
			frames++
			phases = append(phases, l["phase"].(string))
		case "sequence":
			events++
		}
	}
	assert.Equal(t, 6, events, "five phases and the finish")
	assert.Equal(t, []string{"closingClaw", "lifting", "rotating", "lowering", "releasing", "closingClaw"}, phases)
	assert.Equal(t, 6, frames)
}
