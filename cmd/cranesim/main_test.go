package main

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/setanarut/crane"
	"github.com/setanarut/vec"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolar(t *testing.T) {
	angle, radius := polar(vec.Vec2{X: 0, Y: -10})
	assert.InDelta(t, math.Pi/2, angle, 1e-12)
	assert.InDelta(t, 10, radius, 1e-12)
}

func TestAutopilotClearsYard(t *testing.T) {
	sim, err := crane.NewSimulation(crane.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	pilot := newAutopilot(sim)

	const dt = 1.0 / 60
	for i := 0; i < 60*60; i++ {
		if !pilot.steer(dt) {
			break
		}
		sim.Step(dt)
	}

	assert.Empty(t, sim.Yard.Crates)
	require.Len(t, sim.Yard.Deposited, 2)
	for _, c := range sim.Yard.Deposited {
		assert.True(t, c.InContainer, "%v", c)
	}
}

func TestASCIIDrawer(t *testing.T) {
	d := newASCIIDrawer(crane.NewBB(0, 0, 10, 5), 1)
	crane.DrawFootprint(crane.NewBB(1, 1, 3, 3), crane.Red.Color(), d)
	d.DrawSegment(vec.Vec2{X: 5, Y: 4}, vec.Vec2{X: 9, Y: 4}, crane.DarkOrange.Color(), nil)
	d.DrawDot(1, vec.Vec2{X: 50, Y: 50}, crane.Grey.Color(), nil)

	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, rows, 5)
	assert.Len(t, rows[0], 10)
	assert.Equal(t, "rrr", rows[1][1:4])
	assert.Equal(t, "r.r", rows[2][1:4])
	assert.Equal(t, "=====", rows[4][5:10])
	assert.NotContains(t, buf.String(), "o", "points outside the view are dropped")
}

func TestRun(t *testing.T) {
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	err := run([]string{"--config", t.TempDir(), "--log-level", "error", "--duration", "40s"}, &out)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, rows, 60)
	assert.Contains(t, out.String(), "r", "the red crate is drawn")
	assert.Contains(t, out.String(), "=", "the jib is drawn")
}

func TestRun_BadFrameRate(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := run([]string{"--config", t.TempDir(), "--log-level", "error", "--fps", "0"}, io.Discard)
	assert.ErrorContains(t, err, "frame rate")
}
