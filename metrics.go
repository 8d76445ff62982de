package crane

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/setanarut/crane"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics counts frames and picks on the global OTel meter provider
// (no-op if none is configured).
type Metrics struct {
	frames    metric.Int64Counter
	started   metric.Int64Counter
	completed metric.Int64Counter
	empty     metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewMetrics creates the simulation instruments.
func NewMetrics() (*Metrics, error) {
	m := meter()
	mt := &Metrics{}

	var err error
	mt.frames, err = m.Int64Counter(
		"crane.frames",
		metric.WithDescription("Total simulation frames stepped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	mt.started, err = m.Int64Counter(
		"crane.picks.started",
		metric.WithDescription("Pick sequences triggered by a collision"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating picks started counter: %w", err)
	}

	mt.completed, err = m.Int64Counter(
		"crane.picks.completed",
		metric.WithDescription("Pick sequences run to completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating picks completed counter: %w", err)
	}

	mt.empty, err = m.Int64Counter(
		"crane.picks.empty",
		metric.WithDescription("Completed pick sequences that carried nothing"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating empty picks counter: %w", err)
	}

	mt.duration, err = m.Float64Histogram(
		"crane.picks.duration",
		metric.WithDescription("Simulated duration of a pick sequence"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pick duration histogram: %w", err)
	}

	return mt, nil
}

func (m *Metrics) frame(camera CameraID, animating bool) {
	m.frames.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("camera", camera.String()),
		attribute.Bool("animating", animating),
	))
}

// phase records the sequence events that matter for throughput.
func (m *Metrics) phase(e PhaseEvent) {
	ctx := context.Background()
	switch {
	case e.Done:
		attrs := metric.WithAttributes(attribute.Bool("empty", e.Crate == nil))
		m.completed.Add(ctx, 1, attrs)
		m.duration.Record(ctx, e.Elapsed, attrs)
		if e.Crate == nil {
			m.empty.Add(ctx, 1)
		}
	case e.Phase == ClosingClaw:
		m.started.Add(ctx, 1)
	}
}
