package metrics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/sim"
	"github.com/san-kum/circles/internal/world"
)

func TestFrameTime(t *testing.T) {
	durations := []time.Duration{4, 1, 3, 2, 10}
	tests := []struct {
		stat Stat
		name string
		want float64
	}{
		{Mean, "frame_ms_mean", 4},
		{Max, "frame_ms_max", 10},
		{P95, "frame_ms_p95", 10},
	}

	for _, tt := range tests {
		m := NewFrameTime(tt.stat)
		if m.Name() != tt.name {
			t.Errorf("name = %s, want %s", m.Name(), tt.name)
		}
		for _, d := range durations {
			m.Observe(sim.Sample{Took: d * time.Millisecond})
		}
		if math.Abs(m.Value()-tt.want) > 1e-9 {
			t.Errorf("%s = %f, want %f", tt.name, m.Value(), tt.want)
		}
		m.Reset()
		if m.Value() != 0 || len(m.Samples()) != 0 {
			t.Errorf("%s not cleared by Reset", tt.name)
		}
	}
}

func TestPercentile(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	if got := Percentile(xs, 0.5); got != 3 {
		t.Errorf("median = %f", got)
	}
	if got := Percentile(xs, 0); got != 1 {
		t.Errorf("p0 = %f", got)
	}
	if got := Percentile(xs, 1); got != 5 {
		t.Errorf("p100 = %f", got)
	}
	if xs[0] != 5 {
		t.Error("input was sorted in place")
	}
	if Percentile(nil, 0.5) != 0 {
		t.Error("empty percentile should be 0")
	}
}

func TestPan(t *testing.T) {
	m := NewPan()
	for _, off := range []geom.Vec2{{}, geom.V(3, 4), geom.V(3, 4), geom.V(0, 0)} {
		m.Observe(sim.Sample{Context: sim.Context{Offset: off}})
	}
	if m.Value() != 10 {
		t.Errorf("pan = %f, want 10", m.Value())
	}
	m.Reset()
	m.Observe(sim.Sample{Context: sim.Context{Offset: geom.V(100, 0)}})
	if m.Value() != 0 {
		t.Errorf("first sample after reset should not count, got %f", m.Value())
	}
}

func TestAliveWithSimulator(t *testing.T) {
	w, err := world.New(world.DefaultParams(), geom.Viewport{Width: 320, Height: 240})
	if err != nil {
		t.Fatal(err)
	}

	s := sim.New(w)
	alive := NewAlive(w)
	s.AddMetric(alive)
	s.AddMetric(NewFrameTime(Mean))
	s.AddMetric(NewPan())

	cfg := sim.DefaultConfig()
	cfg.Ticks = 60
	res, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	life := res.Metrics["mean_life"]
	if life <= 0 || life > 1 {
		t.Errorf("mean life %f out of range", life)
	}
	if _, ok := res.Metrics["frame_ms_mean"]; !ok {
		t.Error("frame time metric missing")
	}
	if res.Metrics["camera_pan_px"] != 0 {
		t.Errorf("camera moved with a centered cursor: %f", res.Metrics["camera_pan_px"])
	}
}
