package metrics

import (
	"sort"
	"time"

	"github.com/san-kum/circles/internal/sim"
)

// Stat selects the statistic FrameTime reports.
type Stat int

const (
	Mean Stat = iota
	Max
	P95
)

var statNames = map[Stat]string{Mean: "mean", Max: "max", P95: "p95"}

// FrameTime records tick durations in milliseconds.
type FrameTime struct {
	stat    Stat
	samples []float64
}

func NewFrameTime(stat Stat) *FrameTime {
	return &FrameTime{stat: stat}
}

func (f *FrameTime) Name() string {
	return "frame_ms_" + statNames[f.stat]
}

func (f *FrameTime) Observe(s sim.Sample) {
	f.Add(s.Took)
}

// Add records a duration measured outside the simulator, such as a render.
func (f *FrameTime) Add(d time.Duration) {
	f.samples = append(f.samples, float64(d)/float64(time.Millisecond))
}

func (f *FrameTime) Value() float64 {
	if len(f.samples) == 0 {
		return 0
	}
	switch f.stat {
	case Max:
		m := f.samples[0]
		for _, v := range f.samples[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case P95:
		return Percentile(f.samples, 0.95)
	}
	sum := 0.0
	for _, v := range f.samples {
		sum += v
	}
	return sum / float64(len(f.samples))
}

// Samples returns the recorded durations in milliseconds, oldest first.
func (f *FrameTime) Samples() []float64 { return f.samples }

func (f *FrameTime) Reset() {
	f.samples = f.samples[:0]
}

// Percentile uses nearest rank on a sorted copy of xs. p is in [0,1].
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	i := int(p*float64(len(sorted))+0.5) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}
