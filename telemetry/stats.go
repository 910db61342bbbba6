package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wisp/vmath"
)

// Distribution summarizes a sample with mean, spread, and percentiles.
type Distribution struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes a Distribution. values is sorted in place.
// Returns the zero Distribution for an empty sample.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sort.Float64s(values)
	d := Distribution{
		Mean: stat.Mean(values, nil),
		P10:  stat.Quantile(0.10, stat.LinInterp, values, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, values, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, values, nil),
	}
	if len(values) > 1 {
		d.Std = stat.StdDev(values, nil)
	}
	return d
}

// CurveStats holds shape metrics extracted from one frame's buffers.
type CurveStats struct {
	Steps      Distribution // Segment lengths between consecutive vertices
	ArcLen     Distribution // Total length per curve
	HeadDist   Distribution // Field distance at each curve head
	Degenerate int          // Zero-length segments
}

// CollectCurveStats walks position buffers laid out with vertex v of
// instance i at index i + v*instanceCount. dist may be nil when no
// field is active.
func CollectCurveStats(positions []vmath.Vec4, instanceCount, historyLength int, dist func(vmath.Vec3) float32) CurveStats {
	var cs CurveStats
	if instanceCount <= 0 || historyLength < 2 {
		return cs
	}

	steps := make([]float64, 0, instanceCount*(historyLength-1))
	arcs := make([]float64, 0, instanceCount)
	heads := make([]float64, 0, instanceCount)

	for i := 0; i < instanceCount; i++ {
		var arc float64
		prev := positions[i].XYZ()
		for v := 1; v < historyLength; v++ {
			cur := positions[i+v*instanceCount].XYZ()
			l := float64(cur.Sub(prev).Length())
			if l == 0 {
				cs.Degenerate++
			}
			steps = append(steps, l)
			arc += l
			prev = cur
		}
		arcs = append(arcs, arc)
		if dist != nil {
			heads = append(heads, float64(dist(positions[i].XYZ())))
		}
	}

	cs.Steps = Summarize(steps)
	cs.ArcLen = Summarize(arcs)
	cs.HeadDist = Summarize(heads)
	return cs
}

// WindowStats holds aggregated statistics for a frame window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Buffer shape at window end
	InstanceCount int `csv:"instances"`
	HistoryLength int `csv:"history"`

	// Segment length distribution
	StepMean float64 `csv:"step_mean"`
	StepStd  float64 `csv:"step_std"`
	StepP10  float64 `csv:"step_p10"`
	StepP50  float64 `csv:"step_p50"`
	StepP90  float64 `csv:"step_p90"`

	// Per-curve arc length distribution
	ArcLenMean float64 `csv:"arclen_mean"`
	ArcLenP10  float64 `csv:"arclen_p10"`
	ArcLenP50  float64 `csv:"arclen_p50"`
	ArcLenP90  float64 `csv:"arclen_p90"`

	// Field distance at curve heads
	HeadDistMean float64 `csv:"head_dist_mean"`
	HeadDistP10  float64 `csv:"head_dist_p10"`
	HeadDistP50  float64 `csv:"head_dist_p50"`
	HeadDistP90  float64 `csv:"head_dist_p90"`

	// Degenerate segments (coincident vertices)
	Degenerate int `csv:"degenerate"`
}

// FillCurves copies curve metrics into the window record.
func (s *WindowStats) FillCurves(cs CurveStats) {
	s.StepMean = cs.Steps.Mean
	s.StepStd = cs.Steps.Std
	s.StepP10 = cs.Steps.P10
	s.StepP50 = cs.Steps.P50
	s.StepP90 = cs.Steps.P90

	s.ArcLenMean = cs.ArcLen.Mean
	s.ArcLenP10 = cs.ArcLen.P10
	s.ArcLenP50 = cs.ArcLen.P50
	s.ArcLenP90 = cs.ArcLen.P90

	s.HeadDistMean = cs.HeadDist.Mean
	s.HeadDistP10 = cs.HeadDist.P10
	s.HeadDistP50 = cs.HeadDist.P50
	s.HeadDistP90 = cs.HeadDist.P90

	s.Degenerate = cs.Degenerate
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("instances", s.InstanceCount),
		slog.Int("history", s.HistoryLength),
		slog.Float64("step_mean", s.StepMean),
		slog.Float64("step_std", s.StepStd),
		slog.Float64("step_p10", s.StepP10),
		slog.Float64("step_p50", s.StepP50),
		slog.Float64("step_p90", s.StepP90),
		slog.Float64("arclen_mean", s.ArcLenMean),
		slog.Float64("arclen_p10", s.ArcLenP10),
		slog.Float64("arclen_p50", s.ArcLenP50),
		slog.Float64("arclen_p90", s.ArcLenP90),
		slog.Float64("head_dist_mean", s.HeadDistMean),
		slog.Float64("head_dist_p10", s.HeadDistP10),
		slog.Float64("head_dist_p50", s.HeadDistP50),
		slog.Float64("head_dist_p90", s.HeadDistP90),
		slog.Int("degenerate", s.Degenerate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"instances", s.InstanceCount,
		"history", s.HistoryLength,
		"step_mean", s.StepMean,
		"step_std", s.StepStd,
		"step_p10", s.StepP10,
		"step_p50", s.StepP50,
		"step_p90", s.StepP90,
		"arclen_mean", s.ArcLenMean,
		"arclen_p10", s.ArcLenP10,
		"arclen_p50", s.ArcLenP50,
		"arclen_p90", s.ArcLenP90,
		"head_dist_mean", s.HeadDistMean,
		"head_dist_p10", s.HeadDistP10,
		"head_dist_p50", s.HeadDistP50,
		"head_dist_p90", s.HeadDistP90,
		"degenerate", s.Degenerate,
	)
}
