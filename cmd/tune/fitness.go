package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/field"
	"github.com/pthm-cable/wisp/noise"
	"github.com/pthm-cable/wisp/swarm"
	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/vmath"
)

// FitnessEvaluator runs headless simulations and scores the curve bundle.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []uint32
	baseConfig *config.Config

	// The search never touches the field config, so the volume bakes
	// once and every run shares it.
	volume *field.Volume
	gen    *noise.Noise

	warmup      int
	sampleEvery int

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestStats   telemetry.CurveStats
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator. The field volume is
// baked up front from the base config.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []uint32, baseCfg *config.Config) (*FitnessEvaluator, error) {
	vol, err := field.BakeFromConfig(baseCfg.Field)
	if err != nil {
		return nil, fmt.Errorf("baking field volume: %w", err)
	}

	warmup := frames / 4
	sampleEvery := (frames - warmup) / 8
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	return &FitnessEvaluator{
		params:      params,
		frames:      frames,
		seeds:       seeds,
		baseConfig:  baseCfg,
		volume:      vol,
		gen:         noise.New(baseCfg.Noise.Seed),
		warmup:      warmup,
		sampleEvery: sampleEvery,
		bestFitness: math.Inf(1),
	}, nil
}

// BestStats returns the curve stats from the best evaluation's final sample.
func (fe *FitnessEvaluator) BestStats() telemetry.CurveStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	final   telemetry.CurveStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative quality: a perfect bundle scores -1.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint32) {
			defer wg.Done()
			samples, err := fe.runSimulation(x, s)
			if err != nil {
				// Out-of-range candidates score strictly worse
				// than any completed run.
				results[idx] = seedResult{fitness: 1}
				return
			}
			quality := fe.computeQuality(samples, x)
			r := seedResult{fitness: -quality, quality: quality}
			if len(samples) > 0 {
				r.final = samples[len(samples)-1]
			}
			results[idx] = r
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedStats telemetry.CurveStats

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedStats = r.final
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestStats = bestSeedStats
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run, sampling curve stats
// at a fixed cadence after warmup.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint32) ([]telemetry.CurveStats, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	p := swarm.Params{
		InstanceCount:  cfg.Swarm.InstanceCount,
		HistoryLength:  cfg.Swarm.HistoryLength,
		RandomSeed:     seed,
		Spread:         float32(cfg.Swarm.Spread),
		StepWidth:      float32(cfg.Swarm.StepWidth),
		NoiseFrequency: float32(cfg.Swarm.NoiseFrequency),
		NoiseOffset:    float32(cfg.Swarm.NoiseOffset),
		Constraint:     float32(cfg.Swarm.Constraint),
	}

	sim, err := swarm.NewSimulator(p, fe.volume, fe.gen.Sample)
	if err != nil {
		return nil, err
	}
	defer sim.Close()

	dt := cfg.Derived.DT
	motion := float32(cfg.Swarm.NoiseMotion)
	surfaceDist := func(v vmath.Vec3) float32 {
		return fe.volume.Sample(v).W
	}

	var samples []telemetry.CurveStats
	for frame := 0; frame < fe.frames; frame++ {
		p.NoiseOffset += motion * dt
		if err := sim.SetParams(p); err != nil {
			return nil, err
		}
		sim.Step()

		if frame >= fe.warmup && (frame-fe.warmup)%fe.sampleEvery == 0 {
			samples = append(samples, telemetry.CollectCurveStats(
				sim.Positions(), p.InstanceCount, p.HistoryLength, surfaceDist))
		}
	}
	return samples, nil
}

// copyConfig returns a private copy of the base config. Config holds
// only value fields, so a shallow copy does not share state.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Quality component weights.
const (
	qualityWeightAdhesion   = 0.35
	qualityWeightRegularity = 0.25
	qualityWeightLength     = 0.20
	qualityWeightAlive      = 0.20
)

// computeQuality scores a run in [0, 1] from its sampled curve stats.
// The candidate vector is needed because the arc length target depends
// on the step width under evaluation.
//
// Adhesion rewards curve heads sitting on the surface, regularity
// rewards uniform segment lengths, length rewards curves that reach
// their nominal arc length, and alive penalizes collapsed segments.
func (fe *FitnessEvaluator) computeQuality(samples []telemetry.CurveStats, x []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	sw := cfg.Swarm
	expectedArc := sw.StepWidth * float64(sw.HistoryLength-1)
	segments := float64(sw.InstanceCount * (sw.HistoryLength - 1))

	var adhesion, regularity, length, alive float64
	for _, s := range samples {
		adhesion += math.Exp(-math.Pow(s.HeadDist.Mean/0.25, 2))

		cv := 0.0
		if s.Steps.Mean > 0 {
			cv = s.Steps.Std / s.Steps.Mean
		}
		regularity += math.Exp(-math.Pow(cv/0.3, 2))

		if expectedArc > 0 {
			ratio := s.ArcLen.Mean / expectedArc
			length += math.Exp(-math.Pow((ratio-1)/0.3, 2))
		}

		if segments > 0 {
			alive += 1 - clamp01(float64(s.Degenerate)/segments)
		}
	}

	n := float64(len(samples))
	quality := qualityWeightAdhesion*adhesion/n +
		qualityWeightRegularity*regularity/n +
		qualityWeightLength*length/n +
		qualityWeightAlive*alive/n

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
