// Curve vertex exporter - runs the pipeline headless and writes every
// vertex of the final frame to CSV for offline inspection.
//
// Usage: go run ./cmd/curvedump --output curves.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/field"
	"github.com/pthm-cable/wisp/noise"
	"github.com/pthm-cable/wisp/swarm"
)

// VertexRow is one curve vertex in the export.
type VertexRow struct {
	Instance int     `csv:"instance"`
	Step     int     `csv:"step"`
	PosX     float32 `csv:"pos_x"`
	PosY     float32 `csv:"pos_y"`
	PosZ     float32 `csv:"pos_z"`
	TanX     float32 `csv:"tan_x"`
	TanY     float32 `csv:"tan_y"`
	TanZ     float32 `csv:"tan_z"`
	NormX    float32 `csv:"norm_x"`
	NormY    float32 `csv:"norm_y"`
	NormZ    float32 `csv:"norm_z"`
	Surface  float32 `csv:"surface_dist"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	framesFlag := flag.Int("frames", 1, "Frames to simulate before dumping")
	seedFlag := flag.Uint("seed", 0, "Random seed override (0 = use config)")
	outputPath := flag.String("output", "", "Output CSV path")
	flag.Parse()

	if *outputPath == "" {
		log.Fatal("--output is required")
	}
	if *framesFlag < 1 {
		log.Fatal("--frames must be at least 1")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	params := swarm.Params{
		InstanceCount:  cfg.Swarm.InstanceCount,
		HistoryLength:  cfg.Swarm.HistoryLength,
		RandomSeed:     cfg.Swarm.RandomSeed,
		Spread:         float32(cfg.Swarm.Spread),
		StepWidth:      float32(cfg.Swarm.StepWidth),
		NoiseFrequency: float32(cfg.Swarm.NoiseFrequency),
		NoiseOffset:    float32(cfg.Swarm.NoiseOffset),
		Constraint:     float32(cfg.Swarm.Constraint),
	}
	if *seedFlag != 0 {
		params.RandomSeed = uint32(*seedFlag)
	}

	vol, err := field.BakeFromConfig(cfg.Field)
	if err != nil {
		log.Fatalf("failed to bake field volume: %v", err)
	}

	gen := noise.New(cfg.Noise.Seed)

	sim, err := swarm.NewSimulator(params, vol, gen.Sample)
	if err != nil {
		log.Fatalf("failed to create simulator: %v", err)
	}
	defer sim.Close()

	dt := cfg.Derived.DT
	motion := float32(cfg.Swarm.NoiseMotion)
	for frame := 0; frame < *framesFlag; frame++ {
		params.NoiseOffset += motion * dt
		if err := sim.SetParams(params); err != nil {
			log.Fatalf("invalid params at frame %d: %v", frame, err)
		}
		sim.Step()
	}

	positions := sim.Positions()
	tangents := sim.Tangents()
	normals := sim.Normals()

	rows := make([]VertexRow, 0, params.InstanceCount*params.HistoryLength)
	for inst := 0; inst < params.InstanceCount; inst++ {
		for step := 0; step < params.HistoryLength; step++ {
			idx := inst + step*params.InstanceCount
			pos := positions[idx]
			tan := tangents[idx]
			norm := normals[idx]
			rows = append(rows, VertexRow{
				Instance: inst,
				Step:     step,
				PosX:     pos.X,
				PosY:     pos.Y,
				PosZ:     pos.Z,
				TanX:     tan.X,
				TanY:     tan.Y,
				TanZ:     tan.Z,
				NormX:    norm.X,
				NormY:    norm.Y,
				NormZ:    norm.Z,
				Surface:  vol.Sample(pos.XYZ()).W,
			})
		}
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&rows, f); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}

	fmt.Printf("Wrote %d vertices (%d curves x %d steps) to %s\n",
		len(rows), params.InstanceCount, params.HistoryLength, *outputPath)
}
