// Package app wires the curve pipeline to the window, input, and
// telemetry. It owns the per-frame update/draw cycle for both the
// graphical and headless modes.
package app

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/camera"
	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/field"
	"github.com/pthm-cable/wisp/noise"
	"github.com/pthm-cable/wisp/renderer"
	"github.com/pthm-cable/wisp/swarm"
	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/ui"
	"github.com/pthm-cable/wisp/vmath"
)

// Options configures an App instance from the CLI.
type Options struct {
	Seed        uint32 // 0 = use config seed
	LogStats    bool
	StatsWindow int // frames per stats flush (0 = use config)
	OutputDir   string
	Headless    bool
}

// App holds the complete application state.
type App struct {
	cfg  *config.Config
	opts Options

	params swarm.Params
	sim    *swarm.Simulator
	volume *field.Volume
	noise  *noise.Noise

	cam    *camera.Camera
	curves *renderer.CurveRenderer
	probeR *renderer.ProbeRenderer
	probes *ProbeWorld

	hud         *ui.HUD
	paramsPanel *ui.ParamsPanel
	paramsModel ui.ParamsModel
	controls    *ui.ControlsPanel
	overlays    *ui.OverlayRegistry

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	frame       int32
	simTime     float64
	paused      bool
	stepOpen    bool
	statsWindow int
	windowStart int32
	curveStats  telemetry.CurveStats
	noiseMotion float32

	screenW, screenH int32
}

// New creates an App from the loaded config and options.
func New(opts Options) (*App, error) {
	cfg := config.Cfg()

	params := paramsFromConfig(cfg)
	if opts.Seed != 0 {
		params.RandomSeed = opts.Seed
		cfg.Swarm.RandomSeed = opts.Seed
	}

	vol, err := field.BakeFromConfig(cfg.Field)
	if err != nil {
		return nil, fmt.Errorf("baking field volume: %w", err)
	}

	n := noise.New(cfg.Noise.Seed)

	sim, err := swarm.NewSimulator(params, vol, n.Sample)
	if err != nil {
		return nil, err
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	a := &App{
		cfg:    cfg,
		opts:   opts,
		params: params,
		sim:    sim,
		volume: vol,
		noise:  n,
		cam: camera.New(
			float32(cfg.Camera.Yaw),
			float32(cfg.Camera.Pitch),
			float32(cfg.Camera.Distance),
			float32(cfg.Camera.Fov),
			float32(cfg.Camera.Smoothing),
		),
		curves:      renderer.NewCurveRenderer(cfg.Render),
		probeR:      renderer.NewProbeRenderer(),
		probes:      NewProbeWorld(cfg.Probes, params.Spread, params.RandomSeed),
		hud:         ui.NewHUD(),
		paramsPanel: ui.NewParamsPanel(),
		paramsModel: modelFromConfig(cfg),
		controls:    ui.NewControlsPanel(10, 290, 210),
		overlays:    ui.NewOverlayRegistry(),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:      output,
		statsWindow: statsWindow,
		noiseMotion: float32(cfg.Swarm.NoiseMotion),
		screenW:     int32(cfg.Screen.Width),
		screenH:     int32(cfg.Screen.Height),
	}

	a.overlays.SetEnabled(ui.OverlayGrid, cfg.Render.ShowGrid)
	a.overlays.SetEnabled(ui.OverlayProbes, cfg.Probes.Enabled)

	slog.Info("app ready",
		"instances", params.InstanceCount,
		"history", params.HistoryLength,
		"seed", params.RandomSeed,
		"shape", cfg.Field.Shape,
		"volume_res", cfg.Field.Resolution,
	)

	return a, nil
}

// paramsFromConfig maps the swarm config section onto pipeline params.
func paramsFromConfig(cfg *config.Config) swarm.Params {
	return swarm.Params{
		InstanceCount:  cfg.Swarm.InstanceCount,
		HistoryLength:  cfg.Swarm.HistoryLength,
		RandomSeed:     cfg.Swarm.RandomSeed,
		Spread:         float32(cfg.Swarm.Spread),
		StepWidth:      float32(cfg.Swarm.StepWidth),
		NoiseFrequency: float32(cfg.Swarm.NoiseFrequency),
		NoiseOffset:    float32(cfg.Swarm.NoiseOffset),
		Constraint:     float32(cfg.Swarm.Constraint),
	}
}

// modelFromConfig seeds the tuning panel from the config.
func modelFromConfig(cfg *config.Config) ui.ParamsModel {
	return ui.ParamsModel{
		Spread:         float32(cfg.Swarm.Spread),
		StepWidth:      float32(cfg.Swarm.StepWidth),
		NoiseFrequency: float32(cfg.Swarm.NoiseFrequency),
		NoiseMotion:    float32(cfg.Swarm.NoiseMotion),
		Constraint:     float32(cfg.Swarm.Constraint),
		Shape:          cfg.Field.Shape,
		Displacement:   float32(cfg.Field.Displacement.Amplitude),
	}
}

// Frame returns the completed step count.
func (a *App) Frame() int32 {
	return a.frame
}

// Update runs input, camera easing, and one simulation step when not
// paused. The perf step stays open for Draw to record the render phase.
func (a *App) Update() {
	dt := a.cfg.Derived.DT

	a.handleInput()
	a.cam.Update(dt)
	a.perf.RecordFrame()

	if a.paused {
		return
	}

	a.step(dt, true)
}

// UpdateHeadless runs one full step without a window.
func (a *App) UpdateHeadless() {
	a.step(a.cfg.Derived.DT, false)
}

func (a *App) step(dt float32, keepOpen bool) {
	a.applyPanelChanges()

	a.perf.StartStep()

	a.perf.StartPhase(telemetry.PhaseGenerate)
	a.params.NoiseOffset += a.noiseMotion * dt
	if err := a.sim.SetParams(a.params); err != nil {
		slog.Error("rejected params", "error", err)
	}
	a.sim.Generate()

	a.perf.StartPhase(telemetry.PhaseReconstruct)
	a.sim.Reconstruct()

	a.perf.StartPhase(telemetry.PhaseProbes)
	if a.overlays.IsEnabled(ui.OverlayProbes) {
		a.probes.Update(dt, a.params, a.noise.Sample, a.volume)
	}

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	a.frame++
	a.simTime += float64(dt)
	a.flushStats()

	if keepOpen {
		a.stepOpen = true
		return
	}
	a.perf.EndStep()
}

// applyPanelChanges consumes the tuning panel's change flags.
func (a *App) applyPanelChanges() {
	m := &a.paramsModel

	if m.SwarmChanged {
		a.params.Spread = m.Spread
		a.params.StepWidth = m.StepWidth
		a.params.NoiseFrequency = m.NoiseFrequency
		a.params.Constraint = m.Constraint
		a.noiseMotion = m.NoiseMotion
		a.probes.SetSpread(m.Spread)
	}

	if m.FieldChanged {
		a.rebakeField(m.Shape, m.Displacement)
	}

	if m.ReseedRequested {
		a.reseed()
	}

	if m.CopyRequested {
		a.copyConfigYAML()
	}

	m.ClearFlags()
}

// rebakeField rebuilds the distance volume with a new shape setup and
// swaps it into the simulator.
func (a *App) rebakeField(shape string, displacement float32) {
	fc := a.cfg.Field
	fc.Shape = shape
	fc.Displacement.Amplitude = float64(displacement)

	vol, err := field.BakeFromConfig(fc)
	if err != nil {
		slog.Error("field rebake failed", "shape", shape, "error", err)
		return
	}

	a.cfg.Field = fc
	a.volume = vol
	a.sim.SetField(vol)

	slog.Info("field rebaked", "shape", shape, "displacement", displacement)
}

// reseed rehashes the seed so every curve and probe respawns elsewhere.
func (a *App) reseed() {
	a.params.RandomSeed = swarm.Hash(a.params.RandomSeed + 1)
	a.cfg.Swarm.RandomSeed = a.params.RandomSeed
	a.probes.Reseed(a.params.RandomSeed)
	slog.Info("reseeded", "seed", a.params.RandomSeed)
}

// syncConfig pushes the live parameter state back into the config.
func (a *App) syncConfig() {
	a.cfg.Swarm.RandomSeed = a.params.RandomSeed
	a.cfg.Swarm.Spread = float64(a.params.Spread)
	a.cfg.Swarm.StepWidth = float64(a.params.StepWidth)
	a.cfg.Swarm.NoiseFrequency = float64(a.params.NoiseFrequency)
	a.cfg.Swarm.NoiseOffset = float64(a.params.NoiseOffset)
	a.cfg.Swarm.NoiseMotion = float64(a.noiseMotion)
	a.cfg.Swarm.Constraint = float64(a.params.Constraint)
}

// copyConfigYAML puts the tuned swarm/field sections on the clipboard.
func (a *App) copyConfigYAML() {
	a.syncConfig()
	text := fmt.Sprintf(
		"swarm:\n"+
			"  instance_count: %d\n"+
			"  history_length: %d\n"+
			"  random_seed: %d\n"+
			"  spread: %.4f\n"+
			"  step_width: %.4f\n"+
			"  noise_frequency: %.4f\n"+
			"  noise_motion: %.4f\n"+
			"  constraint: %.4f\n"+
			"field:\n"+
			"  shape: %s\n"+
			"  displacement:\n"+
			"    amplitude: %.4f\n",
		a.params.InstanceCount,
		a.params.HistoryLength,
		a.params.RandomSeed,
		a.params.Spread,
		a.params.StepWidth,
		a.params.NoiseFrequency,
		a.noiseMotion,
		a.params.Constraint,
		a.cfg.Field.Shape,
		a.cfg.Field.Displacement.Amplitude,
	)
	rl.SetClipboardText(text)
	slog.Info("config copied to clipboard")
}

// flushStats computes curve statistics at the window cadence and hands
// them to the log and CSV sinks.
func (a *App) flushStats() {
	if a.statsWindow <= 0 || a.frame%int32(a.statsWindow) != 0 {
		return
	}

	p := a.params
	a.curveStats = telemetry.CollectCurveStats(
		a.sim.Positions(), p.InstanceCount, p.HistoryLength,
		func(v vmath.Vec3) float32 { return a.volume.Sample(v).W },
	)

	stats := telemetry.WindowStats{
		WindowStartFrame: a.windowStart,
		WindowEndFrame:   a.frame,
		SimTimeSec:       a.simTime,
		InstanceCount:    p.InstanceCount,
		HistoryLength:    p.HistoryLength,
	}
	stats.FillCurves(a.curveStats)
	a.windowStart = a.frame

	perfStats := a.perf.Stats()

	if a.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if a.output != nil {
		if err := a.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := a.output.WritePerf(perfStats, a.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Draw renders the scene and UI, closing the perf step opened by
// Update so the render phase lands in the same sample.
func (a *App) Draw() {
	a.screenW = int32(rl.GetScreenWidth())
	a.screenH = int32(rl.GetScreenHeight())

	if a.stepOpen {
		a.perf.StartPhase(telemetry.PhaseRender)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 16, A: 255})

	cam3d := rl.Camera3D{
		Position:   rlVec(a.cam.Eye()),
		Target:     rlVec(a.cam.LookAt()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       a.cam.Fov,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam3d)
	if a.overlays.IsEnabled(ui.OverlayGrid) {
		rl.DrawGrid(20, 0.5)
	}
	p := a.sim.Params()
	a.curves.Draw(a.sim.Positions(), a.sim.Normals(), p.InstanceCount, p.HistoryLength)
	if a.overlays.IsEnabled(ui.OverlayProbes) {
		a.probeR.Draw(a.probes.Draws())
	}
	rl.EndMode3D()

	a.drawUI()

	rl.EndDrawing()

	if a.stepOpen {
		a.perf.EndStep()
		a.stepOpen = false
	}
}

func (a *App) drawUI() {
	if a.overlays.IsEnabled(ui.OverlayHUD) {
		data := a.hudData()
		a.hud.DrawStatus(&data, a.screenW, a.screenH)
	}

	if a.overlays.IsEnabled(ui.OverlayPerf) {
		stats := a.perf.Stats()
		a.hud.DrawPerf(&stats, a.screenW, a.screenH)
	}

	if a.overlays.IsEnabled(ui.OverlayParams) {
		a.paramsPanel.Draw(&a.paramsModel, a.screenW, a.screenH)
	}

	a.controls.Draw(a.overlays)
	a.hud.DrawControls(a.screenW, a.screenH,
		"Space pause | R reseed | C copy yaml | Tab overlays | Home camera | drag orbit | wheel zoom")
}

func (a *App) hudData() ui.HUDData {
	p := a.sim.Params()
	return ui.HUDData{
		FPS:        rl.GetFPS(),
		Frame:      a.frame,
		SimTime:    a.simTime,
		Instances:  p.InstanceCount,
		History:    p.HistoryLength,
		Paused:     a.paused,
		Shape:      a.cfg.Field.Shape,
		Constraint: p.Constraint,
		Curves:     a.curveStats,
	}
}

// Close stops the simulator workers and flushes output files.
func (a *App) Close() {
	a.sim.Close()
	if a.output != nil {
		if err := a.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

func rlVec(v vmath.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}
