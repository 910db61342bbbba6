package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/telemetry"
)

// HUDData is the snapshot the status panel renders from.
type HUDData struct {
	FPS       int32
	Frame     int32
	SimTime   float64
	Instances int
	History   int
	Paused    bool

	Shape      string
	Constraint float32

	Curves telemetry.CurveStats
}

// StatusPanel describes the top-left status overlay.
func StatusPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "status",
		Title:  "Wisp",
		Width:  250,
		Anchor: AnchorTopLeft,
		Sections: []SectionDescriptor{
			{
				ID: "run",
				Fields: []FieldDescriptor{
					{
						ID: "fps", Label: "FPS", Widget: WidgetText,
						TextGetter: func(d any) string {
							return fmt.Sprintf("%d", d.(*HUDData).FPS)
						},
					},
					{
						ID: "frame", Label: "Frame", Widget: WidgetText,
						TextGetter: func(d any) string {
							h := d.(*HUDData)
							if h.Paused {
								return fmt.Sprintf("%d (paused)", h.Frame)
							}
							return fmt.Sprintf("%d", h.Frame)
						},
					},
					{
						ID: "time", Label: "Time", Widget: WidgetText,
						TextGetter: func(d any) string {
							return fmt.Sprintf("%.1fs", d.(*HUDData).SimTime)
						},
					},
				},
			},
			{
				ID:    "swarm",
				Title: "Swarm",
				Fields: []FieldDescriptor{
					{
						ID: "size", Label: "Curves", Widget: WidgetText,
						TextGetter: func(d any) string {
							h := d.(*HUDData)
							return fmt.Sprintf("%d x %d", h.Instances, h.History)
						},
					},
					{
						ID: "shape", Label: "Shape", Widget: WidgetText,
						TextGetter: func(d any) string { return d.(*HUDData).Shape },
					},
					{
						ID: "constraint", Label: "Adhere", Widget: WidgetBar,
						Getter: func(d any) float32 { return d.(*HUDData).Constraint },
					},
				},
			},
			{
				ID:    "curves",
				Title: "Curves",
				Fields: []FieldDescriptor{
					{
						ID: "arclen", Label: "Arc len", Widget: WidgetText,
						TextGetter: func(d any) string {
							c := d.(*HUDData).Curves
							return fmt.Sprintf("%.2f (p50 %.2f)", c.ArcLen.Mean, c.ArcLen.P50)
						},
					},
					{
						ID: "step", Label: "Step", Widget: WidgetText,
						TextGetter: func(d any) string {
							c := d.(*HUDData).Curves
							return fmt.Sprintf("%.4f sd %.4f", c.Steps.Mean, c.Steps.Std)
						},
					},
					{
						ID: "surface", Label: "Surface", Widget: WidgetText,
						TextGetter: func(d any) string {
							c := d.(*HUDData).Curves
							return fmt.Sprintf("%.3f (p90 %.3f)", c.HeadDist.Mean, c.HeadDist.P90)
						},
					},
					{
						ID: "degenerate", Label: "Degen", Widget: WidgetText,
						Visible: func(d any) bool {
							return d.(*HUDData).Curves.Degenerate > 0
						},
						TextGetter: func(d any) string {
							return fmt.Sprintf("%d", d.(*HUDData).Curves.Degenerate)
						},
					},
				},
			},
		},
	}
}

// PerfPanel describes the bottom-left performance overlay.
func PerfPanel() PanelDescriptor {
	phaseField := func(id, label, phase string) FieldDescriptor {
		return FieldDescriptor{
			ID: id, Label: label, Widget: WidgetPhaseBar,
			Getter: func(d any) float32 {
				return float32(d.(*telemetry.PerfStats).PhasePct[phase])
			},
		}
	}
	return PanelDescriptor{
		ID:     "perf",
		Title:  "Performance",
		Width:  270,
		Anchor: AnchorBottomLeft,
		Sections: []SectionDescriptor{
			{
				ID: "timing",
				Fields: []FieldDescriptor{
					{
						ID: "step", Label: "Step", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := d.(*telemetry.PerfStats)
							return fmt.Sprintf("%.2fms avg", s.AvgStepDuration.Seconds()*1000)
						},
					},
					{
						ID: "range", Label: "Range", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := d.(*telemetry.PerfStats)
							return fmt.Sprintf("%.2f - %.2fms",
								s.MinStepDuration.Seconds()*1000,
								s.MaxStepDuration.Seconds()*1000)
						},
					},
					{
						ID: "fps", Label: "FPS", Widget: WidgetText,
						TextGetter: func(d any) string {
							return fmt.Sprintf("%.1f", d.(*telemetry.PerfStats).FPS)
						},
					},
				},
			},
			{
				ID:    "phases",
				Title: "Phases",
				Fields: []FieldDescriptor{
					phaseField("generate", "Generate", telemetry.PhaseGenerate),
					phaseField("reconstruct", "Frames", telemetry.PhaseReconstruct),
					phaseField("probes", "Probes", telemetry.PhaseProbes),
					phaseField("render", "Render", telemetry.PhaseRender),
					phaseField("telemetry", "Telem", telemetry.PhaseTelemetry),
				},
			},
		},
	}
}

// HUD draws the declarative overlay panels.
type HUD struct {
	renderer *Renderer
	status   PanelDescriptor
	perf     PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		status:   StatusPanel(),
		perf:     PerfPanel(),
	}
}

// Renderer exposes the shared widget renderer.
func (h *HUD) Renderer() *Renderer {
	return h.renderer
}

// DrawStatus renders the status panel.
func (h *HUD) DrawStatus(data *HUDData, screenW, screenH int32) {
	h.renderer.DrawPanelDescriptor(h.status, data, screenW, screenH)
}

// DrawPerf renders the performance panel.
func (h *HUD) DrawPerf(stats *telemetry.PerfStats, screenW, screenH int32) {
	h.renderer.DrawPanelDescriptor(h.perf, stats, screenW, screenH)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
