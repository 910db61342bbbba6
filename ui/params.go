package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParamsModel holds the live-tunable simulation parameters and the
// flags the host loop consumes after each Draw.
type ParamsModel struct {
	Spread         float32
	StepWidth      float32
	NoiseFrequency float32
	NoiseMotion    float32
	Constraint     float32

	Shape        string
	Displacement float32

	// SwarmChanged marks parameters the simulator picks up next step.
	// FieldChanged marks parameters that require a volume rebake.
	SwarmChanged    bool
	FieldChanged    bool
	ReseedRequested bool
	CopyRequested   bool
}

// ClearFlags resets the per-frame change flags.
func (m *ParamsModel) ClearFlags() {
	m.SwarmChanged = false
	m.FieldChanged = false
	m.ReseedRequested = false
	m.CopyRequested = false
}

// ParamsPanel draws the interactive tuning panel.
type ParamsPanel struct {
	renderer *Renderer
	width    float32
	height   float32
}

// NewParamsPanel creates the panel with the default theme.
func NewParamsPanel() *ParamsPanel {
	return &ParamsPanel{
		renderer: NewRenderer(),
		width:    290,
		height:   520,
	}
}

// Bounds returns the panel rectangle for input hit testing.
func (p *ParamsPanel) Bounds(screenW int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenW) - p.width - 10,
		Y:      10,
		Width:  p.width,
		Height: p.height,
	}
}

// sliderRow draws a labeled slider with a value echo and returns the
// new value and the Y below the row.
func (p *ParamsPanel) sliderRow(x, y float32, label, minText, maxText string, value, minVal, maxVal float32, format string) (float32, float32) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	newValue := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: p.width - 90, Height: 20},
		minText, maxText,
		value, minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf(format, newValue), int32(x+p.width-80), int32(y+2), 16, rl.LightGray)
	return newValue, y + 32
}

// Draw renders the panel anchored top-right and updates the model.
func (p *ParamsPanel) Draw(m *ParamsModel, screenW, screenH int32) {
	panelW := int32(p.width)
	panelH := int32(p.height)
	panelX := screenW - panelW - 10
	panelY := int32(10)

	p.renderer.DrawPanel(panelX, panelY, panelW, panelH)

	x := float32(panelX) + 12
	y := float32(panelY) + 10

	rl.DrawText("Parameters", int32(x), int32(y), 18, rl.White)
	y += 30

	if v, ny := p.sliderRow(x, y, "Spread (spawn radius)", "0.2", "4.0", m.Spread, 0.2, 4.0, "%.2f"); true {
		if v != m.Spread {
			m.Spread = v
			m.SwarmChanged = true
		}
		y = ny
	}

	if v, ny := p.sliderRow(x, y, "Step width", "0.005", "0.15", m.StepWidth, 0.005, 0.15, "%.3f"); true {
		if v != m.StepWidth {
			m.StepWidth = v
			m.SwarmChanged = true
		}
		y = ny
	}

	if v, ny := p.sliderRow(x, y, "Noise frequency", "0.1", "3.0", m.NoiseFrequency, 0.1, 3.0, "%.2f"); true {
		if v != m.NoiseFrequency {
			m.NoiseFrequency = v
			m.SwarmChanged = true
		}
		y = ny
	}

	if v, ny := p.sliderRow(x, y, "Noise motion", "0.0", "1.0", m.NoiseMotion, 0.0, 1.0, "%.2f"); true {
		if v != m.NoiseMotion {
			m.NoiseMotion = v
			m.SwarmChanged = true
		}
		y = ny
	}

	if v, ny := p.sliderRow(x, y, "Constraint (surface pull)", "0.0", "1.0", m.Constraint, 0.0, 1.0, "%.2f"); true {
		if v != m.Constraint {
			m.Constraint = v
			m.SwarmChanged = true
		}
		y = ny
	}

	// Separator
	rl.DrawLine(int32(x), int32(y), int32(x)+panelW-24, int32(y), rl.DarkGray)
	y += 12

	rl.DrawText("Field", int32(x), int32(y), 16, rl.White)
	y += 24

	if v, ny := p.sliderRow(x, y, "Displacement", "0.0", "0.5", m.Displacement, 0.0, 0.5, "%.2f"); true {
		if v != m.Displacement {
			m.Displacement = v
			m.FieldChanged = true
		}
		y = ny
	}

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 28}, "Shape: "+m.Shape) {
		m.Shape = nextShape(m.Shape)
		m.FieldChanged = true
	}
	if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 28}, "Reseed") {
		m.ReseedRequested = true
	}
	y += 38

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 250, Height: 28}, "Copy Config YAML") {
		m.CopyRequested = true
	}
	y += 38

	// Echo the tuned values so they can be pasted into a config file.
	rl.DrawText("swarm:", int32(x), int32(y), 12, rl.DarkGray)
	y += 14
	rl.DrawText(fmt.Sprintf("  spread: %.3f", m.Spread), int32(x), int32(y), 12, rl.DarkGray)
	y += 14
	rl.DrawText(fmt.Sprintf("  step_width: %.3f", m.StepWidth), int32(x), int32(y), 12, rl.DarkGray)
	y += 14
	rl.DrawText(fmt.Sprintf("  constraint: %.3f", m.Constraint), int32(x), int32(y), 12, rl.DarkGray)
}

func nextShape(shape string) string {
	switch shape {
	case "sphere":
		return "box"
	case "box":
		return "torus"
	default:
		return "sphere"
	}
}
