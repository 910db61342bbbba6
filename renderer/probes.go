package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/components"
)

// ProbeDraw is one probe ready for drawing.
type ProbeDraw struct {
	Trail *components.Trail
	Alpha float32
	// Speed modulates brightness so fast flow reads hotter.
	Speed float32
}

// ProbeRenderer renders flow probes as fading trails.
type ProbeRenderer struct{}

// NewProbeRenderer creates a new probe renderer.
func NewProbeRenderer() *ProbeRenderer {
	return &ProbeRenderer{}
}

// Draw renders all probe trails with additive blending.
func (r *ProbeRenderer) Draw(probes []ProbeDraw) {
	rl.BeginBlendMode(rl.BlendAdditive)

	for i := range probes {
		p := &probes[i]
		trail := p.Trail
		if trail.Count < 2 {
			continue
		}

		// Fast probes draw at full brightness, slow ones dim toward half.
		speedBoost := 0.5 + 0.5*clamp01(p.Speed*0.5)
		baseAlpha := p.Alpha * 160 * speedBoost
		if baseAlpha < 2 {
			continue
		}

		// Newest segment is brightest; older segments fall off
		// quadratically along the trail.
		n := int(trail.Count)
		for j := 0; j < n-1; j++ {
			segFade := float32(j+1) / float32(n-1)
			segFade *= segFade

			alpha := baseAlpha * segFade
			if alpha < 1 {
				continue
			}

			col := rl.Color{
				R: uint8(0.35 * alpha),
				G: uint8(0.75 * alpha),
				B: uint8(0.55 * alpha),
				A: 255,
			}
			rl.DrawLine3D(
				rlv(trail.Points[j].Vec3()),
				rlv(trail.Points[j+1].Vec3()),
				col,
			)
		}
	}

	rl.EndBlendMode()
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
