// Package renderer draws the swarm and its flow probes.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/vmath"
)

// CurveRenderer draws the reconstructed curves either as camera-facing
// ribbons extruded along the stored normals or as plain line strips.
type CurveRenderer struct {
	ribbon      bool
	ribbonWidth float32
	fadeTail    bool
}

// NewCurveRenderer creates a curve renderer from render settings.
// Any mode other than "line" draws ribbons.
func NewCurveRenderer(cfg config.RenderConfig) *CurveRenderer {
	return &CurveRenderer{
		ribbon:      cfg.Mode != "line",
		ribbonWidth: float32(cfg.RibbonWidth),
		fadeTail:    cfg.FadeTail,
	}
}

// Draw renders every curve from the position and normal buffers.
// Vertex v of instance i sits at index i + v*instanceCount.
func (r *CurveRenderer) Draw(positions, normals []vmath.Vec4, instanceCount, historyLength int) {
	if instanceCount <= 0 || historyLength < 2 {
		return
	}

	rl.BeginBlendMode(rl.BlendAdditive)

	for i := 0; i < instanceCount; i++ {
		// Small per-curve brightness jitter so the swarm reads as
		// individual strands rather than a solid sheet.
		jitter := 0.7 + 0.3*float32((uint32(i)*2654435769)>>24)/255.0

		for v := 0; v < historyLength-1; v++ {
			a0 := r.vertexAlpha(v, historyLength) * jitter
			a1 := r.vertexAlpha(v+1, historyLength) * jitter
			if a0 < 0.01 && a1 < 0.01 {
				continue
			}

			p0 := positions[i+v*instanceCount].XYZ()
			p1 := positions[i+(v+1)*instanceCount].XYZ()

			if !r.ribbon {
				col := strandColor((a0 + a1) * 0.5)
				rl.DrawLine3D(rlv(p0), rlv(p1), col)
				continue
			}

			hw := r.ribbonWidth * 0.5
			n0 := normals[i+v*instanceCount].XYZ().Scale(hw)
			n1 := normals[i+(v+1)*instanceCount].XYZ().Scale(hw)

			l0 := rlv(p0.Sub(n0))
			r0 := rlv(p0.Add(n0))
			l1 := rlv(p1.Sub(n1))
			r1 := rlv(p1.Add(n1))

			col := strandColor((a0 + a1) * 0.5)

			// Both windings so the ribbon is visible from either side.
			rl.DrawTriangle3D(l0, r0, l1, col)
			rl.DrawTriangle3D(l0, l1, r0, col)
			rl.DrawTriangle3D(r0, r1, l1, col)
			rl.DrawTriangle3D(r0, l1, r1, col)
		}
	}

	rl.EndBlendMode()
}

// vertexAlpha returns the fade weight at history position v. Vertex 0
// is the head.
func (r *CurveRenderer) vertexAlpha(v, historyLength int) float32 {
	if !r.fadeTail {
		return 1
	}
	t := 1 - float32(v)/float32(historyLength-1)
	return t * t
}

// strandColor is the wisp palette scaled by alpha for additive blending.
func strandColor(alpha float32) rl.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.Color{
		R: uint8(60 * alpha),
		G: uint8(140 * alpha),
		B: uint8(210 * alpha),
		A: 255,
	}
}

// rlv converts a vector for raylib calls.
func rlv(v vmath.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}
