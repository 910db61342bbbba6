package field

import (
	"math"

	"github.com/pthm-cable/wisp/vmath"
)

// Volume is a baked W×H×D texel grid over an axis-aligned box centered
// at the origin with half size Extent. Texel centers sit at
// min + (i+0.5)*cell.
type Volume struct {
	W, H, D int
	Extent  float32

	data                []vmath.Vec4
	cellX, cellY, cellZ float32
}

// NewVolume allocates an empty volume. Texels start zeroed.
func NewVolume(w, h, d int, extent float32) *Volume {
	return &Volume{
		W: w, H: h, D: d,
		Extent: extent,
		data:   make([]vmath.Vec4, w*h*d),
		cellX:  2 * extent / float32(w),
		cellY:  2 * extent / float32(h),
		cellZ:  2 * extent / float32(d),
	}
}

func (v *Volume) index(i, j, k int) int { return i + v.W*(j+v.H*k) }

// At returns the texel at grid coordinates (i, j, k).
func (v *Volume) At(i, j, k int) vmath.Vec4 { return v.data[v.index(i, j, k)] }

// Set writes the texel at grid coordinates (i, j, k).
func (v *Volume) Set(i, j, k int, t vmath.Vec4) { v.data[v.index(i, j, k)] = t }

// Center returns the world position of texel (i, j, k)'s center.
func (v *Volume) Center(i, j, k int) vmath.Vec3 {
	return vmath.Vec3{
		X: -v.Extent + (float32(i)+0.5)*v.cellX,
		Y: -v.Extent + (float32(j)+0.5)*v.cellY,
		Z: -v.Extent + (float32(k)+0.5)*v.cellZ,
	}
}

// Sample returns the trilinearly filtered texel at world position p.
// Positions outside the volume clamp to the border texels.
func (v *Volume) Sample(p vmath.Vec3) vmath.Vec4 {
	ux := (p.X+v.Extent)/v.cellX - 0.5
	uy := (p.Y+v.Extent)/v.cellY - 0.5
	uz := (p.Z+v.Extent)/v.cellZ - 0.5

	i0, fx := splitCoord(ux, v.W)
	j0, fy := splitCoord(uy, v.H)
	k0, fz := splitCoord(uz, v.D)
	i1 := mini(i0+1, v.W-1)
	j1 := mini(j0+1, v.H-1)
	k1 := mini(k0+1, v.D-1)

	x00 := lerp4(v.data[v.index(i0, j0, k0)], v.data[v.index(i1, j0, k0)], fx)
	x10 := lerp4(v.data[v.index(i0, j1, k0)], v.data[v.index(i1, j1, k0)], fx)
	x01 := lerp4(v.data[v.index(i0, j0, k1)], v.data[v.index(i1, j0, k1)], fx)
	x11 := lerp4(v.data[v.index(i0, j1, k1)], v.data[v.index(i1, j1, k1)], fx)
	y0 := lerp4(x00, x10, fy)
	y1 := lerp4(x01, x11, fy)
	return lerp4(y0, y1, fz)
}

// Bake evaluates s over a res³ grid. Each texel stores the unit
// direction toward the surface (from both sides) and the unsigned
// distance divided by distanceScale.
func Bake(s Shape, res int, extent, distanceScale float32) *Volume {
	if distanceScale <= 0 {
		distanceScale = 1
	}
	v := NewVolume(res, res, res, extent)
	hx := v.cellX * 0.5
	hy := v.cellY * 0.5
	hz := v.cellZ * 0.5

	for k := 0; k < res; k++ {
		for j := 0; j < res; j++ {
			for i := 0; i < res; i++ {
				p := v.Center(i, j, k)
				d := s.Distance(p)
				g := vmath.Vec3{
					X: s.Distance(vmath.Vec3{X: p.X + hx, Y: p.Y, Z: p.Z}) - s.Distance(vmath.Vec3{X: p.X - hx, Y: p.Y, Z: p.Z}),
					Y: s.Distance(vmath.Vec3{X: p.X, Y: p.Y + hy, Z: p.Z}) - s.Distance(vmath.Vec3{X: p.X, Y: p.Y - hy, Z: p.Z}),
					Z: s.Distance(vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z + hz}) - s.Distance(vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z - hz}),
				}.Normalize()
				if d > 0 {
					g = g.Scale(-1)
				}
				v.Set(i, j, k, g.Vec4(absf(d)/distanceScale))
			}
		}
	}
	return v
}

// splitCoord splits a continuous texel coordinate into a clamped base
// index and interpolation fraction.
func splitCoord(u float32, n int) (int, float32) {
	f := float32(math.Floor(float64(u)))
	i := int(f)
	if i < 0 {
		return 0, 0
	}
	if i >= n-1 {
		return n - 1, 0
	}
	return i, u - f
}

func lerp4(a, b vmath.Vec4, t float32) vmath.Vec4 {
	return vmath.Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}
