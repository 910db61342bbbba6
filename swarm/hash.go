package swarm

import (
	"math"

	"github.com/pthm-cable/wisp/vmath"
)

// Hash mixes s through three rounds of xor-multiply-shift avalanching.
// Every random draw in the pipeline bottoms out here, so identical
// seeds reproduce identical frames on any platform.
func Hash(s uint32) uint32 {
	s ^= 2747636419
	s *= 2654435769
	s ^= s >> 16
	s *= 2654435769
	s ^= s >> 16
	s *= 2654435769
	return s
}

// Scalar maps a hashed key to [0, 1). Only the top 24 bits feed the
// result so it stays strictly below 1 in float32 for every possible
// hash output.
func Scalar(key, seed uint32) float32 {
	return float32(Hash(key^seed)>>8) * (1.0 / (1 << 24))
}

// PointInSphere returns a point inside the unit sphere derived from
// three scalar draws keyed off key*64. The sqrt radial falloff biases
// points toward the center; downstream tuning depends on that shape.
func PointInSphere(key, seed uint32) vmath.Vec3 {
	base := key * 64
	u := Scalar(base, seed) * 2 * math.Pi
	z := Scalar(base+1, seed)*2 - 1
	l := Scalar(base+2, seed)

	r := float32(math.Sqrt(float64(1 - z*z)))
	sin, cos := math.Sincos(float64(u))
	p := vmath.Vec3{X: float32(cos) * r, Y: float32(sin) * r, Z: z}
	return p.Scale(float32(math.Sqrt(float64(l))))
}
