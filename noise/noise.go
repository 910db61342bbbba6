// Package noise implements seeded 3D simplex noise with analytic
// derivatives. Sample packs the partial derivatives in xyz and the
// noise value in w, the layout the swarm velocity construction reads.
package noise

import (
	"math/rand"

	"github.com/pthm-cable/wisp/vmath"
)

// The 12 gradient directions: edge midpoints of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Skew factors for the 3D simplex grid.
const (
	f3 = 1.0 / 3.0
	g3 = 1.0 / 6.0
)

// Noise is a seeded simplex noise generator. Sampling only reads the
// permutation table, so a single instance is safe to share across
// goroutines.
type Noise struct {
	perm [512]int
}

// New builds a generator whose permutation table is shuffled by seed.
// The same seed reproduces the same field on every platform.
func New(seed int64) *Noise {
	n := &Noise{}
	rng := rand.New(rand.NewSource(seed))
	for i, v := range rng.Perm(256) {
		n.perm[i] = v
		n.perm[i+256] = v
	}
	return n
}

// Sample evaluates the noise at p. The xyz components are the analytic
// partial derivatives of the value in w.
func (n *Noise) Sample(p vmath.Vec3) vmath.Vec4 {
	dx, dy, dz, v := n.eval(float64(p.X), float64(p.Y), float64(p.Z))
	return vmath.Vec4{X: float32(dx), Y: float32(dy), Z: float32(dz), W: float32(v)}
}

func (n *Noise) eval(x, y, z float64) (dx, dy, dz, value float64) {
	// Skew to simplex grid coordinates and find the containing cell.
	s := (x + y + z) * f3
	i := floor(x + s)
	j := floor(y + s)
	k := floor(z + s)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	// Rank the cell-relative components to pick the corner traversal
	// order for this tetrahedron.
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, i2, j2 = 1, 1, 1
		case x0 >= z0:
			i1, i2, k2 = 1, 1, 1
		default:
			k1, i2, k2 = 1, 1, 1
		}
	} else {
		switch {
		case y0 < z0:
			k1, j2, k2 = 1, 1, 1
		case x0 < z0:
			j1, j2, k2 = 1, 1, 1
		default:
			j1, i2, j2 = 1, 1, 1
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii := i & 0xff
	jj := j & 0xff
	kk := k & 0xff

	gi0 := n.perm[ii+n.perm[jj+n.perm[kk]]] % 12
	gi1 := n.perm[ii+i1+n.perm[jj+j1+n.perm[kk+k1]]] % 12
	gi2 := n.perm[ii+i2+n.perm[jj+j2+n.perm[kk+k2]]] % 12
	gi3 := n.perm[ii+1+n.perm[jj+1+n.perm[kk+1]]] % 12

	// Each corner contributes t^4*(g.d) inside its radius of influence.
	// d/dx of that is -8t^3*x*(g.d) + t^4*gx, which vanishes smoothly
	// at the t=0 boundary.
	corner := func(gi int, cx, cy, cz float64) {
		t := 0.6 - cx*cx - cy*cy - cz*cz
		if t < 0 {
			return
		}
		g := &grad3[gi]
		gd := g[0]*cx + g[1]*cy + g[2]*cz
		t2 := t * t
		t4 := t2 * t2
		value += t4 * gd
		m := -8 * t * t2 * gd
		dx += m*cx + t4*g[0]
		dy += m*cy + t4*g[1]
		dz += m*cz + t4*g[2]
	}

	corner(gi0, x0, y0, z0)
	corner(gi1, x1, y1, z1)
	corner(gi2, x2, y2, z2)
	corner(gi3, x3, y3, z3)

	const scale = 32
	return dx * scale, dy * scale, dz * scale, value * scale
}

func floor(x float64) int {
	if x > 0 {
		return int(x)
	}
	return int(x) - 1
}
