package swarm

import "github.com/pthm-cable/wisp/vmath"

// spawnCandidates is the number of extra placements tried after the
// initial one during the spawn search.
const spawnCandidates = 24

// noiseTapOffset decorrelates the two noise taps of the velocity
// construction. The value is arbitrary; it only needs to keep the taps
// far apart in noise space.
var noiseTapOffset = vmath.Vec3{X: 83.4192, Y: 142.9871, Z: 281.1523}

// FlowVelocity evaluates the advection velocity at p: two decorrelated
// noise taps crossed into a divergence-free swirl, with the first tap
// bent toward the surface in proportion to the sampled distance and
// the constraint. The result keeps its raw magnitude.
func FlowVelocity(p vmath.Vec3, params Params, noise NoiseFunc, field DistanceField) vmath.Vec3 {
	q := p.Scale(params.NoiseFrequency).Add(vmath.Vec3{
		X: params.NoiseOffset,
		Y: params.NoiseOffset,
		Z: params.NoiseOffset,
	})
	a := noise(q.Add(noiseTapOffset)).XYZ()
	b := noise(q.Sub(noiseTapOffset)).XYZ()

	f := field.Sample(p)
	a = vmath.Lerp(a, f.XYZ(), vmath.Clamp01(f.W)*params.Constraint)

	return a.Cross(b)
}

// spawn runs the placement search for one instance: an initial
// candidate plus spawnCandidates more, tracking the strictly closest
// one to the surface (ties keep the earliest). Constraint blends from
// the unconstrained first candidate toward the winner, so at zero the
// result never depends on the volume.
func (s *Simulator) spawn(id int) vmath.Vec3 {
	p := s.params
	base := uint32(id) * (spawnCandidates + 1)

	first := PointInSphere(base, p.RandomSeed).Scale(p.Spread)
	best := first
	bestDist := s.field.Sample(first).W
	for j := uint32(1); j <= spawnCandidates; j++ {
		c := PointInSphere(base+j, p.RandomSeed).Scale(p.Spread)
		if d := s.field.Sample(c).W; d < bestDist {
			best, bestDist = c, d
		}
	}

	return vmath.Lerp(first, best, p.Constraint)
}

// generateInstance writes the spawn position and integrates the
// remaining steps for one instance. Steps are strictly sequential;
// parallelism lives across instances.
func (s *Simulator) generateInstance(id int) {
	p := s.spawn(id)
	s.positions[id] = p.Vec4(1)

	n := s.params.InstanceCount
	for step := 1; step < s.params.HistoryLength; step++ {
		v := FlowVelocity(p, s.params, s.noise, s.field)
		p = p.Add(v.Scale(s.params.StepWidth))
		s.positions[id+step*n] = p.Vec4(1)
	}
}
