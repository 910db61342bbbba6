package swarm

import "github.com/pthm-cable/wisp/vmath"

// reconstructInstance sweeps one instance's freshly generated
// positions and derives a tangent/normal pair per vertex. Each normal
// comes from the previous vertex's binormal, so the frame rotates
// smoothly along the curve instead of flipping when the curve bends
// past a pole.
//
// Degenerate segments produce zero frames via the normalize guard; the
// sweep continues rather than poisoning the buffer with NaNs.
func (s *Simulator) reconstructInstance(id int) {
	n := s.params.InstanceCount
	last := s.params.HistoryLength - 1

	p0 := s.positions[id].XYZ()
	p1 := s.positions[id+n].XYZ()

	// The first frame has no predecessor: seed the binormal from the
	// spawn position's direction. The first normal keeps its raw
	// magnitude.
	t := p1.Sub(p0).Normalize()
	b := t.Cross(p0.Normalize())
	s.tangents[id] = t.Vec4(0)
	s.normals[id] = b.Cross(t).Vec4(0)

	for step := 1; step <= last; step++ {
		var tan vmath.Vec3
		if step < last {
			prev := s.positions[id+(step-1)*n].XYZ()
			next := s.positions[id+(step+1)*n].XYZ()
			tan = next.Sub(prev).Normalize()
		} else {
			prev := s.positions[id+(step-1)*n].XYZ()
			cur := s.positions[id+step*n].XYZ()
			tan = cur.Sub(prev).Normalize()
		}

		nrm := b.Cross(tan).Normalize()
		b = tan.Cross(nrm)

		s.tangents[id+step*n] = tan.Vec4(0)
		s.normals[id+step*n] = nrm.Vec4(0)
	}
}
