package components

import "testing"

func TestTrailPush(t *testing.T) {
	var tr Trail

	for i := 0; i < 16; i++ {
		tr.Push(Position{X: float32(i)})
	}
	if tr.Count != 16 {
		t.Fatalf("count = %d, want 16", tr.Count)
	}
	if tr.Points[0].X != 0 || tr.Points[15].X != 15 {
		t.Errorf("fill order wrong: first %v last %v", tr.Points[0].X, tr.Points[15].X)
	}

	// One more drops the oldest.
	tr.Push(Position{X: 16})
	if tr.Count != 16 {
		t.Errorf("count after overflow = %d, want 16", tr.Count)
	}
	if tr.Points[0].X != 1 {
		t.Errorf("oldest point = %v, want 1", tr.Points[0].X)
	}
	if tr.Points[15].X != 16 {
		t.Errorf("newest point = %v, want 16", tr.Points[15].X)
	}
}

func TestTrailReset(t *testing.T) {
	var tr Trail
	tr.Push(Position{X: 1})
	tr.Reset()
	if tr.Count != 0 {
		t.Errorf("count after reset = %d, want 0", tr.Count)
	}
}

func TestProbeAlpha(t *testing.T) {
	p := Probe{Lifespan: 10}

	p.Age = 0
	if a := p.Alpha(); a != 0 {
		t.Errorf("alpha at birth = %v, want 0", a)
	}

	p.Age = 5
	if a := p.Alpha(); a != 1 {
		t.Errorf("alpha mid-life = %v, want 1", a)
	}

	p.Age = 10
	if a := p.Alpha(); a > 1e-6 {
		t.Errorf("alpha at death = %v, want 0", a)
	}

	// Zero lifespan never divides by zero.
	dead := Probe{}
	if a := dead.Alpha(); a != 0 {
		t.Errorf("alpha with zero lifespan = %v, want 0", a)
	}
}
