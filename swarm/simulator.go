package swarm

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/wisp/vmath"
)

// batchSize is the number of instances dispatched per work item.
const batchSize = 64

// parallelThreshold is the instance count below which a stage runs
// inline on the calling goroutine instead of paying dispatch overhead.
const parallelThreshold = 64

type stage int

const (
	stageGenerate stage = iota
	stageReconstruct
)

// span is a half-open instance range processed as one work item.
type span struct {
	start, end int
	stage      stage
}

// Simulator owns the frame buffers and a persistent worker pool. A
// Generate/Reconstruct pair produces one complete frame; buffers are
// reused across frames.
//
// Methods are not safe for concurrent use; the simulator expects a
// single driving goroutine.
type Simulator struct {
	params Params
	field  DistanceField
	noise  NoiseFunc

	positions []vmath.Vec4
	tangents  []vmath.Vec4
	normals   []vmath.Vec4

	workChan chan span
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	workers  int
}

// NewSimulator validates params and allocates the position, tangent
// and normal buffers. field and noise must be non-nil. Workers start
// lazily on the first parallel stage.
func NewSimulator(params Params, field DistanceField, noise NoiseFunc) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		params:  params,
		field:   field,
		noise:   noise,
		workers: runtime.NumCPU(),
	}
	s.alloc()
	return s, nil
}

func (s *Simulator) alloc() {
	n := s.params.InstanceCount * s.params.HistoryLength
	s.positions = make([]vmath.Vec4, n)
	s.tangents = make([]vmath.Vec4, n)
	s.normals = make([]vmath.Vec4, n)
}

// Params returns the active parameter set.
func (s *Simulator) Params() Params { return s.params }

// SetParams swaps in a new parameter set. Buffers are reallocated only
// when the total vertex count changes; otherwise the next Generate
// overwrites in place.
func (s *Simulator) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.InstanceCount != s.params.InstanceCount {
		// Channel capacities are sized to the chunk count; let the
		// pool restart lazily with the new size.
		s.stopWorkers()
	}
	realloc := p.InstanceCount*p.HistoryLength != s.params.InstanceCount*s.params.HistoryLength
	s.params = p
	if realloc {
		s.alloc()
	}
	return nil
}

// SetField swaps the distance field sampled by subsequent frames.
func (s *Simulator) SetField(f DistanceField) {
	s.field = f
}

// Positions returns the live position buffer, indexed
// id + step*InstanceCount. Contents are valid until the next Generate
// or SetParams.
func (s *Simulator) Positions() []vmath.Vec4 { return s.positions }

// Tangents returns the live tangent buffer, indexed like Positions.
func (s *Simulator) Tangents() []vmath.Vec4 { return s.tangents }

// Normals returns the live normal buffer, indexed like Positions.
func (s *Simulator) Normals() []vmath.Vec4 { return s.normals }

// Generate runs the trajectory stage: spawn search plus advection for
// every instance. It returns only after every instance is written.
func (s *Simulator) Generate() {
	s.run(stageGenerate)
}

// Reconstruct runs the frame stage over the positions written by the
// last Generate. It must not overlap a Generate in flight; the
// drain in run is the barrier between the two.
func (s *Simulator) Reconstruct() {
	s.run(stageReconstruct)
}

// Step runs both stages in order.
func (s *Simulator) Step() {
	s.Generate()
	s.Reconstruct()
}

// Close stops the worker pool. The buffers stay readable.
func (s *Simulator) Close() {
	s.stopWorkers()
}

func (s *Simulator) run(st stage) {
	n := s.params.InstanceCount
	if n < parallelThreshold {
		s.runSpan(span{start: 0, end: n, stage: st})
		return
	}

	s.startWorkers()
	chunks := 0
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		s.workChan <- span{start: start, end: end, stage: st}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-s.doneChan
	}
}

func (s *Simulator) runSpan(sp span) {
	switch sp.stage {
	case stageGenerate:
		for id := sp.start; id < sp.end; id++ {
			s.generateInstance(id)
		}
	case stageReconstruct:
		for id := sp.start; id < sp.end; id++ {
			s.reconstructInstance(id)
		}
	}
}

func (s *Simulator) startWorkers() {
	if s.running {
		return
	}

	// Both channels hold a full frame's chunks so neither dispatch nor
	// completion ever blocks a worker.
	chunks := (s.params.InstanceCount + batchSize - 1) / batchSize
	s.workChan = make(chan span, chunks)
	s.doneChan = make(chan struct{}, chunks)
	s.stopChan = make(chan struct{})

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	s.running = true
}

func (s *Simulator) stopWorkers() {
	if !s.running {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
	s.running = false
}

func (s *Simulator) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopChan:
			return
		case sp := <-s.workChan:
			s.runSpan(sp)
			s.doneChan <- struct{}{}
		}
	}
}
