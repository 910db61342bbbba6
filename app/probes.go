package app

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wisp/components"
	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/renderer"
	"github.com/pthm-cable/wisp/swarm"
)

// probeSeedSalt decorrelates probe spawn draws from the swarm's hashed
// draws on the same seed.
const probeSeedSalt uint32 = 0x9e3779b9

// ProbeWorld owns the diagnostic tracer particles. Probes ride the same
// velocity field as the curves, so their trails cross-check what the
// ribbons show.
type ProbeWorld struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Probe, components.Trail]
	filter *ecs.Filter4[components.Position, components.Velocity, components.Probe, components.Trail]

	count      int
	lifespan   float32
	speedScale float32
	spread     float32
	seed       uint32
	nextKey    uint32

	draws []renderer.ProbeDraw
}

// NewProbeWorld creates the probe entities. spread matches the swarm's
// spawn radius so probes cover the same region.
func NewProbeWorld(cfg config.ProbesConfig, spread float32, seed uint32) *ProbeWorld {
	world := ecs.NewWorld()

	w := &ProbeWorld{
		world: world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Probe,
			components.Trail,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Probe,
			components.Trail,
		](world),
		count:      cfg.Count,
		lifespan:   float32(cfg.Lifespan),
		speedScale: float32(cfg.SpeedScale),
		spread:     spread,
		seed:       seed ^ probeSeedSalt,
		draws:      make([]renderer.ProbeDraw, 0, cfg.Count),
	}

	for i := 0; i < w.count; i++ {
		pos, vel, probe, trail := w.rollSpawn(true)
		w.mapper.NewEntity(&pos, &vel, &probe, &trail)
	}

	return w
}

// rollSpawn draws a fresh probe state. Staggered spawns start mid-life
// so the population never expires in sync.
func (w *ProbeWorld) rollSpawn(stagger bool) (components.Position, components.Velocity, components.Probe, components.Trail) {
	key := w.nextKey
	w.nextKey += 2

	pos := components.FromVec3(swarm.PointInSphere(key, w.seed).Scale(w.spread))
	life := w.lifespan * (0.5 + swarm.Scalar(key, w.seed))
	age := float32(0)
	if stagger {
		age = swarm.Scalar(key+1, w.seed) * life
	}

	return pos,
		components.Velocity{},
		components.Probe{Age: age, Lifespan: life, Seed: key},
		components.Trail{}
}

// SetSpread updates the spawn radius for future respawns.
func (w *ProbeWorld) SetSpread(spread float32) {
	w.spread = spread
}

// Reseed restarts every probe from a new seed's spawn points.
func (w *ProbeWorld) Reseed(seed uint32) {
	w.seed = seed ^ probeSeedSalt
	w.nextKey = 0

	query := w.filter.Query()
	for query.Next() {
		pos, vel, probe, trail := query.Get()
		npos, nvel, nprobe, ntrail := w.rollSpawn(true)
		*pos, *vel, *probe, *trail = npos, nvel, nprobe, ntrail
	}
}

// Update ages and advects every probe. Expired probes are reset in
// place rather than removed; the archetype never changes, so recycling
// the entity is cheaper than a remove/create pair.
func (w *ProbeWorld) Update(dt float32, params swarm.Params, noise swarm.NoiseFunc, field swarm.DistanceField) {
	query := w.filter.Query()
	for query.Next() {
		pos, vel, probe, trail := query.Get()

		probe.Age += dt
		if probe.Age >= probe.Lifespan {
			npos, nvel, nprobe, ntrail := w.rollSpawn(false)
			*pos, *vel, *probe, *trail = npos, nvel, nprobe, ntrail
			continue
		}

		p := pos.Vec3()
		v := swarm.FlowVelocity(p, params, noise, field).Scale(w.speedScale)
		vel.X, vel.Y, vel.Z = v.X, v.Y, v.Z
		*pos = components.FromVec3(p.Add(v.Scale(dt)))
		trail.Push(*pos)
	}
}

// Draws rebuilds and returns the render list. Trail pointers stay valid
// until the next Update.
func (w *ProbeWorld) Draws() []renderer.ProbeDraw {
	w.draws = w.draws[:0]

	query := w.filter.Query()
	for query.Next() {
		_, vel, probe, trail := query.Get()
		if trail.Count < 2 {
			continue
		}
		w.draws = append(w.draws, renderer.ProbeDraw{
			Trail: trail,
			Alpha: probe.Alpha(),
			Speed: vel.Vec3().Length(),
		})
	}

	return w.draws
}

// Count returns the probe population size.
func (w *ProbeWorld) Count() int {
	return w.count
}
