// Package camera provides an orbit camera for viewing the swarm.
package camera

import (
	"math"

	"github.com/pthm-cable/wisp/vmath"
)

// Camera orbits a target point. Yaw and pitch are in degrees. The
// rendered pose eases toward the commanded pose each Update, so input
// can jump the command without snapping the view.
type Camera struct {
	// Commanded pose
	Yaw      float32
	Pitch    float32
	Distance float32
	Target   vmath.Vec3

	// Projection
	Fov float32

	// Easing rate per second (0 disables smoothing)
	Smoothing float32

	// Pose constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	// Smoothed pose actually used for rendering
	curYaw      float32
	curPitch    float32
	curDistance float32
	curTarget   vmath.Vec3

	// Pose restored by Reset
	homeYaw      float32
	homePitch    float32
	homeDistance float32
}

// New creates an orbit camera around the origin with the rendered pose
// already snapped to the commanded one.
func New(yaw, pitch, distance, fov, smoothing float32) *Camera {
	c := &Camera{
		Yaw:          yaw,
		Pitch:        pitch,
		Distance:     distance,
		Fov:          fov,
		Smoothing:    smoothing,
		MinDistance:  0.5,
		MaxDistance:  50,
		MinPitch:     -89,
		MaxPitch:     89,
		homeYaw:      yaw,
		homePitch:    pitch,
		homeDistance: distance,
	}
	c.clampPose()
	c.Snap()
	return c
}

// Orbit rotates the commanded pose by the given yaw and pitch deltas.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = mod(c.Yaw+dYaw, 360)
	c.Pitch += dPitch
	c.clampPose()
}

// Dolly multiplies the commanded distance by the given factor.
func (c *Camera) Dolly(factor float32) {
	c.Distance *= factor
	c.clampPose()
}

// SetDistance sets the commanded distance, clamped to the limits.
func (c *Camera) SetDistance(d float32) {
	c.Distance = d
	c.clampPose()
}

// Reset returns the commanded pose to its initial value.
func (c *Camera) Reset() {
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
	c.Distance = c.homeDistance
	c.Target = vmath.Vec3{}
	c.clampPose()
}

// Update eases the rendered pose toward the commanded pose.
func (c *Camera) Update(dt float32) {
	if c.Smoothing <= 0 {
		c.Snap()
		return
	}
	t := c.Smoothing * dt
	if t > 1 {
		t = 1
	}
	// Ease yaw along the short way around
	dYaw := mod(c.Yaw-c.curYaw+180, 360) - 180
	c.curYaw = mod(c.curYaw+dYaw*t, 360)
	c.curPitch += (c.Pitch - c.curPitch) * t
	c.curDistance += (c.Distance - c.curDistance) * t
	c.curTarget = vmath.Lerp(c.curTarget, c.Target, t)
}

// Snap jumps the rendered pose to the commanded pose.
func (c *Camera) Snap() {
	c.curYaw = c.Yaw
	c.curPitch = c.Pitch
	c.curDistance = c.Distance
	c.curTarget = c.Target
}

// Eye returns the rendered camera position in world space.
func (c *Camera) Eye() vmath.Vec3 {
	yaw := float64(c.curYaw) * math.Pi / 180
	pitch := float64(c.curPitch) * math.Pi / 180
	cosP := float32(math.Cos(pitch))
	dir := vmath.Vec3{
		X: cosP * float32(math.Sin(yaw)),
		Y: float32(math.Sin(pitch)),
		Z: cosP * float32(math.Cos(yaw)),
	}
	return c.curTarget.Add(dir.Scale(c.curDistance))
}

// LookAt returns the rendered target point.
func (c *Camera) LookAt() vmath.Vec3 {
	return c.curTarget
}

// clampPose restricts pitch and distance to their limits.
func (c *Camera) clampPose() {
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
