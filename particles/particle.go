package particles

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Particle is a single drifting point.
type Particle struct {
	Pos    r2.Vec // Position, wrapped into the viewport every update
	Vel    r2.Vec // Velocity per tick, fixed at creation
	Radius float64
}

// MakeParticle builds a particle placed uniformly inside vp. Values are drawn
// from rng in the order x, y, radius, vx, vy.
func MakeParticle(vp Viewport, rng RandSource, opts Options) *Particle {
	p := &Particle{}
	p.Pos.X = wrap(rng.Float64()*vp.Width, vp.Width)
	p.Pos.Y = wrap(rng.Float64()*vp.Height, vp.Height)
	p.Radius = opts.MinRadius + rng.Float64()*(opts.MaxRadius-opts.MinRadius)
	p.Vel.X = rng.Float64()*2*opts.MaxSpeed - opts.MaxSpeed
	p.Vel.Y = rng.Float64()*2*opts.MaxSpeed - opts.MaxSpeed
	return p
}

// Update moves the particle by its velocity and wraps it back into vp.
func (p *Particle) Update(vp Viewport) {
	p.Pos = r2.Add(p.Pos, p.Vel)
	p.Pos.X = wrap(p.Pos.X, vp.Width)
	p.Pos.Y = wrap(p.Pos.Y, vp.Height)
}

// Draw paints the particle as a filled circle.
func (p *Particle) Draw(s Surface, c color.Color) {
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, c)
}

// wrap resets v to the opposite edge once it leaves [0, limit). Crossing the
// low edge lands on the largest value still inside the range.
func wrap(v, limit float64) float64 {
	switch {
	case v >= limit:
		return 0
	case v < 0:
		return math.Nextafter(limit, 0)
	}
	return v
}
