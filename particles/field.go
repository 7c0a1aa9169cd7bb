package particles

import (
	"image/color"
	"iter"

	"gonum.org/v1/gonum/spatial/r2"
)

// Field defaults
const (
	DefaultCount        = 100
	DefaultLinkDistance = 150.0
	DefaultLinkWidth    = 1.0
	DefaultMaxSpeed     = 0.5
	DefaultMinRadius    = 1.0
	DefaultMaxRadius    = 3.0
)

// Options controls how a Field seeds and draws its particles.
type Options struct {
	Count         int
	LinkDistance  float64 // Edges are drawn below this distance
	LinkWidth     float64
	MaxSpeed      float64 // Velocity components fall in [-MaxSpeed, MaxSpeed)
	MinRadius     float64
	MaxRadius     float64
	ParticleColor color.NRGBA
	LinkColor     color.NRGBA // Alpha is replaced per edge
}

// DefaultOptions returns the stock backdrop: 100 green points linked by blue
// edges up to 150 pixels long.
func DefaultOptions() Options {
	return Options{
		Count:         DefaultCount,
		LinkDistance:  DefaultLinkDistance,
		LinkWidth:     DefaultLinkWidth,
		MaxSpeed:      DefaultMaxSpeed,
		MinRadius:     DefaultMinRadius,
		MaxRadius:     DefaultMaxRadius,
		ParticleColor: color.NRGBA{R: 0, G: 255, B: 136, A: 204},
		LinkColor:     color.NRGBA{R: 24, G: 119, B: 242, A: 255},
	}
}

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width, Height float64
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Contains reports whether p lies in [0, Width) x [0, Height).
func (v Viewport) Contains(p r2.Vec) bool {
	return p.X >= 0 && p.X < v.Width && p.Y >= 0 && p.Y < v.Height
}

// Edge is a link between two particles closer than the link distance.
type Edge struct {
	A, B     int // Particle indices, A < B
	Distance float64
	Alpha    float64 // 1 at distance 0, approaching 0 at the link distance
}

// ConnectStats summarises one connection pass.
type ConnectStats struct {
	Edges     int
	MeanAlpha float64
}

// Field owns the particle population and the bounds it lives in.
type Field struct {
	opts      Options
	rng       RandSource
	bounds    Viewport
	particles []*Particle
}

// NewField creates an empty field. Call Initialize to populate it.
func NewField(opts Options, rng RandSource) *Field {
	return &Field{opts: opts, rng: rng}
}

// Initialize discards every particle and seeds a fresh population inside vp.
func (f *Field) Initialize(vp Viewport) {
	f.bounds = vp
	f.particles = make([]*Particle, f.opts.Count)
	for i := range f.particles {
		f.particles[i] = MakeParticle(vp, f.rng, f.opts)
	}
}

// Bounds returns the viewport the field was last initialized with.
func (f *Field) Bounds() Viewport {
	return f.bounds
}

// Particles returns the current population in index order.
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Tick advances and draws each particle in index order.
func (f *Field) Tick(s Surface) {
	for _, p := range f.particles {
		p.Update(f.bounds)
		p.Draw(s, f.opts.ParticleColor)
	}
}

// Edges yields every pair of distinct particles closer than the link
// distance. A particle is never paired with itself.
func (f *Field) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for a := 0; a < len(f.particles); a++ {
			for b := a + 1; b < len(f.particles); b++ {
				e, ok := link(f.particles[a], f.particles[b], f.opts.LinkDistance)
				if !ok {
					continue
				}
				e.A, e.B = a, b
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Connect strokes every edge in the link color, faded by the edge alpha.
func (f *Field) Connect(s Surface) ConnectStats {
	var stats ConnectStats
	var alphaSum float64
	for e := range f.Edges() {
		pa, pb := f.particles[e.A], f.particles[e.B]
		s.StrokeLine(pa.Pos.X, pa.Pos.Y, pb.Pos.X, pb.Pos.Y, f.opts.LinkWidth, fade(f.opts.LinkColor, e.Alpha))
		stats.Edges++
		alphaSum += e.Alpha
	}
	if stats.Edges > 0 {
		stats.MeanAlpha = alphaSum / float64(stats.Edges)
	}
	return stats
}

// link measures the distance between a and b and reports whether it is
// short enough to draw.
func link(a, b *Particle, maxDist float64) (Edge, bool) {
	d := r2.Norm(r2.Sub(a.Pos, b.Pos))
	if d >= maxDist {
		return Edge{}, false
	}
	return Edge{Distance: d, Alpha: 1 - d/maxDist}, true
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha*255 + 0.5)
	return c
}
